package strategy

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// pickWeighted draws one item with probability proportional to its weight.
// A zero total weight degrades to a uniform draw. The second return is false
// only for an empty slice.
func pickWeighted[T any, W constraints.Integer | constraints.Float](rng *rand.Rand, items []T, weight func(T) W) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	var total float64
	for _, item := range items {
		total += float64(weight(item))
	}
	if total <= 0 {
		return items[rng.Intn(len(items))], true
	}

	r := rng.Float64() * total
	for _, item := range items {
		r -= float64(weight(item))
		if r < 0 {
			return item, true
		}
	}
	return items[len(items)-1], true
}
