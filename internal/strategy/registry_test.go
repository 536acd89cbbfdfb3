package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("lists the built-in strategies sorted", func(t *testing.T) {
		assert.Equal(t, []string{"exact", "greedy", "localsearch"}, Names())
	})

	t.Run("fails fast on an unknown name", func(t *testing.T) {
		_, err := New("simulated-annealing", DefaultConfig())

		var unknown *UnknownStrategyError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "simulated-annealing", unknown.Name)
	})

	t.Run("validates the configuration before building", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IterationBudget = 0

		_, err := New("greedy", cfg)

		assert.Error(t, err)
	})

	t.Run("panics on duplicate registration", func(t *testing.T) {
		assert.Panics(t, func() {
			Register("greedy", newGreedy)
		})
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("decodes options on top of the defaults", func(t *testing.T) {
		// Act
		cfg, err := ParseConfig(map[string]any{
			"seed":           int64(7),
			"timeBudget":     "2s",
			"orderingPolicy": "degree",
			"cost":           "maxload",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), cfg.Seed)
		assert.Equal(t, 2*time.Second, cfg.TimeBudget)
		assert.Equal(t, OrderConflictDegree, cfg.OrderingPolicy)
		assert.Equal(t, "maxload", cfg.Cost)
		assert.Equal(t, DefaultConfig().IterationBudget, cfg.IterationBudget)
		assert.Equal(t, DefaultConfig().AcceptNonImproving, cfg.AcceptNonImproving)
	})

	t.Run("rejects an unknown cost function", func(t *testing.T) {
		_, err := ParseConfig(map[string]any{"cost": "makespan"})
		assert.Error(t, err)
	})

	t.Run("rejects an out-of-range acceptance probability", func(t *testing.T) {
		_, err := ParseConfig(map[string]any{"acceptNonImproving": 1.5})
		assert.Error(t, err)
	})

	t.Run("rejects an unknown ordering policy", func(t *testing.T) {
		_, err := ParseConfig(map[string]any{"orderingPolicy": "fifo"})
		assert.Error(t, err)
	})
}
