package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conflictsched/internal/problem"
)

// pairedInstance fits into two slots of capacity 5, with jobs 0 and 1
// conflicting so they can never share one.
func pairedInstance(t *testing.T) *problem.Instance {
	t.Helper()
	instance, err := problem.NewInstance(
		[]problem.Job{
			{ID: 0, Demand: 3},
			{ID: 1, Demand: 3},
			{ID: 2, Demand: 2},
			{ID: 3, Demand: 2},
		},
		[]problem.Slot{
			{ID: 0, Capacity: 5},
			{ID: 1, Capacity: 5},
		},
		[]problem.Conflict{{First: 0, Second: 1}},
		nil,
	)
	require.NoError(t, err)
	return instance
}

// cliqueInstance makes every pair of jobs conflict, forcing one slot per job.
func cliqueInstance(t *testing.T, jobCount int) *problem.Instance {
	t.Helper()
	jobs := make([]problem.Job, 0, jobCount)
	conflicts := make([]problem.Conflict, 0, jobCount*jobCount/2)
	for i := 0; i < jobCount; i++ {
		jobs = append(jobs, problem.Job{ID: i, Demand: 1})
		for j := i + 1; j < jobCount; j++ {
			conflicts = append(conflicts, problem.Conflict{First: i, Second: j})
		}
	}
	instance, err := problem.NewInstance(jobs, nil, conflicts, &problem.OpenSlots{Capacity: 2, Max: 0})
	require.NoError(t, err)
	return instance
}

func TestGreedy(t *testing.T) {
	t.Run("separates conflicting jobs into two slots", func(t *testing.T) {
		// Arrange
		solver, err := New("greedy", DefaultConfig())
		require.NoError(t, err)

		// Act
		result, err := solver.Solve(context.Background(), pairedInstance(t))

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Feasible)
		assert.Equal(t, int64(2), result.Cost)
		assert.Equal(t, TerminationCompleted, result.Termination)
		assert.Equal(t, 4, result.Iterations)

		first, _ := result.State.SlotOf(0)
		second, _ := result.State.SlotOf(1)
		assert.NotEqual(t, first, second)
	})

	t.Run("reproduces the same assignment for equal seeds", func(t *testing.T) {
		// Arrange
		cfg := DefaultConfig()
		cfg.OrderingPolicy = OrderRandom
		cfg.Seed = 17
		instance := cliqueInstance(t, 6)

		// Act
		first := solveOnce(t, "greedy", cfg, instance)
		second := solveOnce(t, "greedy", cfg, instance)

		// Assert
		assert.Equal(t, first.Report("greedy", cfg.Seed).Assignment, second.Report("greedy", cfg.Seed).Assignment)
	})

	t.Run("opens one slot per job on a conflict clique", func(t *testing.T) {
		result := solveOnce(t, "greedy", DefaultConfig(), cliqueInstance(t, 5))

		assert.True(t, result.Feasible)
		assert.Equal(t, int64(5), result.Cost)
	})

	t.Run("fails on a job larger than every slot", func(t *testing.T) {
		// Arrange
		instance, err := problem.NewInstance(
			[]problem.Job{{ID: 0, Demand: 7}},
			[]problem.Slot{{ID: 0, Capacity: 5}, {ID: 1, Capacity: 5}},
			nil,
			nil,
		)
		require.NoError(t, err)
		solver, err := New("greedy", DefaultConfig())
		require.NoError(t, err)

		// Act
		_, err = solver.Solve(context.Background(), instance)

		// Assert
		var infeasible *InfeasibleError
		require.ErrorAs(t, err, &infeasible)
		assert.Equal(t, 0, infeasible.Job)
	})

	t.Run("handles every ordering policy", func(t *testing.T) {
		// The tight two-slot instance only admits heavy-first orders, so the
		// random policy runs on the clique where any order is placeable.
		for _, policy := range []OrderingPolicy{OrderDemandDesc, OrderConflictDegree} {
			cfg := DefaultConfig()
			cfg.OrderingPolicy = policy

			result := solveOnce(t, "greedy", cfg, pairedInstance(t))

			assert.True(t, result.Feasible, "policy %v", policy)
			assert.Equal(t, int64(2), result.Cost, "policy %v", policy)
		}

		cfg := DefaultConfig()
		cfg.OrderingPolicy = OrderRandom
		result := solveOnce(t, "greedy", cfg, cliqueInstance(t, 4))
		assert.True(t, result.Feasible)
		assert.Equal(t, int64(4), result.Cost)
	})
}

func solveOnce(t *testing.T, name string, cfg Config, instance *problem.Instance) Result {
	t.Helper()
	solver, err := New(name, cfg)
	require.NoError(t, err)
	result, err := solver.Solve(context.Background(), instance)
	require.NoError(t, err)
	return result
}
