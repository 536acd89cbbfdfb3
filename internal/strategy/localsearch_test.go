package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conflictsched/internal/problem"
	"conflictsched/internal/solution"
)

func TestLocalSearch(t *testing.T) {
	t.Run("never ends worse than the constructive pass", func(t *testing.T) {
		instance := cliqueInstance(t, 4)

		for seed := int64(0); seed < 5; seed++ {
			// Arrange
			cfg := DefaultConfig()
			cfg.Seed = seed
			cfg.OrderingPolicy = OrderRandom

			// Act
			greedyResult := solveOnce(t, "greedy", cfg, instance)
			searchResult := solveOnce(t, "localsearch", cfg, instance)

			// Assert
			assert.True(t, searchResult.Feasible, "seed %v", seed)
			assert.LessOrEqual(t, searchResult.Cost, greedyResult.Cost, "seed %v", seed)
		}
	})

	t.Run("packs unit jobs onto the minimum number of slots", func(t *testing.T) {
		// Arrange: six unit jobs over openable slots of capacity 3; the
		// optimum needs only two slots.
		jobs := make([]problem.Job, 0, 6)
		for i := 0; i < 6; i++ {
			jobs = append(jobs, problem.Job{ID: i, Demand: 1})
		}
		instance, err := problem.NewInstance(jobs, nil, nil, &problem.OpenSlots{Capacity: 3, Max: 0})
		require.NoError(t, err)

		cfg := DefaultConfig()
		cfg.Seed = 3

		// Act
		result := solveOnce(t, "localsearch", cfg, instance)

		// Assert
		require.True(t, result.Feasible)
		assert.Equal(t, int64(2), result.Cost)
		assert.NoError(t, result.State.Validate())
	})

	t.Run("converges once no improving move remains", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ConvergeAfter = 50
		cfg.AcceptNonImproving = 0

		result := solveOnce(t, "localsearch", cfg, pairedInstance(t))

		assert.Equal(t, TerminationConverged, result.Termination)
		assert.True(t, result.Feasible)
		assert.Less(t, result.Iterations, cfg.IterationBudget)
	})

	t.Run("stops at the iteration budget", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IterationBudget = 10
		cfg.ConvergeAfter = 10000

		result := solveOnce(t, "localsearch", cfg, cliqueInstance(t, 4))

		assert.Equal(t, TerminationBudget, result.Termination)
		assert.Equal(t, 10, result.Iterations)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		// Arrange
		cfg := DefaultConfig()
		solver, err := New("localsearch", cfg)
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		result, err := solver.Solve(ctx, pairedInstance(t))

		// Assert: the constructive result survives cancellation.
		require.NoError(t, err)
		assert.Equal(t, TerminationBudget, result.Termination)
		assert.True(t, result.Feasible)
	})

	t.Run("propagates constructive infeasibility", func(t *testing.T) {
		instance, err := problem.NewInstance(
			[]problem.Job{{ID: 0, Demand: 9}},
			[]problem.Slot{{ID: 0, Capacity: 5}},
			nil,
			nil,
		)
		require.NoError(t, err)
		solver, err := New("localsearch", DefaultConfig())
		require.NoError(t, err)

		_, err = solver.Solve(context.Background(), instance)

		var infeasible *InfeasibleError
		assert.ErrorAs(t, err, &infeasible)
	})
}

func TestProposeMerge(t *testing.T) {
	t.Run("empties the least-loaded slot via a full matching", func(t *testing.T) {
		// Arrange: slot 2 holds one unit job that fits into either of the
		// other two slots.
		instance, err := problem.NewInstance(
			[]problem.Job{
				{ID: 0, Demand: 2},
				{ID: 1, Demand: 2},
				{ID: 2, Demand: 1},
			},
			[]problem.Slot{
				{ID: 0, Capacity: 3},
				{ID: 1, Capacity: 3},
				{ID: 2, Capacity: 3},
			},
			nil,
			nil,
		)
		require.NoError(t, err)

		state := solution.NewState(instance, nil)
		require.NoError(t, state.Assign(0, 0))
		require.NoError(t, state.Assign(1, 1))
		require.NoError(t, state.Assign(2, 2))

		search := &localSearch{cfg: DefaultConfig()}

		// Act
		moves, ok := search.proposeMerge(state, []int{0, 1, 2})

		// Assert
		require.True(t, ok)
		require.Len(t, moves, 1)
		assert.Equal(t, 2, moves[0].job)
		assert.Equal(t, 2, moves[0].from)
		assert.Contains(t, []int{0, 1}, moves[0].to)
	})

	t.Run("refuses a merge blocked by conflicts", func(t *testing.T) {
		// Arrange: the evicted job conflicts with every other job.
		instance, err := problem.NewInstance(
			[]problem.Job{
				{ID: 0, Demand: 1},
				{ID: 1, Demand: 1},
				{ID: 2, Demand: 1},
			},
			[]problem.Slot{
				{ID: 0, Capacity: 3},
				{ID: 1, Capacity: 3},
				{ID: 2, Capacity: 3},
			},
			[]problem.Conflict{{First: 2, Second: 0}, {First: 2, Second: 1}},
			nil,
		)
		require.NoError(t, err)

		state := solution.NewState(instance, nil)
		require.NoError(t, state.Assign(0, 0))
		require.NoError(t, state.Assign(1, 1))
		require.NoError(t, state.Assign(2, 2))

		search := &localSearch{cfg: DefaultConfig()}

		// Act
		_, ok := search.proposeMerge(state, []int{0, 1, 2})

		// Assert
		assert.False(t, ok)
	})
}
