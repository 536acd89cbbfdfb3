package mip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCBCSolution(t *testing.T) {
	t.Run("reads an optimal verdict with its variables", func(t *testing.T) {
		// Arrange
		output := `Optimal - objective value 2.00000000
      0 y_0                        1                       0
      1 y_1                        1                       0
      2 x_0_0                      1                       0
      3 x_0_1                      0                       0
      4 x_1_0                      0                       0
      5 x_1_1                      1                       0`

		// Act
		outcome, err := parseCBCSolution(output, Build(smallInstance(t)))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, StatusOptimal, outcome.Status)
		assert.Equal(t, 2.0, outcome.Bound)
		assert.Equal(t, map[int]int{0: 0, 1: 1}, outcome.Assignment)
	})

	t.Run("maps an infeasible verdict", func(t *testing.T) {
		outcome, err := parseCBCSolution("Infeasible - objective value 0.00000000", Build(smallInstance(t)))

		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, outcome.Status)
	})

	t.Run("treats a stopped run with an incumbent as feasible", func(t *testing.T) {
		output := `Stopped on time limit - objective value 2.00000000
      0 x_0_0                      1                       0
      1 x_1_1                      1                       0`

		outcome, err := parseCBCSolution(output, Build(smallInstance(t)))

		require.NoError(t, err)
		assert.Equal(t, StatusFeasible, outcome.Status)
		assert.Equal(t, 2.0, outcome.Bound)
	})

	t.Run("treats a stopped run without an incumbent as timed out", func(t *testing.T) {
		outcome, err := parseCBCSolution("Stopped on time limit", Build(smallInstance(t)))

		require.NoError(t, err)
		assert.Equal(t, StatusTimedOut, outcome.Status)
	})
}

func TestParseGLPKSolution(t *testing.T) {
	t.Run("reads the plain-text report", func(t *testing.T) {
		// Arrange
		output := `Problem:    model
Rows:       8
Columns:    6 (6 integer, 6 binary)
Status:     INTEGER OPTIMAL
Objective:  obj = 2 (MINimum)

   No. Column name       Activity     Lower bound   Upper bound
------ ------------    ------------- ------------- -------------
     1 x_0_0        *              1             0             1
     2 x_0_1        *              0             0             1
     3 x_1_0        *              0             0             1
     4 x_1_1        *              1             0             1
     5 y_0          *              1             0             1
     6 y_1          *              1             0             1`

		// Act
		outcome, err := parseGLPKSolution(output, Build(smallInstance(t)))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, StatusOptimal, outcome.Status)
		assert.Equal(t, 2.0, outcome.Bound)
		assert.Equal(t, map[int]int{0: 0, 1: 1}, outcome.Assignment)
	})

	t.Run("maps an empty program to infeasible", func(t *testing.T) {
		outcome, err := parseGLPKSolution("Status:     INTEGER EMPTY\n", Build(smallInstance(t)))

		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, outcome.Status)
	})

	t.Run("times out when no report was produced", func(t *testing.T) {
		outcome, err := parseGLPKSolution("", Build(smallInstance(t)))

		require.NoError(t, err)
		assert.Equal(t, StatusTimedOut, outcome.Status)
	})
}
