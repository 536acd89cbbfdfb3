package mip

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseCBCSolution reads cbc's solution file. The first line carries the
// verdict ("Optimal - objective value 2.00000000", "Infeasible - ...",
// "Stopped on time limit - objective value 3.00000000"); the remaining lines
// list one variable each as "<index> <name> <value> <reduced cost>".
func parseCBCSolution(output string, form *Formulation) (Outcome, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return Outcome{Status: StatusTimedOut}, nil
	}

	verdict := lines[0]
	status := StatusOptimal
	switch {
	case strings.Contains(verdict, "Infeasible"):
		return Outcome{Status: StatusInfeasible}, nil
	case strings.Contains(verdict, "Stopped"):
		status = StatusFeasible
		if len(lines) == 1 {
			return Outcome{Status: StatusTimedOut}, nil
		}
	case strings.Contains(verdict, "Optimal"):
		status = StatusOptimal
	default:
		return Outcome{Status: StatusTimedOut}, nil
	}

	bound := 0.0
	if fields := strings.Fields(verdict); len(fields) > 0 {
		if value, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
			bound = value
		}
	}

	values := parseVariableLines(lines[1:], 1, 2)
	return Outcome{
		Status:     status,
		Assignment: form.DecodeAssignment(values),
		Bound:      bound,
	}, nil
}

// parseGLPKSolution reads glpsol's plain-text report: a "Status:" line
// ("INTEGER OPTIMAL", "INTEGER EMPTY", ...), an "Objective:" line and a
// column table with the variable activity in the fourth field.
func parseGLPKSolution(output string, form *Formulation) (Outcome, error) {
	lines := strings.Split(output, "\n")

	statusLine, ok := lo.Find(lines, func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), "Status:")
	})
	if !ok {
		return Outcome{Status: StatusTimedOut}, nil
	}

	status := StatusOptimal
	switch {
	case strings.Contains(statusLine, "EMPTY"), strings.Contains(statusLine, "UNDEFINED"):
		return Outcome{Status: StatusInfeasible}, nil
	case strings.Contains(statusLine, "OPTIMAL"):
		status = StatusOptimal
	default:
		status = StatusFeasible
	}

	bound := 0.0
	if objectiveLine, ok := lo.Find(lines, func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), "Objective:")
	}); ok {
		// "Objective:  obj = 2 (MINimum)"
		fields := strings.Fields(objectiveLine)
		for i, field := range fields {
			if field == "=" && i+1 < len(fields) {
				if value, err := strconv.ParseFloat(fields[i+1], 64); err == nil {
					bound = value
				}
				break
			}
		}
	}

	values := make(map[string]float64)
	for _, line := range lines {
		fields := strings.Fields(line)
		// "  1 x_0_0   *   1   0   1"
		if len(fields) < 4 || !isVariableName(fields[1]) {
			continue
		}
		activityIndex := 2
		if fields[2] == "*" || fields[2] == "NL" || fields[2] == "NU" || fields[2] == "NF" || fields[2] == "NS" {
			activityIndex = 3
		}
		if value, err := strconv.ParseFloat(fields[activityIndex], 64); err == nil {
			values[fields[1]] = value
		}
	}

	return Outcome{
		Status:     status,
		Assignment: form.DecodeAssignment(values),
		Bound:      bound,
	}, nil
}

func parseVariableLines(lines []string, nameIndex, valueIndex int) map[string]float64 {
	values := make(map[string]float64, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) <= valueIndex || !isVariableName(fields[nameIndex]) {
			continue
		}
		if value, err := strconv.ParseFloat(fields[valueIndex], 64); err == nil {
			values[fields[nameIndex]] = value
		}
	}
	return values
}

func isVariableName(field string) bool {
	return strings.HasPrefix(field, "x_") || strings.HasPrefix(field, "y_")
}
