package mip

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const glpsolPath = "glpsol"

type glpkSolver struct{}

func NewGLPKSolver() Solver {
	return &glpkSolver{}
}

func (solver *glpkSolver) Solve(form *Formulation, timeLimit time.Duration) (Outcome, error) {
	dir, err := os.MkdirTemp("", "mip-glpk-*")
	if err != nil {
		return Outcome{}, err
	}
	defer os.RemoveAll(dir)

	modelFile := filepath.Join(dir, "model.lp")
	solutionFile := filepath.Join(dir, "solution.txt")
	if err := os.WriteFile(modelFile, []byte(form.ToLP()), 0o644); err != nil {
		return Outcome{}, err
	}

	seconds := int(timeLimit.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	cmd := exec.Command(glpsolPath,
		"--lp", modelFile,
		"--tmlim", fmt.Sprint(seconds),
		"-o", solutionFile,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Outcome{}, fmt.Errorf("an error occurred during glpsol execution: %v : %v", err, stderr.String())
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return Outcome{}, fmt.Errorf("glpsol produced no solution file: %v", err)
	}

	return parseGLPKSolution(string(output), form)
}
