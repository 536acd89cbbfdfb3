package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"conflictsched/internal/problem"
	"conflictsched/internal/strategy"
)

var (
	directory  string
	strategies string
	seeds      int
	iterations int
	timeBudget time.Duration
	output     string
)

type row struct {
	Instance    string
	Strategy    string
	Seed        int64
	Cost        int64
	Feasible    bool
	Iterations  int
	Termination string
	Millis      int64
	Err         string
}

func main() {
	flag.StringVar(&directory, "dir", "testdata", "directory of instance JSON files")
	flag.StringVar(&strategies, "strategies", "greedy,localsearch", "comma-separated strategy names")
	flag.IntVar(&seeds, "seeds", 5, "seeds per strategy (0..seeds-1)")
	flag.IntVar(&iterations, "iterations", 20000, "iteration budget per run")
	flag.DurationVar(&timeBudget, "time", 0, "wall-clock budget per run (0 = unbounded)")
	flag.StringVar(&output, "out", "", "CSV output file (empty = stdout)")
	flag.Parse()

	entries, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read instance directory: %v", err)
	}

	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		return filepath.Join(directory, entry.Name()), strings.HasSuffix(entry.Name(), ".json")
	})
	if len(files) == 0 {
		log.Fatalf("no instance files in %v", directory)
	}

	names := lo.Map(strings.Split(strategies, ","), func(name string, _ int) string {
		return strings.TrimSpace(name)
	})

	rows := make([]row, 0, len(files)*len(names)*seeds)
	for _, file := range files {
		instance, err := problem.InstanceFromJSON(file)
		if err != nil {
			log.Printf("skipping %v: %v", file, err)
			continue
		}
		for _, name := range names {
			for seed := 0; seed < seeds; seed++ {
				rows = append(rows, benchmark(instance, filepath.Base(file), name, int64(seed)))
			}
		}
	}

	if err := writeCSV(rows); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func benchmark(instance *problem.Instance, file, name string, seed int64) row {
	cfg := strategy.DefaultConfig()
	cfg.Seed = seed
	cfg.IterationBudget = iterations
	cfg.TimeBudget = timeBudget

	result := row{Instance: file, Strategy: name, Seed: seed}

	solver, err := strategy.New(name, cfg)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	outcome, err := solver.Solve(context.Background(), instance)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.Cost = outcome.Cost
	result.Feasible = outcome.Feasible
	result.Iterations = outcome.Iterations
	result.Termination = string(outcome.Termination)
	result.Millis = outcome.Duration.Milliseconds()
	return result
}

func writeCSV(rows []row) error {
	out := os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"instance", "strategy", "seed", "cost", "feasible", "iterations", "termination", "ms", "error"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Instance,
			r.Strategy,
			fmt.Sprint(r.Seed),
			fmt.Sprint(r.Cost),
			fmt.Sprint(r.Feasible),
			fmt.Sprint(r.Iterations),
			r.Termination,
			fmt.Sprint(r.Millis),
			r.Err,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
