package strategy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchellh/mapstructure"

	"conflictsched/internal/solution"
)

// OrderingPolicy selects the job order of the constructive phase.
type OrderingPolicy string

const (
	// OrderDemandDesc places heavy jobs first, ties broken by id.
	OrderDemandDesc OrderingPolicy = "demand"
	// OrderConflictDegree places highly conflicted jobs first, then heavy ones.
	OrderConflictDegree OrderingPolicy = "degree"
	// OrderRandom shuffles jobs with the run's seeded generator.
	OrderRandom OrderingPolicy = "random"
)

// Config is the recognized option record for every registered strategy.
// Unused options are ignored by strategies that do not need them.
type Config struct {
	Seed               int64          `mapstructure:"seed"`
	IterationBudget    int            `mapstructure:"iterationBudget"`
	TimeBudget         time.Duration  `mapstructure:"timeBudget"`
	OrderingPolicy     OrderingPolicy `mapstructure:"orderingPolicy"`
	AcceptNonImproving float64        `mapstructure:"acceptNonImproving"`
	ConvergeAfter      int            `mapstructure:"convergeAfter"`
	Cost               string         `mapstructure:"cost"`
	Solver             string         `mapstructure:"solver"`
}

func DefaultConfig() Config {
	return Config{
		Seed:               0,
		IterationBudget:    20000,
		TimeBudget:         0, // unbounded
		OrderingPolicy:     OrderDemandDesc,
		AcceptNonImproving: 0.05,
		ConvergeAfter:      500,
		Cost:               "slots",
		Solver:             "",
	}
}

// ParseConfig decodes an option record on top of the defaults.
func ParseConfig(record map[string]any) (Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cfg,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(record); err != nil {
		return Config{}, fmt.Errorf("cannot decode strategy configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.IterationBudget <= 0 {
		return fmt.Errorf("iterationBudget must be > 0 (got %d)", cfg.IterationBudget)
	}
	if cfg.TimeBudget < 0 {
		return fmt.Errorf("timeBudget must be >= 0 (got %v)", cfg.TimeBudget)
	}
	if cfg.AcceptNonImproving < 0 || cfg.AcceptNonImproving > 1 {
		return fmt.Errorf("acceptNonImproving must lie in [0,1] (got %f)", cfg.AcceptNonImproving)
	}
	if cfg.ConvergeAfter <= 0 {
		return fmt.Errorf("convergeAfter must be > 0 (got %d)", cfg.ConvergeAfter)
	}
	switch cfg.OrderingPolicy {
	case OrderDemandDesc, OrderConflictDegree, OrderRandom:
	default:
		return fmt.Errorf("unknown ordering policy %q", cfg.OrderingPolicy)
	}
	switch cfg.Cost {
	case "slots", "maxload":
	default:
		return fmt.Errorf("unknown cost function %q", cfg.Cost)
	}
	return nil
}

// rng builds the run's private random source. Strategies never read ambient
// global randomness, so equal seeds reproduce equal runs.
func (cfg Config) rng() *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed))
}

func (cfg Config) costFunc() solution.CostFunc {
	switch cfg.Cost {
	case "maxload":
		return solution.MaxLoadCost
	default:
		return solution.SlotCountCost
	}
}
