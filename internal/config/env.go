// Package config defines environment configuration structs and loaders.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// AggregatorEnvConfig configures the aggregation driver.
type AggregatorEnvConfig struct {
	// LapScale is the Laplace scale b; the per-query privacy cost grows as 1/b.
	LapScale float64 `env:"AGGREGATOR_LAP_SCALE, default=0.1"`
	// NumClasses is the label-space size; teacher labels range over 1..NumClasses.
	NumClasses int `env:"AGGREGATOR_NUM_CLASSES, default=5"`
	// ReturnCleanVotes keeps the pre-noise counts for privacy accounting.
	ReturnCleanVotes bool `env:"AGGREGATOR_RETURN_CLEAN_VOTES, default=true"`
	// PredictionsPath points at a saved prediction snapshot; empty runs the
	// built-in demo data.
	PredictionsPath string `env:"PREDICTIONS_PATH"`
	Environment     string `env:"ENVIRONMENT, default=dev"`
}

// LoadAggregatorEnv reads the aggregator configuration from the environment.
func LoadAggregatorEnv(ctx context.Context) (*AggregatorEnvConfig, error) {
	cfg := &AggregatorEnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
