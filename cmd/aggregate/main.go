package main

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/pate/internal/aggregation"
	"github.com/tensorplex-labs/pate/internal/config"
	"github.com/tensorplex-labs/pate/internal/dataio"
	"github.com/tensorplex-labs/pate/internal/tensor"
	"github.com/tensorplex-labs/pate/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadAggregatorEnv(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load aggregator config")
	}

	predictions := loadPredictions(cfg)
	teachers, groups, samples := predictions.Dim(0), predictions.Dim(1), predictions.Dim(2)
	log.Info().
		Int("teachers", teachers).
		Int("groups", groups).
		Int("samples", samples).
		Msg("loaded teacher predictions")

	agg := aggregation.New(
		aggregation.WithNumClasses(cfg.NumClasses),
		aggregation.WithLapScale(cfg.LapScale),
	)

	baseline, err := agg.MostFrequent(predictions)
	if err != nil {
		log.Fatal().Err(err).Msg("deterministic aggregation failed")
	}
	log.Info().Msgf("most-frequent labels for group 0: %v", groupLabels(baseline, 0))

	noisy, cleanVotes, err := agg.NoisyMax(predictions, cfg.ReturnCleanVotes)
	if err != nil {
		log.Fatal().Err(err).Msg("noisy aggregation failed")
	}
	log.Info().Float64("lapScale", cfg.LapScale).Msgf("noisy-max labels for group 0: %v", groupLabels(noisy, 0))

	if cleanVotes != nil {
		log.Info().
			Int("classes", cleanVotes.Dim(0)).
			Int("groups", cleanVotes.Dim(1)).
			Int("samples", cleanVotes.Dim(2)).
			Msg("clean vote counts retained for privacy accounting")
	}

	agreement := 0
	for i, label := range baseline.Data() {
		if label == noisy.Data()[i] {
			agreement++
		}
	}
	log.Info().Msgf("noisy labels agree with the plurality baseline on %d of %d samples", agreement, groups*samples)
}

func loadPredictions(cfg *config.AggregatorEnvConfig) *tensor.Int {
	if cfg.PredictionsPath != "" {
		predictions, err := dataio.Load(cfg.PredictionsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.PredictionsPath).Msg("failed to load prediction snapshot")
		}
		return predictions
	}

	log.Info().Msg("no PREDICTIONS_PATH set, generating demo predictions")
	return demoPredictions(cfg.NumClasses)
}

// demoPredictions builds an ensemble where most teachers agree per sample,
// with a dissenting minority, so the two aggregation modes are comparable.
func demoPredictions(numClasses int) *tensor.Int {
	const (
		teachers = 50
		groups   = 4
		samples  = 25
	)

	predictions := tensor.NewInt(teachers, groups, samples)
	for n := 0; n < groups; n++ {
		for s := 0; s < samples; s++ {
			consensus := int32(rand.IntN(numClasses) + 1)
			for t := 0; t < teachers; t++ {
				label := consensus
				if rand.Float64() < 0.2 {
					label = int32(rand.IntN(numClasses) + 1)
				}
				predictions.Set(label, t, n, s)
			}
		}
	}
	return predictions
}

func groupLabels(labels *tensor.Int, n int) []int32 {
	out := make([]int32, labels.Dim(1))
	for s := range out {
		out[s] = labels.At(n, s)
	}
	return out
}
