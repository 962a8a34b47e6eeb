package experiments

import (
	"fmt"
	"time"

	"equity/experiments/metrics"
	"equity/game"
	"equity/searcher"

	"github.com/rs/zerolog/log"
)

// Config is one search setup to estimate the hand with.
type Config struct {
	ID         int
	Goroutines int
	Episodes   int
	Width      int
	Seed       uint64
}

var speedupGoroutines = []int{1, 2, 4, 8, 16}

var convergenceEpisodes = []int{100, 250, 500, 1000, 2500, 5000, 10000}

// RunSpeedup estimates the same hand with a growing number of goroutines and a fixed budget.
func RunSpeedup(hole game.State, episodes int, seed uint64, root string) ([]metrics.Record, error) {
	configs := []Config{}
	for i, goroutines := range speedupGoroutines {
		configs = append(configs, Config{ID: i + 1, Goroutines: goroutines, Episodes: episodes, Seed: seed})
	}
	return runExperiment("speedup", hole, configs, root)
}

// RunConvergence estimates the same hand single-threaded with a growing budget.
func RunConvergence(hole game.State, seed uint64, root string) ([]metrics.Record, error) {
	configs := []Config{}
	for i, episodes := range convergenceEpisodes {
		configs = append(configs, Config{ID: i + 1, Goroutines: 1, Episodes: episodes, Seed: seed})
	}
	return runExperiment("convergence", hole, configs, root)
}

func runExperiment(name string, hole game.State, configs []Config, root string) ([]metrics.Record, error) {
	hand := fmt.Sprintf("%s %s", hole[0], hole[1])
	start := time.Now()
	records := []metrics.Record{}

	log.Info().Msgf("starting %s experiment for %s...", name, hand)

	for i, config := range configs {
		log.Info().Msgf("starting run %d of %d with %+v...", i+1, len(configs), config)

		equity, metric, err := createMCTS(config).Estimate(hole)
		if err != nil {
			return nil, fmt.Errorf("run %d of %s experiment: %w", config.ID, name, err)
		}
		records = append(records, metrics.Record{
			ID:           config.ID,
			Hand:         hand,
			Equity:       equity,
			SearchMetric: metric,
		})

		log.Info().Msgf("completed run %d of %d: equity %.4f in %s", i+1, len(configs), equity, metric.Duration)
	}

	log.Info().Msgf("completed %s experiment", name)

	if root == "" {
		return records, nil
	}
	if err := Store(root, name, hand, start, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Store writes the records of an experiment and its setup under root/name.
func Store(root, name, hand string, start time.Time, records []metrics.Record) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:      name,
		Hand:      hand,
		Runs:      len(records),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	})
	if err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	log.Info().Msg("stored setup")

	err = writer.WriteRecords(records)
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

func createMCTS(config Config) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithEpisodes(config.Episodes),
		searcher.WithSeed(config.Seed),
		searcher.WithMetrics(),
	}
	if config.Width > 0 {
		options = append(options, searcher.WithWidth(config.Width))
	}
	return searcher.NewMCTS(config.Goroutines, options...)
}
