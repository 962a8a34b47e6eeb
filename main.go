package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"equity/config"
	"equity/experiments"
	"equity/experiments/metrics"
	"equity/game"
	"equity/meta"
	"equity/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	flags := flag.NewFlagSet("equity", flag.ContinueOnError)
	flags.SetOutput(stderr)
	goroutines := flags.Int("goroutines", cfg.Goroutines, "independent search trees run in parallel")
	width := flags.Int("width", cfg.Width, "children generated per expansion")
	seed := flags.Uint64("seed", cfg.Seed, "random seed, 0 seeds from the clock")
	level := flags.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	metricsDir := flags.String("metrics-dir", cfg.MetricsDir, "write run records under this directory")
	experiment := flags.String("experiment", "", "run an experiment instead of a single estimate (speedup, convergence)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: equity [flags] <card1> <card2> [simulations]\n")
		fmt.Fprintf(stderr, "Example: equity As Kh 2000\n\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\n%s", config.Usage())
	}
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if err := setupLogger(stderr, *level); err != nil {
		fmt.Fprintf(stderr, "Invalid log level: %q\n", *level)
		return 1
	}

	if flags.NArg() < 2 || flags.NArg() > 3 {
		flags.Usage()
		return 1
	}
	if *width < 1 || *width > searcher.MaxWidth {
		fmt.Fprintf(stderr, "Invalid width: %d, must be between 1 and %d\n", *width, searcher.MaxWidth)
		return 1
	}

	hole, err := game.ParseHole(flags.Arg(0), flags.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "Invalid card: %v\n", err)
		return 1
	}

	simulations := meta.EPISODES
	if flags.NArg() > 2 {
		simulations, err = strconv.Atoi(flags.Arg(2))
		if err != nil {
			fmt.Fprintf(stderr, "Invalid simulations: %q\n", flags.Arg(2))
			return 1
		}
	}

	switch *experiment {
	case "":
	case "speedup", "convergence":
		return runExperiment(stdout, stderr, *experiment, hole, simulations, *seed, *metricsDir)
	default:
		fmt.Fprintf(stderr, "Unknown experiment: %q\n", *experiment)
		return 1
	}

	options := []searcher.Option{
		searcher.WithEpisodes(simulations),
		searcher.WithWidth(*width),
	}
	if *seed != 0 {
		options = append(options, searcher.WithSeed(*seed))
	}
	if *metricsDir != "" {
		options = append(options, searcher.WithMetrics())
	}

	start := time.Now()
	probability, metric, err := searcher.NewMCTS(*goroutines, options...).Estimate(hole)
	if err != nil {
		fmt.Fprintf(stderr, "Search failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Estimated win probability for ['%s', '%s']: %.2f%%\n", hole[0], hole[1], probability*100)

	if *metricsDir != "" {
		record := metrics.Record{
			ID:           1,
			Hand:         fmt.Sprintf("%s %s", hole[0], hole[1]),
			Equity:       probability,
			SearchMetric: metric,
		}
		if err := experiments.Store(*metricsDir, "single", record.Hand, start, []metrics.Record{record}); err != nil {
			log.Warn().Err(err).Msg("failed to store run record")
		}
	}
	return 0
}

func runExperiment(stdout, stderr io.Writer, name string, hole game.State, simulations int, seed uint64, dir string) int {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if dir == "" {
		dir = meta.METRICS_ROOT
	}

	var records []metrics.Record
	var err error
	switch name {
	case "speedup":
		records, err = experiments.RunSpeedup(hole, simulations, seed, dir)
	case "convergence":
		records, err = experiments.RunConvergence(hole, seed, dir)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Experiment failed: %v\n", err)
		return 1
	}

	for _, r := range records {
		fmt.Fprintf(stdout, "run %d: goroutines=%d episodes=%d equity=%.2f%% duration=%s\n",
			r.ID, r.Goroutines, r.Episodes, r.Equity*100, r.Duration)
	}
	return 0
}

func setupLogger(out io.Writer, level string) error {
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(lvl).With().Timestamp().Logger()
	return nil
}
