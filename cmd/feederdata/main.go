// Command feederdata builds a labeled feeder dataset: per-load transformer
// and phase labels, per-transformer load groups, and synthetic 15-minute load
// profiles with the engine commands that install them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-feederdata/pkg/config"
	"github.com/dd0wney/cluso-feederdata/pkg/dataset"
	"github.com/dd0wney/cluso-feederdata/pkg/export"
	"github.com/dd0wney/cluso-feederdata/pkg/loadshape"
	"github.com/dd0wney/cluso-feederdata/pkg/logging"
	"github.com/dd0wney/cluso-feederdata/pkg/metrics"
	"github.com/dd0wney/cluso-feederdata/pkg/snapshot"
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

type options struct {
	configPath  string
	circuitPath string
	shapesPath  string
	outDir      string
	metricsOut  string
	logFile     string
	tui         bool
	compress    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("feederdata", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "Build configuration file (YAML); defaults apply when empty")
	fs.StringVar(&o.circuitPath, "circuit", "", "Circuit snapshot file (YAML)")
	fs.StringVar(&o.shapesPath, "loadshapes", "", "Base loadshape definitions (.dss)")
	fs.StringVar(&o.outDir, "out", "", "Output directory (overrides output.dir)")
	fs.StringVar(&o.metricsOut, "metrics-out", "", "Write build metrics in Prometheus text format to this file")
	fs.StringVar(&o.logFile, "log-file", "", "Write JSON logs to this file instead of stderr")
	fs.BoolVar(&o.tui, "tui", false, "Show a progress bar while profiles are synthesized")
	fs.BoolVar(&o.compress, "compress", false, "Snappy-compress artifacts (overrides output.compress)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.circuitPath == "" {
		return o, errors.New("-circuit is required")
	}
	if o.shapesPath == "" {
		return o, errors.New("-loadshapes is required")
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "feederdata: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("feederdata: "+err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if o.outDir != "" {
		cfg.Output.Dir = o.outDir
	}
	if o.compress {
		cfg.Output.Compress = true
	}

	logger, closeLog, err := openLogger(o, &cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	snap, err := snapshot.Open(o.circuitPath)
	if err != nil {
		return err
	}
	circuit := snap.Circuit()

	shapes, err := loadshape.Open(o.shapesPath)
	if err != nil {
		return err
	}
	logger.Info("inputs loaded",
		logging.Path(o.circuitPath),
		logging.Count(len(circuit.Loads)),
		logging.Strings("base_profiles", shapes.Names()))

	opts, err := dataset.OptionsFromConfig(&cfg)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()

	var ds *dataset.Dataset
	if o.tui {
		ds, err = buildWithProgress(ctx, opts, logger, reg, circuit, shapes.Map())
	} else {
		ds, err = dataset.NewBuilder(opts, dataset.WithLogger(logger), dataset.WithMetrics(reg)).
			Build(ctx, circuit, shapes.Map())
	}
	if err != nil {
		writeMetrics(o.metricsOut, reg, logger)
		return err
	}

	sink, dest, err := openSink(ctx, &cfg)
	if err != nil {
		return err
	}
	written, err := export.WriteDataset(ctx, sink, ds, cfg.Output.Compress, reg)
	if err != nil {
		return err
	}
	logger.Info("dataset written", logging.BuildID(ds.BuildID), logging.String("destination", dest))

	writeMetrics(o.metricsOut, reg, logger)

	fmt.Fprintln(stdout, renderSummary(snap.Name, ds, written, dest))
	return nil
}

func openLogger(o options, cfg *config.Config) (logging.Logger, func(), error) {
	level := cfg.Level()
	if env := os.Getenv(logging.LevelEnv); env != "" {
		level = logging.ParseLevel(env)
	}

	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.NewJSONLogger(f, level), func() { f.Close() }, nil
	case o.tui:
		// JSON lines would tear the progress bar.
		return logging.NewNopLogger(), func() {}, nil
	default:
		return logging.NewJSONLogger(os.Stderr, level), func() {}, nil
	}
}

func openSink(ctx context.Context, cfg *config.Config) (export.Sink, string, error) {
	if s3cfg := cfg.Output.S3; s3cfg != nil {
		sink, err := export.NewS3Sink(ctx, s3cfg)
		if err != nil {
			return nil, "", err
		}
		return sink, "s3://" + s3cfg.Bucket + "/" + sink.Key(""), nil
	}

	sink, err := export.NewFileSink(cfg.Output.Dir)
	if err != nil {
		return nil, "", err
	}
	return sink, cfg.Output.Dir, nil
}

func writeMetrics(path string, reg *metrics.Registry, logger logging.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("metrics not written", logging.Path(path), logging.Error(err))
		return
	}
	defer f.Close()
	if err := reg.WriteText(f); err != nil {
		logger.Warn("metrics not written", logging.Path(path), logging.Error(err))
	}
}

type buildResult struct {
	ds  *dataset.Dataset
	err error
}

// buildWithProgress runs the build in the background while a progress bar
// tracks synthesis. Interrupting the bar cancels the build.
func buildWithProgress(ctx context.Context, opts dataset.Options, logger logging.Logger, reg *metrics.Registry,
	circuit topology.Circuit, bases map[string][]float64) (*dataset.Dataset, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel("Synthesizing load profiles", cancel), tea.WithOutput(os.Stderr))

	results := make(chan buildResult, 1)
	go func() {
		builder := dataset.NewBuilder(opts,
			dataset.WithLogger(logger),
			dataset.WithMetrics(reg),
			dataset.WithProgress(func(done, total int) {
				p.Send(progressMsg{done: done, total: total})
			}))
		ds, err := builder.Build(ctx, circuit, bases)
		results <- buildResult{ds: ds, err: err}
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-results
		return nil, fmt.Errorf("progress display: %w", err)
	}

	r := <-results
	return r.ds, r.err
}
