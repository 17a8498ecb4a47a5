package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	wrappers "github.com/jdziat/simple-invocation-wrappers"
	"github.com/jdziat/simple-invocation-wrappers/pkg/metrics"
	"github.com/jdziat/simple-invocation-wrappers/pkg/schedule"
	"github.com/jdziat/simple-invocation-wrappers/pkg/telemetry"
)

var (
	runEvery time.Duration
	runCron  string
	runDelay time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run wrapper scenarios",
	Long: `Runs the named scenarios (all of them when none are given) and records
every invocation. Available scenarios: hello, greet, square, sum, sum-invalid,
timed, stamped, callable.

With --every or --cron the scenarios repeat on that schedule until interrupted.`,
	ValidArgs: scenarioNames,
	RunE:      runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runEvery, "every", 0, "repeat the scenarios at this interval")
	runCmd.Flags().StringVar(&runCron, "cron", "", "repeat the scenarios on a five-field cron schedule")
	runCmd.Flags().DurationVar(&runDelay, "delay", 100*time.Millisecond, "how long the timed scenario sleeps")
	runCmd.MarkFlagsMutuallyExclusive("every", "cron")
}

func runRun(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = scenarioNames
	}
	if err := checkScenarios(names); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, "wrapdemo", cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	env := &scenarioEnv{
		out:     cmd.OutOrStdout(),
		clock:   wrappers.SystemClock(),
		delay:   runDelay,
		logger:  logger,
		store:   store,
		tracer:  telemetry.Tracer(),
		metrics: collector,
	}

	sched, err := runSchedule()
	if err != nil {
		return err
	}
	if sched == nil {
		return runScenarios(ctx, env, names)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := schedule.NewRunner(wrappers.InvokerFunc(func(ctx context.Context, _ wrappers.Args) (any, error) {
		return nil, runScenarios(ctx, env, names)
	}), schedule.WithLogger(logger))
	if err := runner.Add("scenarios", sched, wrappers.NewArgs()); err != nil {
		return err
	}
	if next, ok := runner.Next("scenarios"); ok {
		logger.Info("scenarios scheduled", "next_run", next)
	}

	if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSchedule() (schedule.Schedule, error) {
	switch {
	case runEvery > 0:
		return schedule.Every(runEvery), nil
	case runCron != "":
		return schedule.ParseCron(runCron)
	default:
		return nil, nil
	}
}
