package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/config"
)

// Runtime is everything a command needs once configuration is resolved.
type Runtime struct {
	API    api.BusinessAPI
	Clock  clock.Clock
	Logger zerolog.Logger
	Close  func() error
}

// Builder wires a Runtime from the final configuration.
type Builder func(cfg *config.Config) (*Runtime, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	build   Builder
	runtime *Runtime
}

// NewRootCommand creates the root cobra command with global flags. The
// runtime is built on first use, after flags have been applied.
func NewRootCommand(loader *config.Loader, build Builder) *RootCommand {
	root := &RootCommand{
		loader: loader,
		build:  build,
	}

	root.cmd = &cobra.Command{
		Use:   "farm",
		Short: "Track farm worker hours and soil health",
		Long: `farm records when workers clock in and out, totals their daily and
weekly hours with overtime, and interprets soil test results for fields.

EXAMPLES:
  farm worker add --name "Alice Moreno" --position Harvester
  farm clock in <worker-id>
  farm clock out <worker-id>
  farm hours week <worker-id> --offset -1
  farm soil add --field <field-id> --ph 6.4 --om 3.2 --p 22 --k 160 --cec 14
  farm export week <worker-id> --format xlsx
  farm serve --addr :8080

CONFIGURATION:
  Priority order: command-line flags > environment > .env file > defaults

    FARM_DATABASE_DIR                  Database directory (default: ~/.farm)
    FARM_DATABASE_FILENAME             Database filename (default: farm.db)
    FARM_CLOCK_OVERTIME_THRESHOLD      Weekly overtime threshold (default: 40)
    FARM_CLOCK_HOURS_PRECISION         Decimal places for hours (default: 2)
    FARM_SOIL_RECENT_MAX_AGE_DAYS      Age in days before a test is stale (default: 1095)
    FARM_SOIL_THRESHOLDS_FILE          YAML file overriding nutrient tables
    FARM_TIME_LOCATION                 IANA time zone for dates (default: local)
    FARM_SERVER_ADDRESS                HTTP listen address (default: :8080)
    FARM_APPLICATION_TIMEOUT           Per-command timeout (default: 60s)
    FARM_APPLICATION_VERBOSE           Debug logging (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the cobra command, mainly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the runtime afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.runtime != nil && r.runtime.Close != nil {
		if cerr := r.runtime.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides FARM_DATABASE_DIR)")
	flags.String("db-filename", "", "Database filename (overrides FARM_DATABASE_FILENAME)")
	flags.Float64("overtime-threshold", 0, "Weekly overtime threshold in hours (overrides FARM_CLOCK_OVERTIME_THRESHOLD)")
	flags.String("thresholds-file", "", "Nutrient threshold YAML (overrides FARM_SOIL_THRESHOLDS_FILE)")
	flags.String("addr", "", "HTTP listen address (overrides FARM_SERVER_ADDRESS)")
	flags.Duration("timeout", 0, "Command timeout (overrides FARM_APPLICATION_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides FARM_APPLICATION_VERBOSE)")
}

// overrides collects the global flags the user actually set.
func (r *RootCommand) overrides(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("overtime-threshold") {
		v, _ := flags.GetFloat64("overtime-threshold")
		o.OvertimeThreshold = &v
	}
	if flags.Changed("thresholds-file") {
		v, _ := flags.GetString("thresholds-file")
		o.ThresholdsFile = &v
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		o.ServerAddress = &v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	return o
}

// app resolves configuration and builds the runtime once per process.
func (r *RootCommand) app(cmd *cobra.Command) (*App, error) {
	cfg, err := r.loader.LoadWithOverrides(r.overrides(cmd))
	if err != nil {
		return nil, err
	}

	if r.runtime == nil {
		rt, err := r.build(cfg)
		if err != nil {
			return nil, err
		}
		r.runtime = rt
	}
	return NewApp(r.runtime.API, cfg, r.runtime.Clock, r.runtime.Logger, cmd.OutOrStdout()), nil
}

// run executes fn with the configured command timeout.
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	app, err := r.app(cmd)
	if err != nil {
		return err
	}

	timeout := app.config.Application.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return fn(ctx, app)
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.workerCommand(),
		r.clockCommand(),
		r.hoursCommand(),
		r.farmCommand(),
		r.fieldCommand(),
		r.soilCommand(),
		r.exportCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(app).Execute(ctx)
		},
	}
}

// Run is the process entry point used by main.
func Run(build Builder, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(config.NewLoader(), build)
	root.cmd.SetArgs(args)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
