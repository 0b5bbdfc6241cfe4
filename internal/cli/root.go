package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"taskmcp/internal/config"
	"taskmcp/internal/flags"
	"taskmcp/internal/logging"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Exit code contract:
// 0 = every edge applied (or nothing to do)
// 1 = every edge failed
// 2 = partial failure (some edges failed)
// 3 = fatal error (batch rejected before dispatch, or bad configuration)
const (
	exitOK      = 0
	exitAllFail = 1
	exitPartial = 2
	exitFatal   = 3
)

// exitError carries a process exit code out of a command. A nil err means
// the failure was already reported through the output sinks.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func fatal(err error) error {
	return &exitError{code: exitFatal, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// app is the state shared by every command of one invocation.
type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	colorize bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskmcp",
		Short: "Expose the Synaptik task service as MCP tools",
		Long: `taskmcp exposes the Synaptik task service to agents as MCP tools and
gives operators direct access to the dependency batch operations.

Examples:
	# Serve the tools over stdio (for an MCP client)
	taskmcp serve

	# Serve over streamable HTTP
	taskmcp serve --transport http --addr :8080

	# Make a task depend on two others
	taskmcp link 0b0c9f8e-... --depends-on 5d7e3c1a-...,9a8b7c6d-...

	# Remove every dependency of a task
	taskmcp unlink 0b0c9f8e-...

	# List the exposed tools
	taskmcp tools list

Configuration:
	Flags override SYNAPTIK_* environment variables, which override the config
	file (--config, $SYNAPTIK_CONFIG or ~/.taskmcp/config.yaml), which overrides
	built-in defaults. Run "taskmcp config show" to see the effective values.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	root.SetVersionTemplate("{{.Version}}\n")

	d := config.New()
	pf := root.PersistentFlags()
	pf.String(flags.FlagConfig, "", "Config file (default: $SYNAPTIK_CONFIG or ~/.taskmcp/config.yaml)")
	pf.Bool(flags.FlagVerbose, false, "Enable verbose logging (every task service call and full error details)")
	pf.String(flags.FlagBaseURL, d.API.BaseURL, "Task service base URL")
	pf.String(flags.FlagToken, "", "Bearer token for the task service (default: $SYNAPTIK_API_TOKEN or $SYNAPTIK_TOKEN)")
	pf.Duration(flags.FlagAPITimeout, d.API.Timeout, "Timeout for each task service call (0 = none)")
	pf.String(flags.FlagTimezone, "", "IANA timezone for today/overdue queries (default: $TZ or UTC)")
	pf.Bool(flags.FlagBreaker, false, "Guard task service calls with a circuit breaker")

	root.AddCommand(
		newServeCmd(a),
		newLinkCmd(a),
		newUnlinkCmd(a),
		newToolsCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load resolves the effective configuration for the command being run and
// builds the logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	flagPath, _ := cmd.Flags().GetString(flags.FlagConfig)
	path, explicit := config.DiscoverPath(flagPath)

	bindings := make(map[string]*pflag.Flag, len(flags.ConfigKeys))
	for name, key := range flags.ConfigKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			bindings[key] = f
		}
	}

	cfg, err := config.Load(path, explicit, bindings)
	if err != nil {
		return fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		return fatal(err)
	}
	a.cfg = cfg

	if a.log == nil {
		log, err := logging.New(cfg.Runtime.Verbose)
		if err != nil {
			return fatal(err)
		}
		a.log = log
	}
	a.log.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("timezone", cfg.Runtime.Timezone))
	return nil
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, colorize: !color.NoColor}
	err := newRootCmd(a).ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}

	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}
