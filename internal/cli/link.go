package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskmcp/internal/config"
	"taskmcp/internal/deps"
	"taskmcp/internal/flags"
	"taskmcp/internal/output"
)

const batchOutputHelp = `
Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write a JSON array of batch reports or an NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line with a "type" field:
	batch.started, edge.outcome (in completion order), batch.finished or
	batch.failed, and run.finished carrying the exit code.

Exit codes:
	0 = every edge applied, or nothing to do
	1 = every edge failed
	2 = partial failure
	3 = fatal error (batch rejected, dependency listing failed, bad configuration)
`

func newLinkCmd(a *app) *cobra.Command {
	var dependsOn string
	cmd := &cobra.Command{
		Use:   "link TASK_ID --depends-on ID[,ID...]",
		Short: "Make a task depend on one or more other tasks",
		Long: `Make TASK_ID depend on every task listed in --depends-on.

Each edge is applied independently and concurrently; one failing edge does
not stop the others. The report lists every edge in the order given.

Examples:
  taskmcp link 0b0c9f8e-... --depends-on 5d7e3c1a-...,9a8b7c6d-...
  taskmcp link 0b0c9f8e-... --depends-on 5d7e3c1a-... --no-console --emit ndjson
` + batchOutputHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd.Context(), deps.KindLink, args[0], dependsOn)
		},
	}
	cmd.Flags().StringVar(&dependsOn, flags.FlagDependsOn, "", "Comma-separated IDs of the tasks TASK_ID depends on")
	_ = cmd.MarkFlagRequired(flags.FlagDependsOn)
	addBatchFlags(cmd)
	return cmd
}

func newUnlinkCmd(a *app) *cobra.Command {
	var dependsOn string
	cmd := &cobra.Command{
		Use:   "unlink TASK_ID [--depends-on ID[,ID...]]",
		Short: "Remove dependencies from a task",
		Long: `Remove the listed dependencies from TASK_ID.

Without --depends-on every current dependency is removed: the dependency
list is read once and each edge is removed independently.

Examples:
  taskmcp unlink 0b0c9f8e-... --depends-on 5d7e3c1a-...
  taskmcp unlink 0b0c9f8e-...
` + batchOutputHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd.Context(), deps.KindUnlink, args[0], dependsOn)
		},
	}
	cmd.Flags().StringVar(&dependsOn, flags.FlagDependsOn, "", "Comma-separated IDs of the dependencies to remove (empty = all)")
	addBatchFlags(cmd)
	return cmd
}

func addBatchFlags(cmd *cobra.Command) {
	d := config.New()
	f := cmd.Flags()

	// Runtime
	f.Int(flags.FlagMaxInFlight, d.Runtime.MaxInFlight, "Maximum concurrent edge calls (0 = unbounded)")
	f.Duration(flags.FlagTimeout, d.Runtime.Timeout, "Timeout for the whole batch")

	// Output
	f.String(flags.FlagConsoleFormat, d.Output.ConsoleFormat, "Console output format: text|json|ndjson")
	f.String(flags.FlagOut, "", "Write structured output to this path")
	f.String(flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	f.StringSlice(flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	f.Bool(flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out)")
}

func (a *app) runBatch(ctx context.Context, kind deps.Kind, taskID, others string) (err error) {
	out, err := setupOutputManager(a.cfg, a.stdout, a.colorize)
	if err != nil {
		return fatal(fmt.Errorf("create output sinks: %w", err))
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fatal(cerr)
		}
	}()

	env, err := a.newEnv(ctx, deps.WithObserver(out.Observe))
	if err != nil {
		return fatal(err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Runtime.Timeout)
	defer cancel()

	_ = out.Started(taskID, kind)

	var report deps.BatchReport
	if kind == deps.KindLink {
		report, err = env.Linker.Link(ctx, taskID, others)
	} else {
		report, err = env.Linker.Unlink(ctx, taskID, others)
	}
	if err != nil {
		reason := errors.New(deps.Describe(err, a.cfg.Runtime.Verbose))
		_ = out.Failed(taskID, kind, reason, exitFatal)
		_ = out.Finished(exitFatal)
		if a.cfg.Output.NoConsole {
			return fatal(reason)
		}
		return &exitError{code: exitFatal}
	}

	_ = out.Write(report)
	code := exitCodeForBatch(report)
	_ = out.Finished(code)
	if code != exitOK {
		return &exitError{code: code}
	}
	return nil
}

func exitCodeForBatch(r deps.BatchReport) int {
	switch {
	case r.Failed == 0:
		return exitOK
	case r.Succeeded == 0:
		return exitAllFail
	default:
		return exitPartial
	}
}

func setupOutputManager(cfg *config.Config, stdout io.Writer, colorize bool) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat, colorize)); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(stdout, emit)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}
