// Package main implements the planweaver CLI.
//
// planweaver parses the full planning flag surface, validates it group by group, resolves the
// single operation the invocation asks for and hands the result to the engines as a text,
// JSON or YAML document.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planweaver/internal/config"
	"planweaver/internal/handoff"
	"planweaver/internal/logging"
	"planweaver/internal/params"
)

// newInvocationID generates the id stamped on every handoff document.
var newInvocationID = uuid.NewString

// app holds the state of one command execution.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	verbose    bool
	configPath string
	output     string

	cfg    *config.Config
	format handoff.Format
	logger *zap.Logger
	orch   *params.Orchestrator
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
		orch:   params.Default(),
	}

	cmd := &cobra.Command{
		Use:   "planweaver",
		Short: "planweaver - validate planning flags and resolve the requested operation",
		Long: `planweaver validates the planning flag surface and hands the result to the engines.

Flags are grouped by capability (core, plan, context, evaluation, database, utility).
Each group is validated on its own, then cross-group rules are checked, and exactly one
operation is resolved, in priority order:
  database > evaluation > rerun > plan > utility > plan (goal given) > help

Example:
  planweaver --goal "Migrate the billing service" --sections 8 --context -o json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default .planweaver/config.yaml or $PLANWEAVER_CONFIG)")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output format: text, json or yaml (overrides config)")

	a.orch.DeclareFlags(cmd)
	return cmd
}

// boot loads config, builds the logger and applies presets. It runs before cobra checks the
// mutually exclusive flag groups, so preset values are checked like command line values.
func (a *app) boot(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	if cmd.Flags().Changed("output") {
		format, err := handoff.ParseFormat(a.output)
		if err != nil {
			return usageError(err)
		}
		cfg.Output.Format = string(format)
	}
	if err := cfg.Validate(); err != nil {
		return configError("invalid config %s: %w", path, err)
	}
	format, err := handoff.ParseFormat(cfg.Output.Format)
	if err != nil {
		return configError("invalid config %s: %w", path, err)
	}

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return configError("%w", err)
	}
	a.cfg = cfg
	a.format = format
	a.logger = logger

	logging.For(logger, cfg.Logging, logging.CategoryConfig).Debug("Resolved config",
		zap.String("path", path),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("output", string(format)),
		zap.Int("presets", len(cfg.Presets)))

	boot := logging.For(logger, cfg.Logging, logging.CategoryBoot)

	applied, err := cfg.ApplyPresets(cmd.Flags())
	if err != nil {
		return configError("invalid config %s: %w", path, err)
	}
	if len(applied) > 0 {
		boot.Debug("Applied presets", zap.Strings("flags", applied))
	}

	a.orch = a.orch.WithLogger(logging.For(logger, cfg.Logging, logging.CategoryParams))
	return nil
}

func (a *app) run(cmd *cobra.Command) error {
	res := a.orch.Process(params.NamespaceFromFlags(cmd.Flags()))
	log := logging.For(a.logger, a.cfg.Logging, logging.CategoryHandoff)

	if !res.OK() {
		if err := handoff.NewEmitter(a.stderr, a.format).EmitError(res.Err); err != nil {
			return &ExitError{Code: ExitGeneralError, Err: err}
		}
		return &ExitError{Code: ExitUsageError, Err: res.Err, Reported: true}
	}

	if res.Operation == params.OpHelp {
		log.Debug("No operation requested, showing help")
		if err := cmd.Help(); err != nil {
			return &ExitError{Code: ExitGeneralError, Err: err}
		}
		return nil
	}

	inv, err := handoff.NewInvocation(newInvocationID(), res)
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	if err := handoff.NewEmitter(a.stdout, a.format).Emit(inv); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: fmt.Errorf("failed to write invocation: %w", err)}
	}
	log.Debug("Handed off invocation", zap.String("id", inv.ID), zap.String("operation", string(inv.Operation)))
	return nil
}

// execute runs the root command with args and returns the process exit code. Errors that
// were not already reported are written to stderr.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		_ = handoff.NewEmitter(stderr, handoff.FormatText).EmitError(err)
	}
	return exitCode(err)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
