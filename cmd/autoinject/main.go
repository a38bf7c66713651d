package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/autoinject/internal/cli"
	"github.com/toyz/autoinject/internal/utils"
)

// reportedError marks errors already rendered by the DiagnosticReporter
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := cli.NewViper()
	var configFile string

	root := &cobra.Command{
		Use:   "autoinject [patterns...]",
		Short: "Generate godi registrations for @Injectable types",
		Long: `autoinject scans Go packages for types annotated with @Injectable and
generates, per package, a function that registers them with a godi service
collection.

Annotate a type in its doc comment:

  // @Injectable(InjectSingleton, UserRepository)
  type UserStore struct{ ... }

Every processed package receives autoinject_marker.go, which declares the
Injectable marker and the InjectScoped, InjectSingleton and InjectTransient
lifetimes. Packages with annotated types also receive autoinject_gen.go with

  func AutoInject(services godi.Collection) error

Patterns follow the go tool (default ./...).

Examples:
  autoinject                          # Generate for every package in the module
  autoinject ./internal/...           # Generate below internal/
  autoinject --dry-run ./service      # Print the generated files instead of writing them
  autoinject clean ./...              # Delete generated files`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, configFile, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default .autoinject.yaml in the working directory)")
	flags.BoolP("verbose", "v", false, "Enable verbose output, including skipped types")
	flags.BoolP("quiet", "q", false, "Only show errors and final results")
	flags.StringSlice("tags", nil, "Comma separated build tags")
	flags.Bool("dry-run", false, "Print generated files (or files to delete) without touching the disk")
	flags.Bool("no-module-check", false, "Do not warn when go.mod does not require godi")
	flags.StringP("dir", "C", "", "Run as if started in this directory")

	cobra.CheckErr(v.BindPFlag(cli.KeyVerbose, flags.Lookup("verbose")))
	cobra.CheckErr(v.BindPFlag(cli.KeyQuiet, flags.Lookup("quiet")))
	cobra.CheckErr(v.BindPFlag(cli.KeyTags, flags.Lookup("tags")))
	cobra.CheckErr(v.BindPFlag(cli.KeyDryRun, flags.Lookup("dry-run")))
	cobra.CheckErr(v.BindPFlag(cli.KeyDir, flags.Lookup("dir")))

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("no-module-check") {
			off, _ := cmd.Flags().GetBool("no-module-check")
			v.Set(cli.KeyModuleCheck, !off)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "generate [patterns...]",
		Short: "Generate marker and registration files (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, configFile, args)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "clean [patterns...]",
		Short: "Delete autoinject_marker.go and autoinject_gen.go files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, v, configFile, args)
		},
	})

	return root
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, configFile string, args []string) error {
	cfg, err := cli.LoadConfig(v, configFile, args)
	if err != nil {
		return err
	}
	diagnostics := diagnosticsFor(cmd, cfg)

	diagnostics.Section("autoinject")
	if cfg.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Patterns: %v", cfg.Patterns)
		diagnostics.List("Directory: %s", cfg.Dir)
		if len(cfg.Tags) > 0 {
			diagnostics.List("Build tags: %v", cfg.Tags)
		}
		diagnostics.List("Dry run: %t", cfg.DryRun)
	}

	generator := cli.NewGeneratorWithDiagnostics(cfg, diagnostics)
	err = generator.Run(cmd.Context())
	if generator.Summary().PackagesProcessed > 0 {
		generator.ReportSummary()
	}
	if err != nil {
		generator.Reporter().ReportError(err)
		return &reportedError{err: err}
	}

	if cfg.DryRun {
		diagnostics.Success("Dry run complete, nothing was written")
	} else {
		diagnostics.Success("Registrations are up to date")
	}
	return nil
}

func runClean(cmd *cobra.Command, v *viper.Viper, configFile string, args []string) error {
	cfg, err := cli.LoadConfig(v, configFile, args)
	if err != nil {
		return err
	}
	diagnostics := diagnosticsFor(cmd, cfg)

	diagnostics.Section("autoinject clean")
	removed, err := cli.NewCleaner(cfg).CleanGeneratedFiles(cmd.Context())
	for _, path := range removed {
		if cfg.DryRun {
			diagnostics.FileWritten("would remove", path)
		} else {
			diagnostics.FileWritten("remove", path)
		}
	}
	if err != nil {
		cli.NewDiagnosticReporterTo(cfg.Verbose, diagnostics.ErrOut()).ReportError(err)
		return &reportedError{err: err}
	}

	diagnostics.Success("Removed %d generated file(s)", len(removed))
	return nil
}

// diagnosticsFor builds the diagnostic system for cfg, writing to the
// command's streams when they were redirected
func diagnosticsFor(cmd *cobra.Command, cfg *cli.Config) *utils.DiagnosticSystem {
	diagnostics := cfg.Diagnostics()
	if cmd.OutOrStdout() != os.Stdout || cmd.ErrOrStderr() != os.Stderr {
		diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return diagnostics
}
