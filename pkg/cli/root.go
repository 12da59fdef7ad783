// Package cli implements the sqlcoach command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sqlcoach/internal/catalog"
	"sqlcoach/internal/config"
	"sqlcoach/internal/domain"
	"sqlcoach/internal/engine"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions carries the flag values and the resolved configuration shared
// by all subcommands.
type rootOptions struct {
	engine     string
	output     string
	catalogDir string
	workDir    string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "sqlcoach",
		Short:         "SQL teaching-exercise runner",
		Long:          "Runs a catalog of SQL exercises against disposable databases and verifies their effects.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env fills in variables not already set in the environment.
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg := config.LoadFromEnv()

			// Precedence: flag > env > default.
			if cmd.Flags().Changed("engine") {
				cfg.Engine = opts.engine
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = opts.output
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogDir = opts.catalogDir
			}
			if cmd.Flags().Changed("work-dir") {
				cfg.WorkDir = opts.workDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.engine, "engine", domain.EngineSQLite, "Database engine (sqlite, duckdb)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json, html)")
	rootCmd.PersistentFlags().StringVar(&opts.catalogDir, "catalog", "", "Load exercises from a directory instead of the built-in catalog")
	rootCmd.PersistentFlags().StringVar(&opts.workDir, "work-dir", "", "Directory for disposable sandbox files (default: system temp dir)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newDescribeCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// normalizeFlagName accepts snake_case spellings of multi-word flags.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// logger builds the slog logger for a command invocation. Logs go to
// stderr so stdout stays clean for the report.
func (o *rootOptions) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: o.cfg.SlogLevel(),
	}))
}

// loadCatalog returns the exercise catalog selected by configuration.
func (o *rootOptions) loadCatalog() (domain.Catalog, error) {
	if o.cfg.CatalogDir != "" {
		return catalog.LoadDirectory(o.cfg.CatalogDir)
	}
	return catalog.LoadEmbedded()
}

// sandboxFactory returns the factory for the configured engine.
func (o *rootOptions) sandboxFactory() domain.SandboxFactory {
	if o.cfg.Engine == domain.EngineDuckDB {
		return engine.NewDuckDBFactory()
	}
	return engine.NewSQLiteFactory(o.cfg.WorkDir)
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
