// Package cli implements paperfictl, the operator command line of the
// ledger.
package cli

import (
	"fmt"
	"io"

	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time
var Version = "dev"

type options struct {
	cfgFile string
	verbose bool
	out     io.Writer
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (o *options) newLogger() (*zap.Logger, error) {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Format: "console", Output: "stderr"})
}

// NewRootCommand builds paperfictl writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:   "paperfictl",
		Short: "Operate a PaperFi settlement ledger",
		Long: `paperfictl administers a PaperFi ledger directly against its database.

It bootstraps the platform, credits wallets from outside the ledger, mints
development tokens and applies schema migrations.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./config.toml or /etc/paperfi/config.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newVersionCommand(opts),
		newBootstrapAdminCommand(opts),
		newFundCommand(opts),
		newTokenCommand(opts),
		newConfigCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

// Execute runs paperfictl with the process arguments
func Execute(out io.Writer) error {
	return NewRootCommand(out).Execute()
}

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.out, "paperfictl %s\n", Version)
		},
	}
}
