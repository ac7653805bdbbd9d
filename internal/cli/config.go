package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redacted = "********"

func newConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ledger configuration",
		Long: `Configuration hierarchy (highest to lowest priority):
1. Environment variables (PAPERFI_*)
2. Config file (config.toml)
3. Defaults`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			shown := *cfg
			if shown.JWT.Secret != "" {
				shown.JWT.Secret = redacted
			}
			if shown.Database.Password != "" {
				shown.Database.Password = redacted
			}
			if shown.Redis.Password != "" {
				shown.Redis.Password = redacted
			}
			if shown.Minter.SecretKey != "" {
				shown.Minter.SecretKey = redacted
			}

			out, err := yaml.Marshal(shown)
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = opts.out.Write(out)
			return err
		},
	})
	return cmd
}
