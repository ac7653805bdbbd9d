package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func newTokenCommand(opts *options) *cobra.Command {
	var (
		name   string
		ttl    time.Duration
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "token <identity>",
		Short: "Mint a bearer token for development",
		Long: `Signs a token for <identity> with the configured jwt.secret. Production
deployments take tokens from their identity provider instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shared.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.App.IsProduction() {
				return fmt.Errorf("token: refusing to mint tokens in production")
			}
			jwtCfg := cfg.JWT
			if ttl > 0 {
				jwtCfg.Expiration = ttl
			}

			token, err := auth.NewJWTService(jwtCfg, shared.SystemClock{}).Issue(id, name)
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(opts.out)
				enc.SetIndent("", "  ")
				return enc.Encode(token)
			}
			fmt.Fprintln(opts.out, token.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name carried in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: jwt.expiration)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the token with its expiry as JSON")
	return cmd
}
