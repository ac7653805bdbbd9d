package cli

import (
	"context"
	"fmt"

	identityapp "github.com/paperfi/backend/internal/application/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ledgerEnv struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *persistence.Database
	platform *identityapp.PlatformService
}

func (e *ledgerEnv) Close() {
	if err := e.db.Close(); err != nil {
		e.log.Warn("Error closing database", zap.Error(err))
	}
	_ = e.log.Sync()
}

func openLedger(ctx context.Context, opts *options) (*ledgerEnv, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := opts.newLogger()
	if err != nil {
		return nil, err
	}
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:   log,
		LogLevel: logger.GormLevel("error"),
	})
	if err != nil {
		return nil, err
	}
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	scope := persistence.NewGormTransactionScope(db.DB)
	clock := shared.NewMonotonicClock(shared.SystemClock{})
	return &ledgerEnv{
		cfg:      cfg,
		log:      log,
		db:       db,
		platform: identityapp.NewPlatformService(scope, clock, cfg.Ledger.DefaultFeePercent, log),
	}, nil
}

func newBootstrapAdminCommand(opts *options) *cobra.Command {
	var caller string
	cmd := &cobra.Command{
		Use:   "bootstrap-admin <identity>",
		Short: "Create the platform or add an admin",
		Long: `Creates the platform configuration and fee vault with <identity> as
its first admin; --as, if given, must then be <identity> too. Once the
platform exists, --as must name an existing admin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := shared.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			by := admin
			if caller != "" {
				if by, err = shared.ParseIdentity(caller); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			env, err := openLedger(ctx, opts)
			if err != nil {
				return err
			}
			defer env.Close()

			p, err := env.platform.BootstrapAdmin(ctx, by, admin)
			if err != nil {
				return fmt.Errorf("bootstrap-admin: %w", err)
			}
			fmt.Fprintf(opts.out, "admins: %v\nfee: %d%%\n", p.Admins, p.FeePercent)
			return nil
		},
	}
	cmd.Flags().StringVar(&caller, "as", "", "existing admin authorizing the addition")
	return cmd
}

func newFundCommand(opts *options) *cobra.Command {
	var units bool
	cmd := &cobra.Command{
		Use:   "fund <identity> <amount>",
		Short: "Credit a wallet from outside the ledger",
		Long: `Credits <amount> to the wallet of <identity>. The amount is read in
major units (e.g. 1.5) using ledger.currency_decimals, or as raw base units
with --units.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := shared.ParseIdentity(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			env, err := openLedger(ctx, opts)
			if err != nil {
				return err
			}
			defer env.Close()

			decimals := env.cfg.Ledger.CurrencyDecimals
			if units {
				decimals = 0
			}
			amount, err := valueobject.ParseMoney(args[1], decimals)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			w, err := env.platform.Fund(ctx, id, amount)
			if err != nil {
				return fmt.Errorf("fund: %w", err)
			}
			symbol := env.cfg.Ledger.CurrencySymbol
			fmt.Fprintf(opts.out, "credited: %s\nwallet: %s\n",
				amount.Format(env.cfg.Ledger.CurrencyDecimals, symbol),
				valueobject.NewMoney(w.WalletBalance).Format(env.cfg.Ledger.CurrencyDecimals, symbol),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&units, "units", false, "read the amount as base units")
	return cmd
}
