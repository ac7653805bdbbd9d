package cli

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/paperfi/backend/internal/infrastructure/migration"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the SQL migrations on postgres",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Driver != "postgres" {
				return fmt.Errorf("migrate: database.driver is %q; sqlite schemas are created on server start", cfg.Database.Driver)
			}
			log, err := opts.newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer db.Close()

			m, err := migration.New(db, dir, log)
			if err != nil {
				return err
			}
			defer m.Close()

			switch args[0] {
			case "up":
				err = m.Up()
			case "down":
				err = m.Down()
			default:
				return fmt.Errorf("migrate: unknown direction %q, want up or down", args[0])
			}
			if err != nil {
				return err
			}
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "schema version: %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "path", "migrations", "migrations directory")
	return cmd
}
