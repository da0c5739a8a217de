package cli

import (
	"errors"
	"fmt"

	pg "kennel-console/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

var errNoDSN = errors.New("DB_DSN is required for this command")

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el schema de Postgres (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := rootOpts.Config.DB.DSN
			if dsn == "" {
				return errNoDSN
			}

			db, err := pg.Open(dsn)
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			rootOpts.Logger.Info("schema applied", nil)
			return nil
		},
	}
}
