package cli

import (
	"fmt"

	pg "kennel-console/internal/adapters/storage/postgres"
	"kennel-console/internal/domain/kennels"

	"github.com/spf13/cobra"
)

func NewKennelsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kennels",
		Short: "Administración de kennels desde la terminal",
	}
	cmd.AddCommand(newKennelsAddCommand(rootOpts))
	return cmd
}

func newKennelsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea kennels numerados a continuación del mayor existente",
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

			svc := kennels.NewService(pg.NewStore(db).Repos().Kennels, nil, rootOpts.Logger)
			created, err := svc.AddKennels(cmd.Context(), count)
			if err != nil {
				return err
			}

			for _, k := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", k.Number, k.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "cantidad de kennels a crear")

	return cmd
}
