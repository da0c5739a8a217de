package cli

import (
	"fmt"

	"kennel-console/internal/platform/config"
	"kennel-console/internal/platform/logger"

	"github.com/spf13/cobra"
)

// RootOptions son los flags globales más lo que PersistentPreRunE deja listo.
type RootOptions struct {
	ConfigPath string

	Config *config.Config
	Logger logger.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kennel-console",
		Short: "Consola de administración de la guardería",
		Long: `API de la consola de la guardería: kennels, reservas, alimentación,
clientes y dashboard.

Sin DB_DSN corre con un store in-memory (modo dev).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.Config = cfg
			opts.Logger = logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Log.Level),
				Format: logger.ParseFormat(cfg.Log.Format),
				App:    cfg.Log.App,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "YAML config file (optional)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewKennelsCommand(opts))

	return cmd
}
