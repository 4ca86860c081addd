package cli

import (
	"os"

	"antika-pos/config"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := config.NewLogger(os.Stderr, opts.logLevel(), opts.Config.LogFormat)
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer config.Close(db)
			log.Info("schema migrated", "driver", opts.DBDriver)
			return nil
		},
	}
}
