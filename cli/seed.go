package cli

import (
	"os"

	"antika-pos/config"

	"github.com/spf13/cobra"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the starter data set into an empty database",
		Long: `Load the admin account, the six employees with their user accounts,
the Antika menu and twelve free tables. Nothing is written when users
already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := config.NewLogger(os.Stderr, opts.logLevel(), opts.Config.LogFormat)
			db, err := opts.open()
			if err != nil {
				return err
			}
			defer config.Close(db)

			seeded, err := config.Seed(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			if !seeded {
				cmd.Println("database already has users, nothing seeded")
			}
			return nil
		},
	}
}
