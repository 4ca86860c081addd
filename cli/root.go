package cli

import (
	"os"

	"antika-pos/config"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Config   *config.Config
	DBDriver string
	DBDSN    string
	Verbose  bool
}

// NewRootCommand creates the antika command. Running it bare starts the server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Config: config.Load()}

	serve := NewServeCommand(opts)
	cmd := &cobra.Command{
		Use:           "antika",
		Short:         "Antika restaurant point of sale API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.DBDriver, "db-driver", opts.Config.DBDriver, "store driver (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.DBDSN, "db", opts.Config.DBDSN, "sqlite path or postgres DSN")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

func (o *RootOptions) logLevel() string {
	if o.Verbose {
		return "debug"
	}
	return o.Config.LogLevel
}

// open connects and migrates the store
func (o *RootOptions) open() (*gorm.DB, error) {
	db, err := config.OpenDB(o.DBDriver, o.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		_ = config.Close(db)
		return nil, err
	}
	return db, nil
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
