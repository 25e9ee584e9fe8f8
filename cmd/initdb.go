package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plannery/eventkit/internal/config"
	"github.com/plannery/eventkit/internal/participants"
)

func newInitDBCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the participant database",
		Long: `Create the SQLite participant database and its schema.

The serve command creates the database on first use, so running initdb
is only needed to bootstrap the file ahead of time (e.g. in a container
image or a volume with restricted write access at runtime).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = config.FromEnv().DatabasePath
			}

			store, err := participants.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer func() { _ = store.Close() }()

			fmt.Printf("Database initialized at %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db-path", "", "Database file path. Defaults to EVENTKIT_DB_PATH or event_planning.db.")

	return cmd
}
