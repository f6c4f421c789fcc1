package app

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/stacklok/mcp-domain-registry/internal/logger"
)

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back database migrations",
	Long: `Roll back database migrations. By default all migrations are rolled
back; use --num-steps to limit how many are reverted. Rolling back drops the
registry tables and their data.`,
	RunE: runMigrateDown,
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	migrator, cfg, err := migratorFromFlags(cmd)
	if err != nil {
		return err
	}

	confirmed, err := confirmMigration(cmd, cfg, "roll back migrations on")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	numSteps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}

	logger.Infof("Rolling back database migrations...")
	if numSteps > 0 {
		err = migrator.Steps(-int(numSteps))
	} else {
		err = migrator.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Infof("No migrations to roll back")
	} else if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	reportMigrationVersion(migrator)
	return nil
}
