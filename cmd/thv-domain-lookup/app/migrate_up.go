package app

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/stacklok/mcp-domain-registry/database"
	"github.com/stacklok/mcp-domain-registry/internal/config"
	"github.com/stacklok/mcp-domain-registry/internal/logger"
)

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending database migrations",
	Long: `Apply pending database migrations to bring the schema up to date.
This command reads the database connection parameters from the config file
and applies all migrations that haven't been run yet, or --num-steps of them.`,
	RunE: runMigrateUp,
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	migrator, cfg, err := migratorFromFlags(cmd)
	if err != nil {
		return err
	}

	confirmed, err := confirmMigration(cmd, cfg, "apply migrations to")
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

	logger.Infof("Applying database migrations...")
	if numSteps > 0 {
		err = migrator.Steps(int(numSteps))
	} else {
		err = migrator.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Infof("Database schema is already up to date")
	} else if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	reportMigrationVersion(migrator)
	return nil
}

// migratorFromFlags builds a migrator from the --config flag.
func migratorFromFlags(cmd *cobra.Command) (database.Migrator, *config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	migrator, err := database.NewFromConnectionString(connString)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return migrator, cfg, nil
}

// confirmMigration prompts for confirmation unless --yes was passed.
func confirmMigration(cmd *cobra.Command, cfg *config.Config, action string) (bool, error) {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return false, fmt.Errorf("failed to get yes flag: %w", err)
	}
	if yes {
		return true, nil
	}

	logger.Infof("About to %s database: %s@%s:%d/%s",
		action, cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Print("Continue? (yes/no): ")
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	if response != "yes" && response != "y" {
		logger.Infof("Migration cancelled by user")
		return false, nil
	}
	return true, nil
}

func reportMigrationVersion(migrator database.Migrator) {
	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Infof("Database has no applied migrations")
	case err != nil:
		logger.Warnf("Unable to get migration version: %v", err)
	case dirty:
		logger.Warnf("Database is in a dirty state at version %d", version)
	default:
		logger.Infof("Migrations applied successfully. Current version: %d", version)
	}
}
