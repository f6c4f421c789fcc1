// Package database provides database migration tooling.
package database

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx v5 migrate driver
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var fs embed.FS

// migrationsFromSource returns a migration source driver from the embedded migrations.
func migrationsFromSource() source.Driver {
	d, err := iofs.New(fs, "migrations")
	if err != nil {
		panic(err)
	}
	return d
}

// Migrator is the interface for the migration tooling.
type Migrator interface {
	Up() error
	Down() error
	Steps(int) error
	Version() (uint, bool, error)
}

// NewFromConnectionString returns a new migration instance from the given connection string.
// The connection string may use the postgres:// or postgresql:// scheme; it is rewritten to
// the pgx5:// scheme expected by the golang-migrate pgx v5 driver.
func NewFromConnectionString(connString string) (Migrator, error) {
	migrateURL, err := toMigrateURL(connString)
	if err != nil {
		return nil, err
	}

	d := migrationsFromSource()
	return migrate.NewWithSourceInstance("iofs", d, migrateURL)
}

// toMigrateURL rewrites a postgres connection URL to the pgx5 scheme.
func toMigrateURL(connString string) (string, error) {
	u, err := url.Parse(connString)
	if err != nil {
		return "", fmt.Errorf("invalid connection string: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql", "pgx5":
		u.Scheme = "pgx5"
	default:
		return "", fmt.Errorf("unsupported connection string scheme: %s", u.Scheme)
	}

	return u.String(), nil
}
