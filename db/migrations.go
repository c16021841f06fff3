// Package db carries the schema migrations for the SQL storage drivers.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the embedded migration files for one dialect.
func Migrations(dialect string) (fs.FS, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(migrations, "migrations/"+dialect)
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}

// NewMigrator binds a migrate instance to an open connection. sourceURL
// overrides the embedded files when set, e.g. "file://./db/migrations/sqlite".
// Closing the migrator closes conn.
func NewMigrator(conn *sql.DB, dialect, sourceURL string) (*migrate.Migrate, error) {
	driver, err := databaseDriver(conn, dialect)
	if err != nil {
		return nil, err
	}

	if sourceURL != "" {
		m, err := migrate.NewWithDatabaseInstance(sourceURL, dialect, driver)
		if err != nil {
			return nil, fmt.Errorf("create migrator from %s: %w", sourceURL, err)
		}
		return m, nil
	}

	files, err := Migrations(dialect)
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// Up applies every pending migration on a dedicated connection.
func Up(driverName, dsn, dialect string) error {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	m, err := NewMigrator(conn, dialect, "")
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func databaseDriver(conn *sql.DB, dialect string) (database.Driver, error) {
	switch dialect {
	case DialectPostgres:
		driver, err := postgres.WithInstance(conn, &postgres.Config{})
		if err != nil {
			return nil, fmt.Errorf("postgres migration driver: %w", err)
		}
		return driver, nil
	case DialectSQLite:
		driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("sqlite migration driver: %w", err)
		}
		return driver, nil
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
