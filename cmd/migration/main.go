package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/wissel-coach/db"
)

const (
	dialectFlag = "dialect"
	dbURLFlag   = "db-url"
	sourceFlag  = "source"
)

func main() {
	app := &cli.App{
		Name:  "wissel-coach-migration",
		Usage: "Apply or roll back the wissel-coach schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    dialectFlag,
				Usage:   "Database dialect: postgres or sqlite",
				EnvVars: []string{"STORAGE_DRIVER"},
				Value:   db.DialectPostgres,
			},
			&cli.StringFlag{
				Name:     dbURLFlag,
				Usage:    "Connection string of the target database",
				EnvVars:  []string{"DB_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:  sourceFlag,
				Usage: "Migration source URL such as file://./db/migrations/postgres. Defaults to the embedded files.",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: withMigrator(func(_ *cli.Context, m *migrate.Migrate) error {
					if err := ignoreNoChange(m.Up()); err != nil {
						return err
					}
					log.Printf("migrations applied")
					return nil
				}),
			},
			{
				Name:      "down",
				Usage:     "Roll back the last n migrations",
				ArgsUsage: "[n]",
				Action: withMigrator(func(cCtx *cli.Context, m *migrate.Migrate) error {
					steps, err := parseSteps(cCtx.Args().Slice())
					if err != nil {
						return err
					}
					if err := ignoreNoChange(m.Steps(-steps)); err != nil {
						return err
					}
					log.Printf("rolled back %d migration(s)", steps)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "Print the current schema version",
				Action: withMigrator(func(cCtx *cli.Context, m *migrate.Migrate) error {
					out := cCtx.App.Writer
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						fmt.Fprintln(out, "version: none")
						fmt.Fprintln(out, "dirty: false")
						return nil
					}
					if err != nil {
						return fmt.Errorf("read version: %w", err)
					}
					fmt.Fprintf(out, "version: %d\n", version)
					fmt.Fprintf(out, "dirty: %t\n", dirty)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "Set the schema version without running migrations",
				ArgsUsage: "<version>",
				Action: withMigrator(func(cCtx *cli.Context, m *migrate.Migrate) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("force requires a version argument")
					}
					version, err := parseVersion(cCtx.Args().First())
					if err != nil {
						return err
					}
					if err := m.Force(version); err != nil {
						return fmt.Errorf("force version %d: %w", version, err)
					}
					log.Printf("forced version to %d", version)
					return nil
				}),
			},
			{
				Name:      "goto",
				Aliases:   []string{"migrate"},
				Usage:     "Migrate up or down to a target version",
				ArgsUsage: "<version>",
				Action: withMigrator(func(cCtx *cli.Context, m *migrate.Migrate) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("goto requires a target version argument")
					}
					target, err := parseTarget(cCtx.Args().First())
					if err != nil {
						return err
					}
					if err := ignoreNoChange(m.Migrate(target)); err != nil {
						return err
					}
					log.Printf("migrated to version %d", target)
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withMigrator(fn func(*cli.Context, *migrate.Migrate) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		dialect, err := parseDialect(cCtx.String(dialectFlag))
		if err != nil {
			return err
		}

		conn, err := sql.Open(dialect, strings.TrimSpace(cCtx.String(dbURLFlag)))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		m, err := db.NewMigrator(conn, dialect, strings.TrimSpace(cCtx.String(sourceFlag)))
		if err != nil {
			_ = conn.Close()
			return err
		}
		defer closeMigrator(m)

		return fn(cCtx, m)
	}
}

// parseDialect maps a storage driver name onto a migration dialect. Both
// dialect names double as database/sql driver names.
func parseDialect(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", db.DialectPostgres, "postgresql":
		return db.DialectPostgres, nil
	case db.DialectSQLite:
		return db.DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", raw)
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}
