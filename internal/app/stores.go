package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/wissel-coach/db"
	"github.com/riskibarqy/wissel-coach/internal/config"
	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/domain/participation"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/file"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type stores struct {
	players       player.Repository
	participation participation.Repository
	setup         matchsetup.Repository
	matches       match.Repository
	close         func() error
}

func openStores(cfg config.Config, logger *logging.Logger) (*stores, error) {
	var (
		st  *stores
		err error
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres, config.StorageSQLite:
		st, err = openSQLStores(cfg, logger)
	default:
		st = openMemoryStores(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.StateDir != "" {
		setupSlot, err := file.NewSetupRepository(cfg.StateDir)
		if err != nil {
			return nil, closeOnError(st, fmt.Errorf("open setup slot: %w", err))
		}
		matchSlot, err := file.NewMatchStateRepository(cfg.StateDir)
		if err != nil {
			return nil, closeOnError(st, fmt.Errorf("open match slot: %w", err))
		}
		st.setup = setupSlot
		st.matches = matchSlot
		logger.Info("state slots on disk", "dir", cfg.StateDir)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver)
	return st, nil
}

func openMemoryStores(cfg config.Config) *stores {
	seed := memory.SeedPlayers()
	if cfg.RosterSeedFile != "" {
		seed = nil
	}
	return &stores{
		players:       memory.NewPlayerRepository(seed),
		participation: memory.NewParticipationRepository(),
		setup:         memory.NewSetupRepository(),
		matches:       memory.NewMatchStateRepository(),
	}
}

func openSQLStores(cfg config.Config, logger *logging.Logger) (*stores, error) {
	driverName, dialect := sqlDriver(cfg.StorageDriver)

	if cfg.DBAutoMigrate {
		if err := db.Up(driverName, cfg.DBURL, dialect); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("database migrated", "dialect", dialect)
	}

	conn, err := openDB(driverName, cfg.DBURL, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, err
	}

	return &stores{
		players:       sqlstore.NewPlayerRepository(conn),
		participation: sqlstore.NewParticipationRepository(conn),
		setup:         sqlstore.NewSetupRepository(conn),
		matches:       sqlstore.NewMatchStateRepository(conn),
		close:         conn.Close,
	}, nil
}

func openDB(driverName, dsn string, maxOpenConns int) (*sqlx.DB, error) {
	conn, err := otelsqlx.Open(driverName, dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithAttributes(attribute.String("db.system", dbSystem(driverName))),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}

	if driverName == "sqlite" {
		// One writer keeps sqlite free of SQLITE_BUSY under concurrent requests.
		maxOpenConns = 1
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxOpenConns)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", driverName, err)
	}
	return conn, nil
}

func sqlDriver(storage string) (driverName, dialect string) {
	if storage == config.StorageSQLite {
		return "sqlite", db.DialectSQLite
	}
	return "postgres", db.DialectPostgres
}

func dbSystem(driverName string) string {
	if driverName == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}

func closeOnError(st *stores, err error) error {
	if st != nil && st.close != nil {
		_ = st.close()
	}
	return err
}
