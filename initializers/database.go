package initializers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopping-mall/mall-api/repositories"
	"github.com/shopping-mall/mall-api/services"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// memoryDSN names a private in-memory SQLite database. Each call gets a
// fresh one.
func memoryDSN() string {
	return fmt.Sprintf("file:mall-%s?mode=memory&cache=shared", uuid.NewString())
}

// ConnectToDB opens a gorm connection. The memory driver ignores dsn and
// opens an empty in-memory SQLite database.
func ConnectToDB(driver, dsn string) (*gorm.DB, error) {
	if driver == DriverMemory {
		dsn = memoryDSN()
	}
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the %s driver", driver)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, DriverMemory:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite || driver == DriverMemory {
		// SQLite allows one writer; a single connection also keeps an
		// in-memory database alive for the life of the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	slog.Info("Connected to database", "driver", driver)
	return db, nil
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type sqlPinger struct {
	db *gorm.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stores bundles the repositories for the configured driver.
type Stores struct {
	Users    services.UserStore
	Products services.ProductStore
	Carts    services.CartStore
	Orders   services.OrderStore
	DB       Pinger

	gorm *gorm.DB
}

// OpenStores connects to the configured database. The memory driver keeps
// everything in an in-memory SQLite database that is lost on exit, and is
// migrated straight away.
func OpenStores(cfg *Config) (*Stores, error) {
	db, err := ConnectToDB(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	stores := &Stores{
		Users:    repositories.NewUserRepository(db),
		Products: repositories.NewProductRepository(db),
		Carts:    repositories.NewCartRepository(db),
		Orders:   repositories.NewOrderRepository(db),
		DB:       sqlPinger{db: db},
		gorm:     db,
	}
	if cfg.DBDriver == DriverMemory {
		slog.Warn("Using an in-memory database, data will not survive a restart")
		if err := stores.Migrate(); err != nil {
			return nil, err
		}
	}
	return stores, nil
}

// Migrate creates or updates the schema.
func (s *Stores) Migrate() error {
	return SyncDatabase(s.gorm)
}

func (s *Stores) Close() error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
