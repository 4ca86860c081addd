package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"antika-pos/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
}

// OpenDB connects to the configured store. SQLite is held to a single
// connection so writers never hit SQLITE_BUSY.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})}

	switch driver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		for _, p := range sqlitePragmas {
			if err := db.Exec(p).Error; err != nil {
				return nil, fmt.Errorf("apply %q: %w", p, err)
			}
		}
		return db, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q (sqlite or postgres)", driver)
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Table{},
		&models.Order{},
		&models.Dish{},
		&models.Employee{},
		&models.Attendance{},
		&models.Reservation{},
		&models.CashTransaction{},
		&models.CashClosing{},
		&models.User{},
	)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
