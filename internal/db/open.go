package db

import (
	"fmt"  // Error wrapping
	"time" // Slow query threshold

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger
)

// Dialector returns the GORM dialector for the given driver name
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		return mysql.Open(dsn), nil // MySQL is the default
	case "postgres":
		return postgres.Open(dsn), nil // PostgreSQL through pgx
	default:
		return nil, fmt.Errorf("db.Dialector: unsupported driver %q", driver)
	}
}

// Config returns the GORM config shared by the server, the migrator and the tests
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true, // Surface duplicate keys as gorm.ErrDuplicatedKey
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log slow queries
			LogLevel:                  logger.Warn,            // Only warnings and errors
			IgnoreRecordNotFoundError: true,                   // Not found is a normal outcome
		}),
	}
}

// Open connects to the database described by driver and dsn
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, Config())
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	return db, nil
}
