package main

import (
	"billing_system/internal/config" // Custom import path (Config)
	"billing_system/internal/db"     // Custom import path (Database)
	"billing_system/internal/logger" // Logger setup

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.IsProd)

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN()) // MySQL or Postgres connection
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed")
}
