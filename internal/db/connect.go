// Package db opens the portal's GORM database connection for the supported
// backends: sqlite (development default), postgres, and mysql.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a GORM connection for the given backend type and DSN.
// For sqlite the DSN is a file path; ":memory:" yields an in-memory database.
func Connect(dbType, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch dbType {
	case "sqlite", "":
		if dsn == "" {
			dsn = "portal.db"
		}
		gormDB, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database %q: %w", dsn, err)
		}
		return gormDB, nil
	case "postgres":
		gormDB, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return gormDB, nil
	case "mysql":
		gormDB, err := gorm.Open(mysql.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
		return gormDB, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (expected sqlite, postgres, or mysql)", dbType)
	}
}
