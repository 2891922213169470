// Package gormstore is the gorm-backed adapter for store.TaskStore and
// store.ReportStore, grounded on the teacher project's
// internal/database and internal/repository packages but generalized
// to dial any of the three drivers the teacher's go.mod already
// carries (postgres, mysql, sqlite) instead of hard-coding mysql.
package gormstore

import (
	"fmt"
	"time"

	"github.com/taskforge/scheduler/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialect selects which SQL driver Connect dials.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// ConnectConfig holds the connection parameters for Connect. A non-empty
// DSN is used verbatim for every dialect. When DSN is empty, mysql
// assembles one from the discrete fields the way the teacher's
// database.Connect does, sqlite uses a shared in-memory database, and
// postgres passes the empty DSN to the driver.
type ConnectConfig struct {
	Dialect Dialect
	DSN     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	LogLevel gormlogger.LogLevel
}

// Connect opens a gorm.DB for cfg.Dialect.
func Connect(cfg ConnectConfig) (*gorm.DB, error) {
	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	switch cfg.Dialect {
	case DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DialectMySQL:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		}
		dialector = mysql.Open(dsn)
	case DialectSQLite, "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("gormstore: unknown dialect %q", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("gormstore: failed to connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// Migrate auto-migrates every table this adapter owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskDependency{},
		&models.Report{},
	); err != nil {
		return fmt.Errorf("gormstore: migration failed: %w", err)
	}
	return nil
}
