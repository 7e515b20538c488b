package db

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/bearnet/internal/config"
	"github.com/yigit/bearnet/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SQLiteDB database connection structure
type SQLiteDB struct {
	DB *gorm.DB
}

// gormLogWriter routes gorm's logger through zerolog
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	logger.Debug().Str("component", "gorm").Msgf(format, args...)
}

// NewSQLiteDB opens the SQLite database at cfg.Database.Path
func NewSQLiteDB(cfg *config.Config) (*SQLiteDB, error) {
	return OpenSQLite(cfg.Database.Path)
}

// OpenSQLite opens a SQLite database file, or a private in-memory database for MemoryPath
func OpenSQLite(path string) (*SQLiteDB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.New(gormLogWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}

	// Every new connection to :memory: would see an empty database
	if path == MemoryPath {
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}

	return &SQLiteDB{DB: gdb}, nil
}

// Close closing method
func (s *SQLiteDB) Close() {
	if s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close sqlite database")
		}
	}
}
