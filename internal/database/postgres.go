package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ConnectPostgres opens a pooled PostgreSQL connection
func ConnectPostgres(postgresURI string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("✅ Connected to PostgreSQL")
	return db, nil
}

// ConnectSQLite opens (creating if needed) a SQLite database file.
func ConnectSQLite(path string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path))
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("✅ Opened SQLite database", zap.String("path", path))
	return db, nil
}
