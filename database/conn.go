/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

var (
	globalMu sync.RWMutex
	globalDB *bun.DB
)

// GetDB returns the global Bun database instance, or nil before InitDB.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalDB
}

// InitDB opens the global database using the provided configuration.
func InitDB(cfg *ConnectionConfig) (*bun.DB, error) {
	db, err := Open(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	globalMu.Lock()
	old := globalDB
	globalDB = db
	globalMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return db, nil
}

// CloseDB closes the global database connection.
func CloseDB() error {
	globalMu.Lock()
	db := globalDB
	globalDB = nil
	globalMu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}

// Open creates a Bun database for cfg, configures its pool and query hooks
// and verifies the connection with a ping.
func Open(ctx context.Context, cfg *ConnectionConfig) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := GetLogger()

	sqlDB, db, err := createConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	configureConnectionPool(sqlDB, cfg)

	if cfg.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	if cfg.SlowQueryTime > 0 {
		db.AddQueryHook(&SlowQueryHook{slowTime: cfg.SlowQueryTime, logger: logger})
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	logger.Info("Database connected successfully:", "type", cfg.Type, "host", cfg.Host, "dbname", cfg.DBName)
	return db, nil
}

func createConnection(cfg *ConnectionConfig) (*sql.DB, *bun.DB, error) {
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		sqlDB, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, bun.NewDB(sqlDB, mysqldialect.New()), nil
	case "postgres", "postgresql":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, sslMode)
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, bun.NewDB(sqlDB, pgdialect.New()), nil
	case "sqlite", "sqlite3":
		sqlDB, err := sql.Open(sqliteshim.ShimName, sqliteDSN(cfg.DBName))
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// sqliteDSN maps a database name to a file, keeping ":memory:" and "file:" URIs as given.
func sqliteDSN(name string) string {
	if name == ":memory:" || strings.HasPrefix(name, "file:") {
		return name
	}
	return fmt.Sprintf("%s.db", name)
}

func configureConnectionPool(sqlDB *sql.DB, cfg *ConnectionConfig) {
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}
