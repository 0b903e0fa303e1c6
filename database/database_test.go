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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/bunpage/types"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want types.SQLErrorKind
	}{
		{"canceled", fmt.Errorf("query: %w", context.Canceled), types.CanceledErr},
		{"deadline", context.DeadlineExceeded, types.TimeoutErr},
		{"mysql no table", &mysql.MySQLError{Number: 1146, Message: "Table 'x.items' doesn't exist"}, types.NoTableErr},
		{"mysql no column", &mysql.MySQLError{Number: 1054}, types.NoColumnErr},
		{"pq no table", &pq.Error{Code: "42P01"}, types.NoTableErr},
		{"pq connection", &pq.Error{Code: "08006"}, types.ConnectionErr},
		{"sqlite no table", errors.New("SQL logic error: no such table: missing (1)"), types.NoTableErr},
		{"sqlite no column", errors.New("no such column: foo"), types.NoColumnErr},
		{"syntax", errors.New(`near "FORM": syntax error`), types.SyntaxErr},
		{"other", errors.New("boom"), types.UnknownErr},
		{"nil", nil, types.UnknownErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestParseConfig(t *testing.T) {
	doc := []byte(`
type: postgres
host: db.internal
port: 5432
username: app
dbname: catalog
max_open_conns: 20
slow_query_time: 500ms
`)
	cfg, err := ParseConfig(doc)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, 500*time.Millisecond, cfg.SlowQueryTime)
	// defaults survive for keys the document leaves out
	assert.Equal(t, 10, cfg.MaxIdleConns)
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("DB_PORT", "6543")

	cfg, err := ParseConfig([]byte("type: mysql\ndbname: catalog\n"))
	require.NoError(t, err)
	assert.Equal(t, "override.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig([]byte("type: oracle\ndbname: catalog\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("type: sqlite\ndbname: ''\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: sqlite\ndbname: ':memory:'\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBName)
}

func TestOpenSQLite(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.DBName = "file:open_sqlite?mode=memory&cache=shared"
	cfg.EnableQueryLog = true

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(context.Background(), &n))
	assert.Equal(t, 1, n)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)

	cfg := DefaultConnectionConfig()
	cfg.Type = "oracle"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestGlobalDB(t *testing.T) {
	require.NoError(t, CloseDB())
	assert.Nil(t, GetDB())

	cfg := DefaultConnectionConfig()
	cfg.DBName = "file:global_db?mode=memory&cache=shared"
	db, err := InitDB(cfg)
	require.NoError(t, err)
	assert.Same(t, db, GetDB())

	require.NoError(t, CloseDB())
	assert.Nil(t, GetDB())
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Error(string, ...interface{}) {}
func (l *recordingLogger) Warn(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestSlowQueryHook(t *testing.T) {
	logger := &recordingLogger{}
	cfg := DefaultConnectionConfig()
	cfg.DBName = "file:slow_query?mode=memory&cache=shared"
	cfg.SlowQueryTime = 0

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()
	db.AddQueryHook(NewSlowQueryHook(time.Nanosecond, logger))

	var n int
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(context.Background(), &n))
	logger.mu.Lock()
	assert.Len(t, logger.warns, 1)
	logger.mu.Unlock()

	EnableBunSqlSilent(true)
	defer EnableBunSqlSilent(false)
	require.NoError(t, db.NewSelect().ColumnExpr("1").Scan(context.Background(), &n))
	logger.mu.Lock()
	assert.Len(t, logger.warns, 1)
	logger.mu.Unlock()
}

func TestToFields(t *testing.T) {
	assert.Equal(t, logrus.Fields{"type": "sqlite", "port": 0}, toFields([]interface{}{"type", "sqlite", "port", 0}))
	assert.Equal(t, logrus.Fields{"type": "sqlite", "!BADKEY": "orphan"}, toFields([]interface{}{"type", "sqlite", "orphan"}))
	assert.Empty(t, toFields(nil))
}
