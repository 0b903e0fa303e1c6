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
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/tomoncle/bunpage/types"
)

// Classify maps a driver error onto a types.SQLErrorKind. MySQL and Postgres
// errors are matched by code; anything else (notably SQLite) by message.
func Classify(err error) types.SQLErrorKind {
	if err == nil {
		return types.UnknownErr
	}
	switch {
	case errors.Is(err, context.Canceled):
		return types.CanceledErr
	case errors.Is(err, context.DeadlineExceeded):
		return types.TimeoutErr
	case errors.Is(err, sql.ErrNoRows):
		return types.NoRowsErr
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return types.ConnectionErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1054:
			return types.NoColumnErr
		case 1146:
			return types.NoTableErr
		case 1064:
			return types.SyntaxErr
		default:
			return types.UnknownErr
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42703":
			return types.NoColumnErr
		case "42P01":
			return types.NoTableErr
		case "42601":
			return types.SyntaxErr
		}
		if pqErr.Code.Class() == "08" {
			return types.ConnectionErr
		}
		return types.UnknownErr
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "no such column") || strings.Contains(s, "undefined column"):
		return types.NoColumnErr
	case strings.Contains(s, "no such table") || strings.Contains(s, "undefined table"):
		return types.NoTableErr
	case strings.Contains(s, "syntax error"):
		return types.SyntaxErr
	case strings.Contains(s, "connection refused") || strings.Contains(s, "database is closed"):
		return types.ConnectionErr
	}
	return types.UnknownErr
}
