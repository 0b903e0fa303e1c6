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
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

var bunSqlSilentMode atomic.Bool

// EnableBunSqlSilent mutes the slow query hook.
func EnableBunSqlSilent(b bool) {
	bunSqlSilentMode.Store(b)
}

var slowQueryLabel = color.New(color.FgYellow, color.Bold).SprintFunc()

// SlowQueryHook logs successful queries that took longer than slowTime.
// Failed queries are left to the caller, which receives the error.
type SlowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

// NewSlowQueryHook returns a hook reporting queries slower than slowTime.
func NewSlowQueryHook(slowTime time.Duration, logger Logger) *SlowQueryHook {
	return &SlowQueryHook{slowTime: slowTime, logger: logger}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if bunSqlSilentMode.Load() || event.Err != nil || h.logger == nil {
		return
	}
	duration := time.Since(event.StartTime)
	if duration > h.slowTime {
		h.logger.Warn(slowQueryLabel("Database slow query detected"),
			"operation", event.Operation(),
			"duration", duration.Round(time.Microsecond),
			"slow_threshold", h.slowTime,
			"query", event.Query,
		)
	}
}
