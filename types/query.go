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

package types

import (
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// WhereEq builds an AND-ed equality filter from column/value pairs, e.g.
// {"name": "Item1"} becomes `"name" = 'Item1'`. Columns are emitted in sorted
// order so that identical maps always yield identical SQL. An empty map
// yields nil, meaning "no constraint".
func WhereEq(fields map[string]interface{}) *QueryFilter {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		if fields[k] == nil {
			parts = append(parts, "? IS NULL")
			args = append(args, bun.Ident(k))
			continue
		}
		parts = append(parts, "? = ?")
		args = append(args, bun.Ident(k), fields[k])
	}
	return &QueryFilter{Schema: strings.Join(parts, " AND "), Args: args}
}

// Filter is the host query filter passed to Paginate. Where constrains both the
// count and the find query; Orders ("id ASC", "name DESC") and Columns are
// applied to the find query only.
type Filter struct {
	Where   *QueryFilter
	Orders  []string
	Columns []string
}

// NewFilter constructs a Filter with a where clause only.
func NewFilter(where *QueryFilter) *Filter {
	return &Filter{Where: where}
}

// OrderBy appends ordering expressions and returns the filter.
func (f *Filter) OrderBy(orders ...string) *Filter {
	f.Orders = append(f.Orders, orders...)
	return f
}

// Select restricts the columns returned by the find query.
func (f *Filter) Select(columns ...string) *Filter {
	f.Columns = append(f.Columns, columns...)
	return f
}

// GetWhere returns the where clause, tolerating a nil filter.
func (f *Filter) GetWhere() *QueryFilter {
	if f == nil {
		return nil
	}
	return f.Where
}

// FindRequest is what a find query receives: the caller's filter plus the
// bounded window computed from page and limit.
type FindRequest struct {
	Filter *Filter
	Limit  int
	Offset int
}

func (r *FindRequest) GetWhere() *QueryFilter {
	return r.Filter.GetWhere()
}

func (r *FindRequest) GetOrders() []string {
	if r.Filter == nil {
		return nil
	}
	return r.Filter.Orders
}

func (r *FindRequest) GetColumns() []string {
	if r.Filter == nil {
		return nil
	}
	return r.Filter.Columns
}
