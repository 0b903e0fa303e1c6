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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{49, 10, 5},
		{49, 4, 13},
		{49, 1, 49},
		{5, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestPageRequestDefaults(t *testing.T) {
	req := NewDefaultPageRequest(0, 0)
	assert.Equal(t, 1, req.GetPage())
	assert.Equal(t, 10, req.GetLimit(10))
	assert.Equal(t, 0, req.GetOffset(10))
	assert.Nil(t, req.GetWhere())

	req = NewDefaultPageRequest(-3, 4)
	assert.Equal(t, 1, req.GetPage())
	assert.Equal(t, 4, req.GetLimit(10))

	where := NewQueryFilter("name = ?", "Item1")
	req = NewPageRequest(3, 4, NewFilter(where))
	assert.Equal(t, 8, req.GetOffset(10))
	assert.Same(t, where, req.GetWhere())
}

func TestPagingInfo(t *testing.T) {
	p := NewPagingInfo(49, 10, 5)
	assert.Equal(t, PagingInfo{TotalItems: 49, TotalPages: 5, ItemsPerPage: 10, CurrentPage: 5}, p)
	assert.Equal(t, 40, p.Offset())
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrevious())

	empty := NewPagingInfo(0, 10, 1)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrevious())
}

func TestPageResultJSON(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	res := NewPageResult[item](nil, NewPagingInfo(0, 10, 2))
	require.NotNil(t, res.Result)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"result":[],"paging":{"totalItems":0,"totalPages":0,"itemsPerPage":10,"currentPage":2}}`,
		string(data))
}

func TestWhereEq(t *testing.T) {
	assert.Nil(t, WhereEq(nil))

	f := WhereEq(map[string]interface{}{"status": "active", "name": "Item1", "deleted_at": nil})
	require.NotNil(t, f)
	assert.Equal(t, "? IS NULL AND ? = ? AND ? = ?", f.Schema)
	assert.Equal(t, []interface{}{
		bun.Ident("deleted_at"),
		bun.Ident("name"), "Item1",
		bun.Ident("status"), "active",
	}, f.Args)
}

func TestFindRequestNilFilter(t *testing.T) {
	req := &FindRequest{Limit: 10}
	assert.Nil(t, req.GetWhere())
	assert.Nil(t, req.GetOrders())
	assert.Nil(t, req.GetColumns())

	req.Filter = NewFilter(nil).OrderBy("id DESC").Select("id", "name")
	assert.Equal(t, []string{"id DESC"}, req.GetOrders())
	assert.Equal(t, []string{"id", "name"}, req.GetColumns())
}

func TestQueryError(t *testing.T) {
	cause := errors.New("boom")
	err := NewQueryError(OpCount, NoTableErr, cause)

	qe, ok := IsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, OpCount, qe.Op)
	assert.Equal(t, NoTableErr, qe.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "count query failed (no_table): boom", err.Error())

	// already classified errors keep their operation and kind
	assert.Same(t, err, NewQueryError(OpFind, UnknownErr, err))
	assert.Nil(t, NewQueryError(OpFind, UnknownErr, nil))

	_, ok = IsQueryError(cause)
	assert.False(t, ok)
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("limit must be positive, got %d", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "got -1")
}
