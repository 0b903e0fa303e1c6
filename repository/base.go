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

package repository

import (
	"context"

	"github.com/tomoncle/bunpage/database"
	"github.com/tomoncle/bunpage/pagination"
	"github.com/tomoncle/bunpage/types"
	"github.com/uptrace/bun"
)

type baseRepositoryImpl[T any] struct {
	db        *bun.DB
	paginator *pagination.Paginator[T]
}

// NewRepository returns a generic repository backed by the provided Bun DB,
// paginating with the default options.
func NewRepository[T any](db *bun.DB) Repository[T] {
	r, err := NewRepositoryWithOptions[T](db, pagination.DefaultOptions())
	if err != nil {
		// default options always validate
		panic(err)
	}
	return r
}

// NewRepositoryWithOptions returns a repository whose Page and Paginate use opts.
func NewRepositoryWithOptions[T any](db *bun.DB, opts *pagination.Options) (Repository[T], error) {
	r := &baseRepositoryImpl[T]{db: db}
	p, err := pagination.New[T](r, opts)
	if err != nil {
		return nil, err
	}
	r.paginator = p
	return r, nil
}

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.List(ctx, nil)
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	var entities []*T
	query := applyWhere(r.db.NewSelect().Model(&entities), filter)
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

// Count returns the number of rows matching where.
func (r *baseRepositoryImpl[T]) Count(ctx context.Context, where *types.QueryFilter) (int, error) {
	query := applyWhere(r.db.NewSelect().Model((*T)(nil)), where)
	total, err := query.Count(ctx)
	if err != nil {
		return 0, types.NewQueryError(types.OpCount, database.Classify(err), err)
	}
	return total, nil
}

// Find selects the rows described by req. A zero Limit means unbounded.
func (r *baseRepositoryImpl[T]) Find(ctx context.Context, req *types.FindRequest) ([]*T, error) {
	if req == nil {
		req = &types.FindRequest{}
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, types.InvalidArgument("find limit and offset must not be negative, got limit=%d offset=%d", req.Limit, req.Offset)
	}
	entities := make([]*T, 0)
	query := applyWhere(r.db.NewSelect().Model(&entities), req.GetWhere())
	if cols := req.GetColumns(); len(cols) > 0 {
		query = query.Column(cols...)
	}
	if orders := req.GetOrders(); len(orders) > 0 {
		query = query.Order(orders...)
	}
	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}
	if req.Offset > 0 {
		query = query.Offset(req.Offset)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, types.NewQueryError(types.OpFind, database.Classify(err), err)
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.PageResult[T], error) {
	return r.paginator.PaginateRequest(ctx, pageRequest)
}

func (r *baseRepositoryImpl[T]) Paginate(ctx context.Context, page, limit int, filter *types.Filter) (*types.PageResult[T], error) {
	return r.paginator.Paginate(ctx, page, limit, filter)
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	if len(entity) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&entity).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	_, err := r.db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	if len(entity) == 0 {
		return nil
	}
	_, err := tx.NewInsert().Model(&entity).Exec(ctx)
	return err
}

func applyWhere(query *bun.SelectQuery, filter *types.QueryFilter) *bun.SelectQuery {
	if filter == nil || filter.Schema == "" {
		return query
	}
	return query.Where(filter.Schema, filter.Args...)
}
