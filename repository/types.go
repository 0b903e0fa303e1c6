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

	"github.com/tomoncle/bunpage/pagination"
	"github.com/tomoncle/bunpage/types"
	"github.com/uptrace/bun"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	GetAll(ctx context.Context) ([]*T, error)

	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	Create(ctx context.Context, entity ...*T) error

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}

// QueryRepository exposes the count and find queries pagination is built on.
type QueryRepository[T any] interface {
	pagination.Source[T]
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.PageResult[T], error)
	Paginate(ctx context.Context, page, limit int, filter *types.Filter) (*types.PageResult[T], error)
}

// Repository combines CRUD, query and pagination operations and exposes the
// Bun select builder for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	QueryRepository[T]
	PageQueryRepository[T]
	CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error
	NewSelect() *bun.SelectQuery
}
