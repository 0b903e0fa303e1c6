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

package bunpage

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomoncle/bunpage/database"
	"github.com/tomoncle/bunpage/pagination"
	"github.com/tomoncle/bunpage/repository"
	"github.com/tomoncle/bunpage/types"
	"github.com/uptrace/bun"
)

// Model is a persisted model with paginated queries attached.
type Model[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// Find returns the records selected by the filter, without paging.
	Find(ctx context.Context, filter *types.Filter) ([]*T, error)

	// Count returns the number of records matching where.
	Count(ctx context.Context, where *types.QueryFilter) (int, error)

	// Paginate returns one page of records plus paging metadata. page <= 0
	// selects the first page and limit == 0 the configured page size.
	Paginate(ctx context.Context, page, limit int, filter *types.Filter) (*types.PageResult[T], error)

	// Page is Paginate for a prepared request.
	Page(ctx context.Context, page *types.PageRequest) (*types.PageResult[T], error)

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id any) error

	// SelectBuilder returns a Bun select query builder.
	SelectBuilder() *bun.SelectQuery
}

type baseModelImpl[T any] struct {
	db   func() *bun.DB
	opts *pagination.Options
	repo repository.Repository[T]
	mu   sync.Mutex
}

// NewModel attaches pagination to T's table in db using opts; a nil opts
// uses the default page size.
func NewModel[T any](db *bun.DB, opts *pagination.Options) (Model[T], error) {
	if db == nil {
		return nil, types.InvalidArgument("database cannot be nil")
	}
	m := &baseModelImpl[T]{db: func() *bun.DB { return db }, opts: opts}
	if _, err := m.baseRepo(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewDefaultModel returns a Model bound lazily to the global database, which
// must be initialized with database.InitDB before the first query.
func NewDefaultModel[T any](opts *pagination.Options) Model[T] {
	return &baseModelImpl[T]{db: database.GetDB, opts: opts}
}

func (m *baseModelImpl[T]) baseRepo() (repository.Repository[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.repo != nil {
		return m.repo, nil
	}
	db := m.db()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	repo, err := repository.NewRepositoryWithOptions[T](db, m.opts)
	if err != nil {
		return nil, err
	}
	m.repo = repo
	return repo, nil
}

func (m *baseModelImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	repo, err := m.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.GetOne(ctx, id)
}

func (m *baseModelImpl[T]) Find(ctx context.Context, filter *types.Filter) ([]*T, error) {
	repo, err := m.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Find(ctx, &types.FindRequest{Filter: filter})
}

func (m *baseModelImpl[T]) Count(ctx context.Context, where *types.QueryFilter) (int, error) {
	repo, err := m.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx, where)
}

func (m *baseModelImpl[T]) Paginate(ctx context.Context, page, limit int, filter *types.Filter) (*types.PageResult[T], error) {
	repo, err := m.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Paginate(ctx, page, limit, filter)
}

func (m *baseModelImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.PageResult[T], error) {
	repo, err := m.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Page(ctx, page)
}

func (m *baseModelImpl[T]) Save(ctx context.Context, model ...*T) error {
	repo, err := m.baseRepo()
	if err != nil {
		return err
	}
	return repo.Create(ctx, model...)
}

func (m *baseModelImpl[T]) Update(ctx context.Context, model *T) error {
	repo, err := m.baseRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, model)
}

func (m *baseModelImpl[T]) Delete(ctx context.Context, id any) error {
	repo, err := m.baseRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (m *baseModelImpl[T]) SelectBuilder() *bun.SelectQuery {
	repo, err := m.baseRepo()
	if err != nil {
		return nil
	}
	return repo.NewSelect()
}
