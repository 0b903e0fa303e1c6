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

package pagination

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/bunpage/types"
	"github.com/tomoncle/bunpage/utils"
	"golang.org/x/sync/errgroup"
)

// Source is the query capability a Paginator reads from.
type Source[T any] interface {
	// Count returns the number of records matching where; nil matches all.
	Count(ctx context.Context, where *types.QueryFilter) (int, error)

	// Find returns the records selected by req, honoring its limit and offset.
	Find(ctx context.Context, req *types.FindRequest) ([]*T, error)
}

// Paginator turns (page, limit, filter) into a count and a bounded find
// against its Source and assembles the result envelope. It holds no per-call
// state and is safe for concurrent use.
type Paginator[T any] struct {
	src    Source[T]
	opts   Options
	logger *logrus.Logger
}

// New returns a Paginator over src. A nil opts uses DefaultOptions.
func New[T any](src Source[T], opts *Options) (*Paginator[T], error) {
	if src == nil {
		return nil, types.InvalidArgument("pagination source cannot be nil")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Paginator[T]{src: src, opts: *opts, logger: utils.NewLogger("PAGINATE")}, nil
}

// Options returns a copy of the paginator's options.
func (p *Paginator[T]) Options() Options {
	return p.opts
}

// Paginate returns the requested page. page <= 0 means the first page and
// limit == 0 means the configured default; a negative limit is rejected with
// types.ErrInvalidArgument. The count uses only filter.Where, the find uses the
// whole filter plus limit and offset. Either query failing fails the call with
// a *types.QueryError and no partial result.
func (p *Paginator[T]) Paginate(ctx context.Context, page, limit int, filter *types.Filter) (*types.PageResult[T], error) {
	return p.PaginateRequest(ctx, types.NewPageRequest(page, limit, filter))
}

// PaginateRequest is Paginate for a prepared request.
func (p *Paginator[T]) PaginateRequest(ctx context.Context, req *types.PageRequest) (*types.PageResult[T], error) {
	if req == nil {
		req = types.NewDefaultPageRequest(1, 0)
	}
	limit, err := p.resolveLimit(req.GetLimit(int(p.opts.Limit)))
	if err != nil {
		return nil, err
	}
	page := req.GetPage()
	// pages whose offset does not fit in an int lie past any countable data
	reachable := page-1 <= math.MaxInt/limit
	find := &types.FindRequest{Filter: req.GetFilter(), Limit: limit}
	if reachable {
		find.Offset = (page - 1) * limit
	}

	start := time.Now()
	var (
		total int
		items []*T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := p.src.Count(gctx, req.GetWhere())
		if err != nil {
			return types.NewQueryError(types.OpCount, types.UnknownErr, err)
		}
		total = n
		return nil
	})
	if reachable {
		g.Go(func() error {
			rows, err := p.src.Find(gctx, find)
			if err != nil {
				return types.NewQueryError(types.OpFind, types.UnknownErr, err)
			}
			items = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.WithFields(logrus.Fields{"page": page, "limit": limit}).WithError(err).Debug("paginate failed")
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"items":   len(items),
		"elapsed": time.Since(start).Round(time.Microsecond),
	}).Debug("paginate")
	return types.NewPageResult(items, types.NewPagingInfo(total, limit, page)), nil
}

func (p *Paginator[T]) resolveLimit(limit int) (int, error) {
	if limit <= 0 {
		return 0, types.InvalidArgument("limit must be positive, got %d", limit)
	}
	if p.opts.MaxLimit > 0 && limit > int(p.opts.MaxLimit) {
		limit = int(p.opts.MaxLimit)
	}
	return limit, nil
}
