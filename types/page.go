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

// PageRequest describes a 1-indexed page, its size, and an optional filter.
// A zero limit means "use the configured default".
type PageRequest struct {
	page   int
	limit  int
	filter *Filter
}

// GetPage returns the requested page, defaulting to 1 when non-positive.
func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// GetLimit returns the requested page size, or def when none was given.
func (p *PageRequest) GetLimit(def int) int {
	if p.limit == 0 {
		return def
	}
	return p.limit
}

// GetOffset returns the number of records skipped before the page starts.
func (p *PageRequest) GetOffset(def int) int {
	return (p.GetPage() - 1) * p.GetLimit(def)
}

func (p *PageRequest) GetFilter() *Filter {
	return p.filter
}

func (p *PageRequest) GetWhere() *QueryFilter {
	return p.filter.GetWhere()
}

// NewPageRequest constructs a PageRequest with a filter.
func NewPageRequest(page int, limit int, filter *Filter) *PageRequest {
	return &PageRequest{page, limit, filter}
}

// NewDefaultPageRequest constructs a PageRequest with no filter.
func NewDefaultPageRequest(page int, limit int) *PageRequest {
	return NewPageRequest(page, limit, nil)
}

// PagingInfo is the metadata returned alongside a page of records.
type PagingInfo struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
	CurrentPage  int `json:"currentPage"`
}

// NewPagingInfo assembles paging metadata. limit must be positive.
func NewPagingInfo(totalItems, limit, page int) PagingInfo {
	return PagingInfo{
		TotalItems:   totalItems,
		TotalPages:   TotalPages(totalItems, limit),
		ItemsPerPage: limit,
		CurrentPage:  page,
	}
}

// TotalPages returns ceil(totalItems/limit), or 0 when there is nothing to page.
func TotalPages(totalItems, limit int) int {
	if totalItems <= 0 || limit <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}

func (p PagingInfo) Offset() int {
	return (p.CurrentPage - 1) * p.ItemsPerPage
}

func (p PagingInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

func (p PagingInfo) HasPrevious() bool {
	return p.CurrentPage > 1
}

// PageResult holds one page of records along with its paging metadata.
type PageResult[T any] struct {
	Result []*T       `json:"result"`
	Paging PagingInfo `json:"paging"`
}

// NewPageResult builds a result envelope; a nil slice is replaced by an empty one.
func NewPageResult[T any](items []*T, paging PagingInfo) *PageResult[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	return &PageResult[T]{Result: items, Paging: paging}
}
