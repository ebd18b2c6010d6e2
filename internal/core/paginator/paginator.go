// Package paginator splits an ordered, counted result set into fixed-size
// pages. Invalid page numbers never fail: a non-integer yields the first page
// and an out-of-range integer yields the last one.
package paginator

import (
	"strconv"
	"strings"
)

type Paginator struct {
	Total   int64
	PerPage int
}

func New(total int64, perPage int) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	return Paginator{Total: total, PerPage: perPage}
}

// NumPages is never less than one; an empty set has a single empty page.
func (p Paginator) NumPages() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Number resolves the raw "page" query value into a valid page number.
func (p Paginator) Number(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	if n < 1 || n > p.NumPages() {
		return p.NumPages()
	}
	return n
}

// Bounds returns offset and limit for the given (already resolved) page.
func (p Paginator) Bounds(number int) (offset, limit int) {
	return (number - 1) * p.PerPage, p.PerPage
}

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Total    int64
	PerPage  int
}

func NewPage[T any](p Paginator, number int, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Number:   number,
		NumPages: p.NumPages(),
		Total:    p.Total,
		PerPage:  p.PerPage,
	}
}

func (pg *Page[T]) Len() int { return len(pg.Items) }

func (pg *Page[T]) HasNext() bool { return pg.Number < pg.NumPages }

func (pg *Page[T]) HasPrevious() bool { return pg.Number > 1 }

func (pg *Page[T]) HasOtherPages() bool { return pg.HasNext() || pg.HasPrevious() }

func (pg *Page[T]) NextNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

func (pg *Page[T]) PreviousNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

// Range lists every page number, for rendering page links.
func (pg *Page[T]) Range() []int {
	out := make([]int, pg.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
