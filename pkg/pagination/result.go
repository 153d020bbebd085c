package pagination

import (
	"iter"
	"slices"
)

// Result is the aggregate of every page fetched by one Execute call.
type Result[T any] struct {
	// Status, ErrorMessage, InfoMessages and HTMLAttributions come from the
	// first page only.
	Status           string
	ErrorMessage     string
	InfoMessages     []string
	HTMLAttributions []string

	// Items is the concatenation of every page's items in arrival order.
	Items []T

	// Pages is the number of pages fetched.
	Pages int

	// Truncated is set when the page cap was reached while the last page
	// still carried a continuation token. NextPageToken holds that token.
	Truncated     bool
	NextPageToken string
}

// Len returns the number of aggregated items.
func (r *Result[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// At returns a copy of the item at index i.
func (r *Result[T]) At(i int) (T, bool) {
	var zero T
	if r == nil || i < 0 || i >= len(r.Items) {
		return zero, false
	}
	return cloneItem(r.Items[i]), true
}

// All iterates the items in accumulation order.
func (r *Result[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if r == nil {
			return
		}
		for i, item := range r.Items {
			if !yield(i, cloneItem(item)) {
				return
			}
		}
	}
}

// Cloner is implemented by items that hold pointers or slices. Result.Clone
// copies such items with their Clone method.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns a copy that shares no slices with r. Items implementing
// Cloner are deep-copied.
func (r *Result[T]) Clone() *Result[T] {
	if r == nil {
		return nil
	}
	c := *r
	c.InfoMessages = slices.Clone(r.InfoMessages)
	c.HTMLAttributions = slices.Clone(r.HTMLAttributions)
	c.Items = cloneItems(r.Items)
	return &c
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}

func cloneItem[T any](item T) T {
	if c, ok := any(item).(Cloner[T]); ok {
		return c.Clone()
	}
	return item
}

// Accumulator merges pages into a Result.
type Accumulator[T any] struct {
	result Result[T]
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator[T any]() *Accumulator[T] {
	return &Accumulator[T]{}
}

// Merge adds a page. The first page sets status and diagnostics; later pages
// only append their items.
func (a *Accumulator[T]) Merge(page *Page[T]) {
	if page == nil {
		return
	}
	if a.result.Pages == 0 {
		a.result.Status = page.Status
		a.result.ErrorMessage = page.ErrorMessage
		a.result.InfoMessages = slices.Clone(page.InfoMessages)
		a.result.HTMLAttributions = slices.Clone(page.HTMLAttributions)
	}
	a.result.Items = append(a.result.Items, page.Items...)
	a.result.Pages++
}

// Pages returns how many pages have been merged.
func (a *Accumulator[T]) Pages() int {
	return a.result.Pages
}

// truncate marks the aggregate as cut short by the page cap.
func (a *Accumulator[T]) truncate(token string) {
	a.result.Truncated = true
	a.result.NextPageToken = token
}

// Result returns a copy of the aggregate.
func (a *Accumulator[T]) Result() *Result[T] {
	return a.result.Clone()
}
