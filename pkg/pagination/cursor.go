package pagination

// Cursor walks the items of a completed Result front to back.
// It holds a reference to the result, which must not be modified while the
// cursor is in use. To restart, create a new cursor.
type Cursor[T any] struct {
	result *Result[T]
	pos    int
}

// NewCursor creates a cursor positioned before the first item.
// A nil result yields an empty cursor.
func NewCursor[T any](result *Result[T]) *Cursor[T] {
	return &Cursor[T]{result: result}
}

// Next returns the next item, or false once the cursor is exhausted.
func (c *Cursor[T]) Next() (T, bool) {
	item, ok := c.result.At(c.pos)
	if ok {
		c.pos++
	}
	return item, ok
}

// At returns the item at index i without moving the cursor.
func (c *Cursor[T]) At(i int) (T, bool) {
	return c.result.At(i)
}

// Len returns the total number of items.
func (c *Cursor[T]) Len() int {
	return c.result.Len()
}

// Remaining returns the number of items Next has not yet returned.
func (c *Cursor[T]) Remaining() int {
	return c.Len() - c.pos
}
