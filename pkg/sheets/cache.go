package sheets

import "context"

// Cached memoizes whole-table reads of an underlying Store for the
// lifetime of one invocation. The first read fetches the full row
// matrix; header and column lookups are then served from memory, so a
// volume calculation costs a single round trip regardless of how many
// columns it touches. It is not a persistent cache: build a fresh
// Cached per job run.
type Cached struct {
	store Store
	rows  [][]string
	ready bool
}

func NewCached(store Store) *Cached {
	return &Cached{store: store}
}

func (c *Cached) load(ctx context.Context) error {
	if c.ready {
		return nil
	}
	rows, err := c.store.AllRows(ctx)
	if err != nil {
		return err
	}
	c.rows = rows
	c.ready = true
	return nil
}

func (c *Cached) HeaderRow(ctx context.Context) ([]string, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	if len(c.rows) == 0 {
		return nil, nil
	}
	return c.rows[0], nil
}

func (c *Cached) Column(ctx context.Context, index int) ([]string, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}

	var out []string
	for _, row := range c.rows[min(1, len(c.rows)):] {
		if index-1 < len(row) {
			out = append(out, row[index-1])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

func (c *Cached) AllRows(ctx context.Context) ([][]string, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.rows, nil
}

// ColumnFormulas is served by the underlying store; formulas are not
// part of the cached value matrix.
func (c *Cached) ColumnFormulas(ctx context.Context, index int) ([]string, error) {
	return c.store.ColumnFormulas(ctx, index)
}

// AppendColumn writes through and drops the memoized rows so the next
// read sees the new column.
func (c *Cached) AppendColumn(ctx context.Context, header string, values []string) error {
	if err := c.store.AppendColumn(ctx, header, values); err != nil {
		return err
	}
	c.rows = nil
	c.ready = false
	return nil
}
