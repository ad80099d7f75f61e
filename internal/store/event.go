package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out one increasing number shared by every event
// table, so model calls and processing runs interleave in order. The row
// lives in global_sequence, created by migrate.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

const nextSequence = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`

func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rows entsql.Rows
	if err := c.drv.Query(ctx, nextSequence, []any{}, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, errors.New("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, rows.Err()
}
