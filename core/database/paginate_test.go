package database

import (
	"context"
	"errors"
	"testing"

	"ordered-sync/core/orderedsync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pager serves ints from a sorted slice and records every request.
type pager struct {
	rows  []int
	calls []int
	err   error
}

func (p *pager) fetch(ctx context.Context, last *int, limit int) ([]int, error) {
	after := -1
	if last != nil {
		after = *last
	}
	p.calls = append(p.calls, after)
	if p.err != nil {
		return nil, p.err
	}

	var out []int
	for _, r := range p.rows {
		if r > after && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		rows      []int
		pageSize  int
		wantCalls []int
	}{
		{"Empty", nil, 2, []int{-1}},
		{"ShortPage", []int{1, 2, 3}, 5, []int{-1}},
		{"ExactPages", []int{1, 2, 3, 4}, 2, []int{-1, 2, 4}},
		{"PartialLastPage", []int{1, 2, 3, 4, 5}, 2, []int{-1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &pager{rows: tt.rows}
			got, err := orderedsync.Drain(context.Background(), Paginate(tt.pageSize, p.fetch))
			require.NoError(t, err)
			assert.Equal(t, tt.rows, got)
			assert.Equal(t, tt.wantCalls, p.calls)
		})
	}
}

func TestPaginate_IgnoresRowsInsertedBehind(t *testing.T) {
	p := &pager{rows: []int{10, 20, 30}}
	seq := Paginate(2, p.fetch)
	ctx := context.Background()

	head, ok, err := seq.Peek(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, head)
	seq.Advance()

	// A sink inserting a row that sorts before the cursor is never read back.
	p.rows = []int{5, 10, 20, 30}

	rest, err := orderedsync.Drain(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 30}, rest)
}

func TestPaginate_Error(t *testing.T) {
	boom := errors.New("connection reset")
	p := &pager{err: boom}

	_, _, err := Paginate(0, p.fetch).Peek(context.Background())
	assert.ErrorIs(t, err, boom)
}
