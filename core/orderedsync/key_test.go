package orderedsync

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadInt(t *testing.T) {
	assert.Equal(t, "00001", PadInt(1, 5))
	assert.Equal(t, "00010", PadInt(10, 5))
	assert.Equal(t, "123456", PadInt(123456, 5))
	assert.Equal(t, "0", PadInt(0, 0))
}

func TestPadInt_PreservesNumericOrder(t *testing.T) {
	// Unpadded, "10A" sorts before "1B" and the merge goes wrong.
	assert.Less(t, "10"+"A", "1"+"B")
	assert.Less(t, PadInt(1, 5)+"B", PadInt(10, 5)+"A")
}

func TestJoinKey_PrefixSortsFirst(t *testing.T) {
	keys := []string{
		JoinKey("a/b", "x"),
		JoinKey("a", "z"),
		JoinKey("ab", "a"),
	}
	slices.Sort(keys)
	assert.Equal(t, []string{JoinKey("a", "z"), JoinKey("a/b", "x"), JoinKey("ab", "a")}, keys)
}

func TestCompositeKey_ChangedEntityIsRemoveAndAdd(t *testing.T) {
	type user struct {
		id    int64
		email string
	}
	key := func(u user) string { return JoinKey(PadInt(u.id, 10), u.email) }

	source := []user{{1, "john@doe.com"}, {2, "jane@test.org"}}
	target := []user{{1, "john@test.com"}, {2, "jane@test.org"}}

	c := &Collector[user]{}
	stats, err := New(key).Reconcile(context.Background(), FromSlice(source), FromSlice(target), c)
	require.NoError(t, err)
	assert.Equal(t, []user{{1, "john@doe.com"}}, c.Added)
	assert.Equal(t, []user{{1, "john@test.com"}}, c.Removed)
	assert.Equal(t, 1, stats.Matched)
}
