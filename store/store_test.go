package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"govlock/sdk"
)

func collect(st sdk.State, prefix string, reverse bool) []string {
	var out []string
	st.Iterate(prefix, reverse, func(k, v string) bool {
		out = append(out, k+"="+v)
		return true
	})
	return out
}

func backends(t *testing.T) map[string]sdk.State {
	t.Helper()
	db, err := OpenBadger("", true, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]sdk.State{
		"memory": NewMemory(),
		"badger": db,
	}
}

// TestBackendsIterateInOrder checks both backends agree on key order so
// listings never depend on which store the host runs on.
func TestBackendsIterateInOrder(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st.Set("a/2", "two")
			st.Set("a/1", "one")
			st.Set("a/3", "three")
			st.Set("b/1", "other")

			assert.Equal(t, []string{"a/1=one", "a/2=two", "a/3=three"}, collect(st, "a/", false))
			assert.Equal(t, []string{"a/3=three", "a/2=two", "a/1=one"}, collect(st, "a/", true))

			st.Delete("a/2")
			assert.Nil(t, st.Get("a/2"))
			require.NotNil(t, st.Get("a/1"))
			assert.Equal(t, "one", *st.Get("a/1"))

			var first []string
			st.Iterate("a/", false, func(k, _ string) bool {
				first = append(first, k)
				return false
			})
			assert.Equal(t, []string{"a/1"}, first)
		})
	}
}

func TestPrefixStripsNamespace(t *testing.T) {
	mem := NewMemory()
	p := NewPrefix(mem, "locker/")
	p.Set("k1", "v1")
	p.Set("k2", "v2")
	mem.Set("gov/k1", "x")

	assert.Equal(t, "v1", *mem.Get("locker/k1"))
	assert.Equal(t, []string{"k1=v1", "k2=v2"}, collect(p, "k", false))
	assert.Nil(t, p.Get("gov/k1"))
}

// TestCacheCommitAndDiscard checks the all-or-nothing write buffer.
func TestCacheCommitAndDiscard(t *testing.T) {
	for name, base := range backends(t) {
		t.Run(name, func(t *testing.T) {
			base.Set("x/keep", "1")
			base.Set("x/drop", "2")

			c := NewCache(base)
			c.Set("x/new", "3")
			c.Delete("x/drop")
			assert.Equal(t, []string{"x/keep=1", "x/new=3"}, collect(c, "x/", false))
			assert.NotNil(t, base.Get("x/drop"))
			assert.Nil(t, base.Get("x/new"))

			c.Discard()
			assert.Equal(t, "2", *c.Get("x/drop"))

			c.Set("x/new", "3")
			c.Delete("x/drop")
			require.NoError(t, c.Commit())
			assert.Equal(t, []string{"x/keep=1", "x/new=3"}, collect(base, "x/", false))
			assert.Empty(t, c.Ops())
		})
	}
}

func TestNestedCache(t *testing.T) {
	mem := NewMemory()
	outer := NewCache(mem)
	inner := NewCache(outer)
	inner.Set("k", "v")
	require.NoError(t, inner.Commit())
	assert.Equal(t, "v", *outer.Get("k"))
	assert.Nil(t, mem.Get("k"))
	require.NoError(t, outer.Commit())
	assert.Equal(t, "v", *mem.Get("k"))
}

func TestReadOnlyPanicsOnWrite(t *testing.T) {
	ro := ReadOnly{State: NewMemory()}
	assert.PanicsWithValue(t, ErrReadOnly, func() { ro.Set("a", "b") })
	assert.Nil(t, ro.Get("a"))
}

func TestBadgerBatchAndClosedErr(t *testing.T) {
	db, err := OpenBadger("", true, zaptest.NewLogger(t))
	require.NoError(t, err)
	one, two := "1", "2"
	require.NoError(t, db.ApplyBatch([]Op{{Key: "b", Value: &two}, {Key: "a", Value: &one}, {Key: "c", Value: &one}, {Key: "c"}}))
	assert.Equal(t, []string{"a=1", "b=2"}, collect(db, "", false))
	assert.NoError(t, db.Err())

	require.NoError(t, db.Close())
	assert.Nil(t, db.Get("a"))
	assert.Error(t, db.Err())
	assert.Error(t, NewCache(db).Commit())
}
