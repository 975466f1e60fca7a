// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/kv"
	"github.com/xode-network/xode-staking/lvldb"
)

func M(a ...any) []any {
	return a
}

func newStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateReadWrite(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("a"), []byte("1")))

	st := New(db)
	assert.Equal(t, M([]byte("1"), nil), M(st.Get([]byte("a"))))
	assert.Equal(t, M([]byte(nil), nil), M(st.Get([]byte("b"))))

	st.Put([]byte("b"), []byte("2"))
	assert.Equal(t, M(true, nil), M(st.Has([]byte("b"))))

	st.Delete([]byte("a"))
	assert.Equal(t, M(false, nil), M(st.Has([]byte("a"))))

	// source untouched
	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestStateRevert(t *testing.T) {
	st := New(newStore(t))

	tests := []struct {
		f   func()
		ret []any
	}{
		{func() { st.Put([]byte("k"), []byte("v1")) }, M([]byte("v1"), nil)},
		{func() {}, M([]byte("v1"), nil)},
	}
	for _, tt := range tests {
		tt.f()
		assert.Equal(t, tt.ret, M(st.Get([]byte("k"))))
	}

	cp := st.NewCheckpoint()
	st.Put([]byte("k"), []byte("v2"))
	st.Put([]byte("x"), []byte("y"))
	cp2 := st.NewCheckpoint()
	st.Delete([]byte("k"))
	assert.Equal(t, M([]byte(nil), nil), M(st.Get([]byte("k"))))

	st.RevertTo(cp2)
	assert.Equal(t, M([]byte("v2"), nil), M(st.Get([]byte("k"))))

	st.RevertTo(cp)
	assert.Equal(t, M([]byte("v1"), nil), M(st.Get([]byte("k"))))
	assert.Equal(t, M([]byte(nil), nil), M(st.Get([]byte("x"))))

	assert.Panics(t, func() { st.RevertTo(0) })
}

func TestStageCommit(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("old"), []byte("x")))

	st := New(db)
	st.Put([]byte("b"), []byte("2"))
	st.Put([]byte("a"), []byte("1"))
	st.Put([]byte("a"), []byte("3"))
	st.Delete([]byte("old"))

	stage := st.Stage()
	assert.Equal(t, 3, stage.Len())

	var keys []string
	stage.Changes(func(k, v []byte) bool {
		keys = append(keys, string(k))
		return true
	})
	assert.Equal(t, []string{"a", "b", "old"}, keys)

	batch := db.NewBatch()
	require.NoError(t, stage.Commit(batch))
	require.NoError(t, batch.Write())

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)
	has, err := db.Has([]byte("old"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStageHash(t *testing.T) {
	build := func(order []string) [32]byte {
		st := New(newStore(t))
		for _, k := range order {
			st.Put([]byte(k), []byte("v"+k))
		}
		return st.Stage().Hash()
	}
	assert.Equal(t, build([]string{"a", "b", "c"}), build([]string{"c", "a", "b"}))
	assert.NotEqual(t, build([]string{"a", "b"}), build([]string{"a", "b", "c"}))
}

func TestCreator(t *testing.T) {
	db := newStore(t)
	c := NewCreator(db, 1)

	st := c.NewState()
	assert.Equal(t, M([]byte(nil), nil), M(st.Get([]byte("k"))))
	st.Put([]byte("k"), []byte("v"))
	require.NoError(t, c.Commit(st.Stage(), func(p kv.Putter) error {
		return p.Put([]byte("meta"), []byte("m"))
	}))

	// the negative cache entry is refreshed on commit
	st = c.NewState()
	assert.Equal(t, M([]byte("v"), nil), M(st.Get([]byte("k"))))
	assert.Equal(t, M(true, nil), M(c.Has([]byte("meta"))))

	st.Delete([]byte("k"))
	require.NoError(t, c.Commit(st.Stage(), nil))
	assert.Equal(t, M([]byte(nil), nil), M(c.NewState().Get([]byte("k"))))

	_, err := c.Get([]byte("missing"))
	assert.True(t, c.IsNotFound(err))
}
