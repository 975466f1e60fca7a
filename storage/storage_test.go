// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/lvldb"
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/test/datagen"
	"github.com/xode-network/xode-staking/xode"
)

func M(a ...any) []any {
	return a
}

func newTestContext(t *testing.T, module string) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(module, state.New(db), NewMeter())
}

func TestKeyNamespace(t *testing.T) {
	ctx := newTestContext(t, "A")
	other := NewContext("B", ctx.State(), nil)

	assert.Len(t, ctx.Key("x"), 32)
	assert.NotEqual(t, ctx.Key("x"), other.Key("x"))
	assert.NotEqual(t, ctx.Key("x"), ctx.Key("y"))
	assert.Equal(t, ctx.Key("x")[:16], ctx.Key("y")[:16])
	assert.Equal(t, append(ctx.Key("x"), 1), ctx.Key("x", []byte{1}))
}

func TestValue(t *testing.T) {
	ctx := newTestContext(t, "Test")
	v := NewValue[uint32](ctx, "Next")

	assert.Equal(t, M(uint32(0), false, nil), M(v.Get()))
	require.NoError(t, v.Put(11))
	assert.Equal(t, M(uint32(11), true, nil), M(v.Get()))

	// zero is a present value
	require.NoError(t, v.Put(0))
	assert.Equal(t, M(uint32(0), true, nil), M(v.Get()))

	v.Kill()
	assert.Equal(t, M(uint32(0), false, nil), M(v.Get()))

	// one read per Get
	assert.Equal(t, uint64(4), ctx.Meter().Reads())
	assert.Equal(t, uint64(3), ctx.Meter().Writes())
}

func TestValueDecodeError(t *testing.T) {
	ctx := newTestContext(t, "Test")
	ctx.State().Put(ctx.Key("Next"), []byte{0xff, 0xff})

	_, _, err := NewValue[uint32](ctx, "Next").Get()
	assert.ErrorContains(t, err, "decode Next")
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t, "Test")
	m := NewMapping[xode.AccountID, uint64](ctx, "Map")

	a, b := datagen.RandAccountID(), datagen.RandAccountID()
	require.NoError(t, m.Set(a, 1))
	require.NoError(t, m.Set(b, 2))

	assert.Equal(t, M(uint64(1), nil), M(m.Get(a)))
	assert.Equal(t, M(uint64(2), nil), M(m.Get(b)))

	m.Remove(a)
	assert.Equal(t, M(uint64(0), nil), M(m.Get(a)))
}

func TestBoundedVec(t *testing.T) {
	ctx := newTestContext(t, "Test")
	list := NewBoundedVec[xode.AuthorityID](ctx, "List", 3)

	a, b, c, d := datagen.RandAuthorityID(), datagen.RandAuthorityID(), datagen.RandAuthorityID(), datagen.RandAuthorityID()

	assert.Equal(t, uint32(3), list.Bound())
	assert.Equal(t, M(0, nil), M(list.Len()))

	require.NoError(t, list.Insert(a))
	require.NoError(t, list.Insert(b))
	assert.Equal(t, ErrDuplicate, list.Insert(a))
	require.NoError(t, list.Insert(c))
	assert.Equal(t, ErrFull, list.Insert(d))

	// duplicate is reported before capacity
	assert.Equal(t, ErrDuplicate, list.Insert(b))

	got, err := list.Get()
	require.NoError(t, err)
	assert.Equal(t, []xode.AuthorityID{a, b, c}, got)

	require.NoError(t, list.Remove(b))
	assert.Equal(t, ErrNotFound, list.Remove(b))
	got, err = list.Get()
	require.NoError(t, err)
	assert.Equal(t, []xode.AuthorityID{a, c}, got)

	assert.Equal(t, M(true, nil), M(list.Contains(c)))
	assert.Equal(t, M(false, nil), M(list.Contains(b)))

	require.NoError(t, list.Remove(a))
	require.NoError(t, list.Remove(c))
	assert.Equal(t, M(0, nil), M(list.Len()))
	has, err := ctx.State().Has(ctx.Key("List"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBoundedVecSet(t *testing.T) {
	ctx := newTestContext(t, "Test")
	list := NewBoundedVec[xode.AccountID](ctx, "List", 2)

	a, b, c := datagen.RandAccountID(), datagen.RandAccountID(), datagen.RandAccountID()
	assert.Equal(t, ErrFull, list.Set([]xode.AccountID{a, b, c}))
	assert.Equal(t, ErrDuplicate, list.Set([]xode.AccountID{a, a}))
	assert.Equal(t, M(0, nil), M(list.Len()))

	require.NoError(t, list.Set([]xode.AccountID{b, a}))
	got, err := list.Get()
	require.NoError(t, err)
	assert.Equal(t, []xode.AccountID{b, a}, got)
}

func TestBoundedVecZeroBound(t *testing.T) {
	ctx := newTestContext(t, "Test")
	list := NewBoundedVec[xode.AuthorityID](ctx, "List", 0)
	assert.Equal(t, ErrFull, list.Insert(datagen.RandAuthorityID()))
}

func TestMeter(t *testing.T) {
	m := NewMeter()
	m.Read(2)
	m.Write(1)
	w := xode.DbWeight{Read: 10, Write: 100}
	assert.Equal(t, xode.Weight(120), m.Consumed(w))
	assert.Equal(t, "READ: 2 ops (20) | WRITE: 1 ops (100) | TOTAL: 120", m.Breakdown(w))
	m.Reset()
	assert.Equal(t, xode.Weight(0), m.Consumed(w))
}
