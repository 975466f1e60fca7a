// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/lvldb"
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/test/datagen"
)

func newBalances(t *testing.T) *Balances {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.NewContext(ModuleName, state.New(db), nil))
}

func TestAccount(t *testing.T) {
	b := newBalances(t)
	acc := datagen.RandAccountID()

	data, err := b.Account(acc)
	require.NoError(t, err)
	assert.True(t, data.IsZero())

	require.NoError(t, b.Endow(acc, uint256.NewInt(100)))
	require.NoError(t, b.Endow(acc, uint256.NewInt(50)))

	data, err = b.Account(acc)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), data.Free.Uint64())
	assert.True(t, data.Reserved.IsZero())

	data.Reserved = uint256.NewInt(7)
	data.Flags = 1
	require.NoError(t, b.SetAccount(acc, data))
	data, err = b.Account(acc)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), data.Reserved.Uint64())
	assert.Equal(t, uint64(1), data.Flags)
}

func TestEndowOverflow(t *testing.T) {
	b := newBalances(t)
	acc := datagen.RandAccountID()

	max := new(uint256.Int).SetAllOne()
	require.NoError(t, b.Endow(acc, max))
	assert.Error(t, b.Endow(acc, uint256.NewInt(1)))
}

func TestZeroAccountRemoved(t *testing.T) {
	b := newBalances(t)
	acc := datagen.RandAccountID()

	require.NoError(t, b.Endow(acc, uint256.NewInt(1)))
	zero := AccountData{Free: new(uint256.Int), Reserved: new(uint256.Int), Frozen: new(uint256.Int)}
	require.NoError(t, b.SetAccount(acc, zero))

	data, err := b.Account(acc)
	require.NoError(t, err)
	assert.True(t, data.IsZero())
}

func TestAccountDataJSON(t *testing.T) {
	data := AccountData{
		Free:     uint256.NewInt(1000),
		Reserved: uint256.NewInt(1),
		Frozen:   new(uint256.Int),
		Flags:    2,
	}
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"free":"1000","reserved":"1","frozen":"0","flags":2}`, string(raw))

	raw, err = json.Marshal(AccountData{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"free":"0","reserved":"0","frozen":"0","flags":0}`, string(raw))
}
