// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/test/datagen"
	"github.com/xode-network/xode-staking/xode"
)

func TestNewSessionCapacity(t *testing.T) {
	env := newTestEnv(t, testConfig(10), 10, 1)
	x, y := datagen.RandAuthorityID(), datagen.RandAuthorityID()
	require.NoError(t, env.staking.AddCandidate(x))
	require.NoError(t, env.staking.AddCandidate(y))

	validators, ok, err := env.staking.NewSession(7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []xode.AccountID{accountOf(x)}, validators)
}

func TestNewSessionIgnoresScheduler(t *testing.T) {
	env := newTestEnv(t, testConfig(10), 10, 10)
	_, err := env.staking.OnInitialize(1)
	require.NoError(t, err)

	x := datagen.RandAuthorityID()
	require.NoError(t, env.staking.AddCandidate(x))

	// far from the trigger, the session still merges
	validators, ok, err := env.staking.NewSession(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []xode.AccountID{accountOf(x)}, validators)
	assert.Equal(t, M(uint32(11), true, nil), M(env.staking.NextBlockNumber()))
}

func TestNewSessionEmpty(t *testing.T) {
	env := newTestEnv(t, testConfig(10), 10, 10)

	validators, ok, err := env.staking.NewSession(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, validators)

	env.staking.StartSession(0)
	env.staking.EndSession(0)
	assert.Empty(t, env.events)
}
