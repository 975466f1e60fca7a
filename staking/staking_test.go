// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/aura"
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/codec"
	"github.com/xode-network/xode-staking/collatorselection"
	"github.com/xode-network/xode-staking/lvldb"
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/test/datagen"
	"github.com/xode-network/xode-staking/xode"
)

func M(a ...any) []any {
	return a
}

type testEnv struct {
	state     *state.State
	meter     *storage.Meter
	staking   *Staking
	aura      *aura.Aura
	collators *collatorselection.CollatorSelection
	balances  *balances.Balances
	events    []Event
}

func newTestEnv(t *testing.T, cfg Config, maxAuthorities, maxCollators uint32) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		state: state.New(db),
		meter: storage.NewMeter(),
	}
	env.aura = aura.New(storage.NewContext(aura.ModuleName, env.state, env.meter), maxAuthorities)
	env.collators = collatorselection.New(storage.NewContext(collatorselection.ModuleName, env.state, env.meter), maxCollators)
	env.balances = balances.New(storage.NewContext(balances.ModuleName, env.state, env.meter))
	env.staking = New(
		storage.NewContext(ModuleName, env.state, env.meter),
		cfg,
		codec.New(xode.DefaultKeyLength),
		Modules{Authorities: env.aura, Collators: env.collators, Accounts: env.balances},
		func(ev Event) { env.events = append(env.events, ev) },
	)
	return env
}

func (e *testEnv) candidates(t *testing.T) []xode.AuthorityID {
	list, err := e.staking.Candidates()
	require.NoError(t, err)
	return list
}

func (e *testEnv) collatorList(t *testing.T) []xode.AccountID {
	list, err := e.collators.Invulnerables()
	require.NoError(t, err)
	return list
}

func (e *testEnv) eventNames() (names []string) {
	for _, ev := range e.events {
		names = append(names, ev.EventName())
	}
	return
}

func accountOf(id xode.AuthorityID) xode.AccountID {
	return xode.BytesToAccountID(id.Bytes())
}

func testConfig(maxCandidates uint32, seeds ...string) Config {
	return Config{
		BlockInterval: 10,
		MaxCandidates: maxCandidates,
		Invulnerables: seeds,
	}
}

func TestAddCandidateCapacity(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 10)
	a, b, c, d := datagen.RandAuthorityID(), datagen.RandAuthorityID(), datagen.RandAuthorityID(), datagen.RandAuthorityID()

	for _, id := range []xode.AuthorityID{a, b, c} {
		require.NoError(t, env.staking.AddCandidate(id))
	}
	assert.Equal(t, []xode.AuthorityID{a, b, c}, env.candidates(t))

	assert.Equal(t, ErrExceedsMaxCandidates, env.staking.AddCandidate(d))
	assert.True(t, IsKind(env.staking.AddCandidate(d), KindCapacityExceeded))
	assert.Equal(t, []xode.AuthorityID{a, b, c}, env.candidates(t))
	assert.Equal(t, uint32(3), env.staking.MaxCandidates())

	assert.Equal(t, []string{"CandidateAdded", "CandidateAdded", "CandidateAdded"}, env.eventNames())
}

func TestAddCandidateDuplicate(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 10)
	a := datagen.RandAuthorityID()

	require.NoError(t, env.staking.AddCandidate(a))
	assert.Equal(t, ErrCandidateAlreadyExist, env.staking.AddCandidate(a))
	assert.Equal(t, []xode.AuthorityID{a}, env.candidates(t))
}

func TestRemoveCandidate(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 10)
	a, b, c := datagen.RandAuthorityID(), datagen.RandAuthorityID(), datagen.RandAuthorityID()
	for _, id := range []xode.AuthorityID{a, b, c} {
		require.NoError(t, env.staking.AddCandidate(id))
	}

	require.NoError(t, env.staking.RemoveCandidate(b))
	assert.Equal(t, []xode.AuthorityID{a, c}, env.candidates(t))
	assert.Equal(t, ErrCandidateDoesNotExist, env.staking.RemoveCandidate(b))

	last := env.events[len(env.events)-1]
	assert.Equal(t, CandidateRemoved{Candidate: b}, last)
}

func TestStake(t *testing.T) {
	env := newTestEnv(t, testConfig(1), 10, 10)
	who := xode.Signed(datagen.RandAccountID())
	a, b := datagen.RandAuthorityID(), datagen.RandAuthorityID()

	assert.Equal(t, ErrBadOrigin, env.staking.Stake(xode.None(), a))
	assert.Empty(t, env.candidates(t))

	require.NoError(t, env.staking.Stake(who, a))

	err := env.staking.Stake(who, a)
	assert.Equal(t, ErrStakeDuplicate, err)
	assert.Equal(t, "Candidate already exists", err.Error())
	assert.True(t, IsKind(err, KindDuplicateEntry))

	err = env.staking.Stake(who, b)
	assert.Equal(t, ErrStakeFull, err)
	assert.Equal(t, "Max candidates reached", err.Error())
	assert.True(t, IsKind(err, KindCapacityExceeded))

	assert.Equal(t, ErrBadOrigin, env.staking.Unstake(xode.None(), a))
	require.NoError(t, env.staking.Unstake(who, a))

	err = env.staking.Unstake(who, a)
	assert.Equal(t, ErrUnstakeMissing, err)
	assert.Equal(t, "Candidate does not exist", err.Error())
	assert.True(t, IsKind(err, KindNotFound))

	assert.Equal(t, []string{"CandidateAdded", "CandidateRemoved"}, env.eventNames())
}

func TestAuthorities(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 1, 10)
	a, b := datagen.RandAuthorityID(), datagen.RandAuthorityID()

	require.NoError(t, env.staking.AddAuthority(a))
	assert.Equal(t, ErrAuthorityAlreadyExist, env.staking.AddAuthority(a))
	assert.Equal(t, ErrExceedsMaxAuthorities, env.staking.AddAuthority(b))

	assert.Equal(t, M([]xode.AuthorityID{a}, nil), M(env.staking.RetrieveAuthorities()))
	assert.Equal(t, M([]xode.AccountID{accountOf(a)}, nil), M(env.staking.RetrieveValidators()))
	assert.Equal(t, uint32(1), env.staking.RetrieveMaxAuthorities())

	require.NoError(t, env.staking.DeleteAuthority(a))
	assert.Equal(t, ErrAuthorityDoesNotExist, env.staking.DeleteAuthority(a))

	assert.Equal(t, []string{
		"AuthorityAdded",
		"AuthoritiesRetrieved",
		"ValidatorsRetrieved",
		"MaxAuthoritiesRetrieved",
		"AuthorityRemoved",
	}, env.eventNames())
	assert.Equal(t, MaxAuthoritiesRetrieved{MaxAuthorities: 1}, env.events[3])
}

func TestRetrieveValidatorsCodecFailure(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 10)
	require.NoError(t, env.aura.AddAuthority(datagen.RandAuthorityIDN(33)))

	_, err := env.staking.RetrieveValidators()
	assert.True(t, IsKind(err, KindCodecFailure), "%v", err)
	assert.Empty(t, env.events)
}

func TestCollators(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 1)
	a, b := datagen.RandAccountID(), datagen.RandAccountID()

	require.NoError(t, env.staking.AddCollator(a))
	assert.Equal(t, ErrCollatorAlreadyExist, env.staking.AddCollator(a))
	assert.Equal(t, ErrExceedsMaxCollators, env.staking.AddCollator(b))
	require.NoError(t, env.staking.DeleteCollator(a))
	assert.Equal(t, ErrCollatorDoesNotExist, env.staking.DeleteCollator(a))

	assert.Equal(t, []Event{CollatorAdded{Collator: a}, CollatorRemoved{Collator: a}}, env.events)
}

func TestRetrieveTreasuryAccount(t *testing.T) {
	env := newTestEnv(t, testConfig(3), 10, 10)
	treasury := xode.TreasuryPalletID.IntoAccount()
	require.NoError(t, env.balances.Endow(treasury, uint256.NewInt(1_000_000)))

	acc, data, err := env.staking.RetrieveTreasuryAccount()
	require.NoError(t, err)
	assert.Equal(t, treasury, acc)
	assert.Equal(t, uint64(1_000_000), data.Free.Uint64())
	assert.True(t, bytes.HasPrefix(acc[:], []byte("modlpy/trsry")))

	require.Len(t, env.events, 1)
	assert.Equal(t, "TreasuryAccountRetrieved", env.events[0].EventName())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.BlockInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxCandidates = 0
	assert.Error(t, cfg.Validate())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CapacityExceeded", KindCapacityExceeded.String())
	assert.Equal(t, "CodecFailure", ErrCodecFailure.Kind.String())
	assert.Equal(t, "Unknown", Kind(0).String())
}
