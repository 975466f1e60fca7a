// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/lvldb"
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

func M(a ...any) []any {
	return a
}

// recorder is a manager returning {index} as the set of each session.
type recorder struct {
	calls []string
	keep  bool
	err   error
}

func (r *recorder) NewSession(index uint32) ([]xode.AccountID, bool, error) {
	r.calls = append(r.calls, fmt.Sprintf("new(%d)", index))
	if r.err != nil {
		return nil, false, r.err
	}
	if r.keep {
		return nil, false, nil
	}
	return []xode.AccountID{{byte(index)}}, true, nil
}

func (r *recorder) StartSession(index uint32) {
	r.calls = append(r.calls, fmt.Sprintf("start(%d)", index))
}
func (r *recorder) EndSession(index uint32) { r.calls = append(r.calls, fmt.Sprintf("end(%d)", index)) }

func newSession(t *testing.T, cfg Config, m Manager) *Session {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.NewContext(ModuleName, state.New(db), nil), cfg, m)
}

func set(i byte) []xode.AccountID {
	return []xode.AccountID{{i}}
}

func TestShouldEndSession(t *testing.T) {
	s := newSession(t, Config{Period: 5, Offset: 2}, &recorder{})

	var ends []uint32
	for b := uint32(0); b < 20; b++ {
		if s.ShouldEndSession(b) {
			ends = append(ends, b)
		}
	}
	assert.Equal(t, []uint32{2, 7, 12, 17}, ends)
}

func TestGenesisAndRotation(t *testing.T) {
	r := &recorder{}
	s := newSession(t, Config{Period: 3}, r)

	require.NoError(t, s.InitGenesis())
	assert.Equal(t, []string{"new(0)", "new(1)", "start(0)"}, r.calls)
	assert.Equal(t, M(uint32(0), nil), M(s.CurrentIndex()))
	assert.Equal(t, M(set(0), nil), M(s.Validators()))
	assert.Equal(t, M(set(1), nil), M(s.QueuedValidators()))

	r.calls = nil
	for b := uint32(1); b <= 6; b++ {
		_, err := s.OnInitialize(b)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"end(0)", "start(1)", "new(2)", "end(1)", "start(2)", "new(3)"}, r.calls)
	assert.Equal(t, M(uint32(2), nil), M(s.CurrentIndex()))
	assert.Equal(t, M(set(2), nil), M(s.Validators()))
	assert.Equal(t, M(set(3), nil), M(s.QueuedValidators()))
}

func TestRotationKeepsQueued(t *testing.T) {
	r := &recorder{}
	s := newSession(t, Config{Period: 1}, r)
	require.NoError(t, s.InitGenesis())

	r.keep = true
	rotated, err := s.OnInitialize(1)
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.Equal(t, M(set(1), nil), M(s.Validators()))
	assert.Equal(t, M(set(1), nil), M(s.QueuedValidators()))
}

func TestRotationError(t *testing.T) {
	r := &recorder{}
	s := newSession(t, Config{Period: 1}, r)
	require.NoError(t, s.InitGenesis())

	r.err = errors.New("boom")
	_, err := s.OnInitialize(1)
	assert.ErrorContains(t, err, "new session 2")
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{Period: 1}).Validate())
}
