// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/xode-network/xode-staking/kv"
	"github.com/xode-network/xode-staking/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State is a revertable view over a kv source.
type State struct {
	src kv.Getter
	sm  *stackedmap.StackedMap[string, []byte]
}

// New create state object.
func New(src kv.Getter) *State {
	s := &State{src: src}
	s.sm = stackedmap.New(s.load)
	// the base level, never popped
	s.sm.Push()
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(key string) ([]byte, bool, error) {
	metricStateAccess().AddWithLabel(1, map[string]string{"type": "load"})
	val, err := s.src.Get([]byte(key))
	if err != nil {
		if s.src.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Get returns the value of the given key. A nil value is returned if the key is absent.
// The returned value should not be modified.
func (s *State) Get(key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return val, nil
}

// Has returns whether the key has a non-empty value.
func (s *State) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return len(val) > 0, nil
}

// Put sets the value of the given key. Empty value deletes the key.
func (s *State) Put(key, val []byte) {
	metricStateAccess().AddWithLabel(1, map[string]string{"type": "put"})
	s.sm.Put(string(key), bytes.Clone(val))
}

// Delete deletes the given key.
func (s *State) Delete(key []byte) {
	s.Put(key, nil)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		panic("state: revert to invalid revision")
	}
	metricStateAccess().AddWithLabel(1, map[string]string{"type": "revert"})
	s.sm.PopTo(revision)
}

// Stage makes a stage object from the changes made so far.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(key string, val []byte) bool {
		changes[key] = val
		return true
	})
	return newStage(changes)
}
