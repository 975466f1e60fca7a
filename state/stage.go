// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xode-network/xode-staking/kv"
	"github.com/xode-network/xode-staking/xode"
)

// Stage abstracts the net changes of a state.
type Stage struct {
	keys    []string
	changes map[string][]byte
}

func newStage(changes map[string][]byte) *Stage {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &Stage{keys, changes}
}

// Len returns the count of changed keys.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Changes traverses changes in key order. An empty value means deletion.
func (s *Stage) Changes(cb func(key, val []byte) bool) {
	for _, k := range s.keys {
		if !cb([]byte(k), s.changes[k]) {
			return
		}
	}
}

// Hash computes the digest of all changes.
func (s *Stage) Hash() [32]byte {
	hasher := xode.NewBlake2b()
	for _, k := range s.keys {
		// encoding of byte slices never fails
		_ = rlp.Encode(hasher, [][]byte{[]byte(k), s.changes[k]})
	}
	var h [32]byte
	hasher.Sum(h[:0])
	return h
}

// Commit writes all changes into the putter.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, k := range s.keys {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = putter.Delete([]byte(k))
		} else {
			err = putter.Put([]byte(k), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	return nil
}
