// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/xode"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage item. Entry keys are hashed with the
// raw key appended, so entries stay scannable by key.
type Mapping[K Key, V any] struct {
	context *Context
	name    string
}

func NewMapping[K Key, V any](context *Context, name string) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, name: name}
}

func (m *Mapping[K, V]) key(k K) []byte {
	raw := k.Bytes()
	h := xode.Blake2b(raw)
	return m.context.Key(m.name, h[:16], raw)
}

// Get returns the value for the key, or the zero value if absent.
func (m *Mapping[K, V]) Get(k K) (value V, err error) {
	m.context.read()
	raw, err := m.context.state.Get(m.key(k))
	if err != nil || len(raw) == 0 {
		return value, err
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, errors.Wrapf(err, "decode %s", m.name)
	}
	return value, nil
}

func (m *Mapping[K, V]) Set(k K, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", m.name)
	}
	m.context.write()
	m.context.state.Put(m.key(k), raw)
	return nil
}

func (m *Mapping[K, V]) Remove(k K) {
	m.context.write()
	m.context.state.Delete(m.key(k))
}
