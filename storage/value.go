// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Value is a single rlp encoded storage item, which may be absent.
type Value[V any] struct {
	context *Context
	key     []byte
	name    string
}

func NewValue[V any](context *Context, name string) *Value[V] {
	return &Value[V]{context: context, key: context.Key(name), name: name}
}

// Get returns the stored value. The second return value indicates whether it's present.
func (v *Value[V]) Get() (value V, exist bool, err error) {
	v.context.read()
	raw, err := v.context.state.Get(v.key)
	if err != nil {
		return value, false, err
	}
	if len(raw) == 0 {
		return value, false, nil
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrapf(err, "decode %s", v.name)
	}
	return value, true, nil
}

// Put stores the value.
func (v *Value[V]) Put(value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", v.name)
	}
	v.context.write()
	v.context.state.Put(v.key, raw)
	return nil
}

// Kill removes the value.
func (v *Value[V]) Kill() {
	v.context.write()
	v.context.state.Delete(v.key)
}
