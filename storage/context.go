// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides typed storage items over the runtime state,
// namespaced per module and metered per access.
package storage

import (
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/xode"
)

// Context binds storage items of a module to a state and a meter.
type Context struct {
	prefix []byte
	state  *state.State
	meter  *Meter
}

// NewContext creates a context for the named module. A nil meter disables metering.
func NewContext(module string, st *state.State, meter *Meter) *Context {
	h := xode.Blake2b([]byte(module))
	return &Context{
		prefix: h[:16],
		state:  st,
		meter:  meter,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Meter() *Meter {
	return c.meter
}

// Key returns the storage key of the named item, followed by optional suffix.
func (c *Context) Key(name string, suffix ...[]byte) []byte {
	h := xode.Blake2b([]byte(name))
	key := make([]byte, 0, 32)
	key = append(key, c.prefix...)
	key = append(key, h[:16]...)
	for _, s := range suffix {
		key = append(key, s...)
	}
	return key
}

func (c *Context) read() {
	if c.meter != nil {
		c.meter.Read(1)
	}
}

func (c *Context) write() {
	if c.meter != nil {
		c.meter.Write(1)
	}
}
