// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package collatorselection keeps the set of invulnerable collators.
package collatorselection

import (
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

// ModuleName namespaces the storage of the module.
const ModuleName = "CollatorSelection"

var logger = log.WithContext("pkg", "collatorselection")

// CollatorSelection is the collator registry bound to a block's storage.
type CollatorSelection struct {
	invulnerables *storage.BoundedVec[xode.AccountID]
}

// New binds the registry to the storage context.
func New(ctx *storage.Context, maxInvulnerables uint32) *CollatorSelection {
	return &CollatorSelection{
		invulnerables: storage.NewBoundedVec[xode.AccountID](ctx, "Invulnerables", maxInvulnerables),
	}
}

// Invulnerables returns the invulnerable collators in insertion order.
func (c *CollatorSelection) Invulnerables() ([]xode.AccountID, error) {
	return c.invulnerables.Get()
}

func (c *CollatorSelection) MaxInvulnerables() uint32 {
	return c.invulnerables.Bound()
}

// AddInvulnerable appends the collator. It fails with storage.ErrDuplicate or storage.ErrFull.
func (c *CollatorSelection) AddInvulnerable(acc xode.AccountID) error {
	if err := c.invulnerables.Insert(acc); err != nil {
		return errors.Wrap(err, "collator selection: add invulnerable")
	}
	logger.Debug("invulnerable added", "account", acc)
	return nil
}

// RemoveInvulnerable removes the collator. It fails with storage.ErrNotFound.
func (c *CollatorSelection) RemoveInvulnerable(acc xode.AccountID) error {
	if err := c.invulnerables.Remove(acc); err != nil {
		return errors.Wrap(err, "collator selection: remove invulnerable")
	}
	logger.Debug("invulnerable removed", "account", acc)
	return nil
}

// SetInvulnerables replaces all invulnerables. The accounts must be distinct.
func (c *CollatorSelection) SetInvulnerables(accs []xode.AccountID) error {
	return errors.Wrap(c.invulnerables.Set(accs), "collator selection: set invulnerables")
}
