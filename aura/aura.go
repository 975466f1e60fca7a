// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package aura keeps the set of block production authorities.
package aura

import (
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

// ModuleName namespaces the storage of the module.
const ModuleName = "Aura"

var logger = log.WithContext("pkg", "aura")

// Aura is the authority registry bound to a block's storage.
type Aura struct {
	authorities *storage.BoundedVec[xode.AuthorityID]
}

// New binds the registry to the storage context.
func New(ctx *storage.Context, maxAuthorities uint32) *Aura {
	return &Aura{
		authorities: storage.NewBoundedVec[xode.AuthorityID](ctx, "Authorities", maxAuthorities),
	}
}

// Authorities returns the authorities in insertion order.
func (a *Aura) Authorities() ([]xode.AuthorityID, error) {
	return a.authorities.Get()
}

func (a *Aura) MaxAuthorities() uint32 {
	return a.authorities.Bound()
}

// AddAuthority appends the authority. It fails with storage.ErrDuplicate or storage.ErrFull.
func (a *Aura) AddAuthority(id xode.AuthorityID) error {
	if err := a.authorities.Insert(id); err != nil {
		return errors.Wrap(err, "aura: add authority")
	}
	logger.Debug("authority added", "id", id.AbbrevString())
	return nil
}

// RemoveAuthority removes the authority. It fails with storage.ErrNotFound.
func (a *Aura) RemoveAuthority(id xode.AuthorityID) error {
	if err := a.authorities.Remove(id); err != nil {
		return errors.Wrap(err, "aura: remove authority")
	}
	logger.Debug("authority removed", "id", id.AbbrevString())
	return nil
}

// Initialize sets the genesis authorities. It must be called on an empty registry.
func (a *Aura) Initialize(ids []xode.AuthorityID) error {
	n, err := a.authorities.Len()
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("aura: authorities are already initialized")
	}
	if len(ids) == 0 {
		return nil
	}
	return errors.Wrap(a.authorities.Set(ids), "aura: initialize")
}
