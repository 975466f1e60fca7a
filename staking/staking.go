// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking keeps the staked candidates and reconciles them into the collator
// registry, periodically from the block hook and at every session boundary.
package staking

import (
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/codec"
	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

// ModuleName namespaces the storage of the module.
const ModuleName = "Staking"

var logger = log.WithContext("pkg", "staking")

// AuthorityRegistry is the mutation capability of the block production authorities.
// Mutations are fallible requests, the registry may be written by others.
type AuthorityRegistry interface {
	Authorities() ([]xode.AuthorityID, error)
	MaxAuthorities() uint32
	AddAuthority(id xode.AuthorityID) error
	RemoveAuthority(id xode.AuthorityID) error
}

// CollatorRegistry is the mutation capability of the invulnerable collators.
type CollatorRegistry interface {
	Invulnerables() ([]xode.AccountID, error)
	MaxInvulnerables() uint32
	AddInvulnerable(acc xode.AccountID) error
	RemoveInvulnerable(acc xode.AccountID) error
}

// AccountReader looks up account balance data.
type AccountReader interface {
	Account(id xode.AccountID) (balances.AccountData, error)
}

// Modules are the collaborators of the staking module.
type Modules struct {
	Authorities AuthorityRegistry
	Collators   CollatorRegistry
	Accounts    AccountReader
}

// Staking is the staking module bound to a block's storage.
type Staking struct {
	cfg        Config
	codec      *codec.Codec
	modules    Modules
	meter      *storage.Meter
	emit       Emitter
	candidates *storage.BoundedVec[xode.AuthorityID]
	nextBlock  *storage.Value[uint32]
}

// New binds the module to the storage context. A nil emitter drops events.
func New(ctx *storage.Context, cfg Config, cdc *codec.Codec, modules Modules, emit Emitter) *Staking {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Staking{
		cfg:        cfg,
		codec:      cdc,
		modules:    modules,
		meter:      ctx.Meter(),
		emit:       emit,
		candidates: storage.NewBoundedVec[xode.AuthorityID](ctx, "Candidates", cfg.MaxCandidates),
		nextBlock:  storage.NewValue[uint32](ctx, "NextBlockNumber"),
	}
}

// Config returns the module config.
func (s *Staking) Config() Config {
	return s.cfg
}
