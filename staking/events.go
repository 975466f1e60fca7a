// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/xode"
)

// Event is an observational notification. Events carry no control flow.
type Event interface {
	EventName() string
}

// Emitter receives events.
type Emitter func(Event)

type CandidateAdded struct {
	Candidate xode.AuthorityID `json:"candidate"`
}

type CandidateRemoved struct {
	Candidate xode.AuthorityID `json:"candidate"`
}

type AuthorityAdded struct {
	Authority xode.AuthorityID `json:"authority"`
}

type AuthorityRemoved struct {
	Authority xode.AuthorityID `json:"authority"`
}

type CollatorAdded struct {
	Collator xode.AccountID `json:"collator"`
}

type CollatorRemoved struct {
	Collator xode.AccountID `json:"collator"`
}

type AuthoritiesRetrieved struct {
	Authorities []xode.AuthorityID `json:"authorities"`
}

type ValidatorsRetrieved struct {
	Validators []xode.AccountID `json:"validators"`
}

type MaxAuthoritiesRetrieved struct {
	MaxAuthorities uint32 `json:"maxAuthorities"`
}

type TreasuryAccountRetrieved struct {
	Treasury xode.AccountID       `json:"treasury"`
	Data     balances.AccountData `json:"data"`
}

func (CandidateAdded) EventName() string           { return "CandidateAdded" }
func (CandidateRemoved) EventName() string         { return "CandidateRemoved" }
func (AuthorityAdded) EventName() string           { return "AuthorityAdded" }
func (AuthorityRemoved) EventName() string         { return "AuthorityRemoved" }
func (CollatorAdded) EventName() string            { return "CollatorAdded" }
func (CollatorRemoved) EventName() string          { return "CollatorRemoved" }
func (AuthoritiesRetrieved) EventName() string     { return "AuthoritiesRetrieved" }
func (ValidatorsRetrieved) EventName() string      { return "ValidatorsRetrieved" }
func (MaxAuthoritiesRetrieved) EventName() string  { return "MaxAuthoritiesRetrieved" }
func (TreasuryAccountRetrieved) EventName() string { return "TreasuryAccountRetrieved" }
