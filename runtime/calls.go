// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/xode-network/xode-staking/staking"
	"github.com/xode-network/xode-staking/xode"
)

// Call is a dispatchable call of an extrinsic.
type Call interface {
	CallName() string
	Dispatch(m *Modules, origin xode.Origin) error
}

// Extrinsic is a call submitted with its origin.
type Extrinsic struct {
	Origin xode.Origin
	Call   Call
}

type Stake struct {
	Authority xode.AuthorityID `json:"authority"`
}

type Unstake struct {
	Authority xode.AuthorityID `json:"authority"`
}

type AddAuthority struct {
	Authority xode.AuthorityID `json:"authority"`
}

type DeleteAuthority struct {
	Authority xode.AuthorityID `json:"authority"`
}

type AddCollator struct {
	Collator xode.AccountID `json:"collator"`
}

type DeleteCollator struct {
	Collator xode.AccountID `json:"collator"`
}

type RetrieveAuthorities struct{}

type RetrieveMaxAuthorities struct{}

type RetrieveValidators struct{}

type RetrieveTreasuryAccount struct{}

func (Stake) CallName() string                   { return "stake" }
func (Unstake) CallName() string                 { return "unstake" }
func (AddAuthority) CallName() string            { return "add_authority" }
func (DeleteAuthority) CallName() string         { return "delete_authority" }
func (AddCollator) CallName() string             { return "add_collator" }
func (DeleteCollator) CallName() string          { return "delete_collator" }
func (RetrieveAuthorities) CallName() string     { return "retrieve_authorities" }
func (RetrieveMaxAuthorities) CallName() string  { return "retrieve_max_authorities" }
func (RetrieveValidators) CallName() string      { return "retrieve_validators" }
func (RetrieveTreasuryAccount) CallName() string { return "retrieve_treasury_account" }

func (c Stake) Dispatch(m *Modules, origin xode.Origin) error {
	return m.Staking.Stake(origin, c.Authority)
}

func (c Unstake) Dispatch(m *Modules, origin xode.Origin) error {
	return m.Staking.Unstake(origin, c.Authority)
}

func (c AddAuthority) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	return m.Staking.AddAuthority(c.Authority)
}

func (c DeleteAuthority) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	return m.Staking.DeleteAuthority(c.Authority)
}

func (c AddCollator) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	return m.Staking.AddCollator(c.Collator)
}

func (c DeleteCollator) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	return m.Staking.DeleteCollator(c.Collator)
}

func (RetrieveAuthorities) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	_, err := m.Staking.RetrieveAuthorities()
	return err
}

func (RetrieveMaxAuthorities) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	m.Staking.RetrieveMaxAuthorities()
	return nil
}

func (RetrieveValidators) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	_, err := m.Staking.RetrieveValidators()
	return err
}

func (RetrieveTreasuryAccount) Dispatch(m *Modules, origin xode.Origin) error {
	if err := ensureSigned(origin); err != nil {
		return err
	}
	_, _, err := m.Staking.RetrieveTreasuryAccount()
	return err
}

func ensureSigned(origin xode.Origin) error {
	if _, err := origin.Signer(); err != nil {
		return staking.ErrBadOrigin
	}
	return nil
}
