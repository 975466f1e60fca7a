// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/xode"
)

// RetrieveAuthorities returns the block production authorities.
func (s *Staking) RetrieveAuthorities() ([]xode.AuthorityID, error) {
	authorities, err := s.modules.Authorities.Authorities()
	if err != nil {
		return nil, err
	}
	s.emit(AuthoritiesRetrieved{Authorities: authorities})
	return authorities, nil
}

// RetrieveMaxAuthorities returns the capacity of the authority registry.
func (s *Staking) RetrieveMaxAuthorities() uint32 {
	max := s.modules.Authorities.MaxAuthorities()
	s.emit(MaxAuthoritiesRetrieved{MaxAuthorities: max})
	return max
}

// RetrieveValidators returns the accounts of the block production authorities.
func (s *Staking) RetrieveValidators() ([]xode.AccountID, error) {
	authorities, err := s.modules.Authorities.Authorities()
	if err != nil {
		return nil, err
	}
	validators := make([]xode.AccountID, 0, len(authorities))
	for _, authority := range authorities {
		acc, err := s.codec.ToAccount(authority)
		if err != nil {
			return nil, codecError(err)
		}
		validators = append(validators, acc)
	}
	s.emit(ValidatorsRetrieved{Validators: validators})
	return validators, nil
}

// RetrieveTreasuryAccount returns the treasury account and its balance data.
func (s *Staking) RetrieveTreasuryAccount() (xode.AccountID, balances.AccountData, error) {
	treasury := xode.TreasuryPalletID.IntoAccount()
	data, err := s.modules.Accounts.Account(treasury)
	if err != nil {
		return xode.AccountID{}, balances.AccountData{}, err
	}
	s.emit(TreasuryAccountRetrieved{Treasury: treasury, Data: data})
	return treasury, data, nil
}

// AddAuthority requests the authority registry to add the authority.
func (s *Staking) AddAuthority(id xode.AuthorityID) error {
	if err := s.modules.Authorities.AddAuthority(id); err != nil {
		return registryError(err, ErrAuthorityAlreadyExist, ErrExceedsMaxAuthorities, nil)
	}
	s.emit(AuthorityAdded{Authority: id})
	return nil
}

// DeleteAuthority requests the authority registry to remove the authority.
func (s *Staking) DeleteAuthority(id xode.AuthorityID) error {
	if err := s.modules.Authorities.RemoveAuthority(id); err != nil {
		return registryError(err, nil, nil, ErrAuthorityDoesNotExist)
	}
	s.emit(AuthorityRemoved{Authority: id})
	return nil
}

// AddCollator requests the collator registry to add the account.
func (s *Staking) AddCollator(acc xode.AccountID) error {
	if err := s.modules.Collators.AddInvulnerable(acc); err != nil {
		return registryError(err, ErrCollatorAlreadyExist, ErrExceedsMaxCollators, nil)
	}
	s.emit(CollatorAdded{Collator: acc})
	return nil
}

// DeleteCollator requests the collator registry to remove the account.
func (s *Staking) DeleteCollator(acc xode.AccountID) error {
	if err := s.modules.Collators.RemoveInvulnerable(acc); err != nil {
		return registryError(err, nil, nil, ErrCollatorDoesNotExist)
	}
	s.emit(CollatorRemoved{Collator: acc})
	return nil
}
