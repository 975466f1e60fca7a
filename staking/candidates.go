// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xode-network/xode-staking/xode"
)

// Candidates returns the staked candidates in insertion order.
func (s *Staking) Candidates() ([]xode.AuthorityID, error) {
	return s.candidates.Get()
}

func (s *Staking) MaxCandidates() uint32 {
	return s.candidates.Bound()
}

// AddCandidate appends the candidate.
func (s *Staking) AddCandidate(id xode.AuthorityID) error {
	return s.insertCandidate(id, ErrCandidateAlreadyExist, ErrExceedsMaxCandidates)
}

// RemoveCandidate removes the candidate, preserving the order of the others.
func (s *Staking) RemoveCandidate(id xode.AuthorityID) error {
	return s.removeCandidate(id, ErrCandidateDoesNotExist)
}

// Stake adds a candidate on behalf of a signed origin.
func (s *Staking) Stake(origin xode.Origin, id xode.AuthorityID) error {
	who, err := origin.Signer()
	if err != nil {
		return ErrBadOrigin
	}
	if err := s.insertCandidate(id, ErrStakeDuplicate, ErrStakeFull); err != nil {
		return err
	}
	logger.Debug("staked", "who", who, "candidate", id.AbbrevString())
	return nil
}

// Unstake removes a candidate on behalf of a signed origin.
func (s *Staking) Unstake(origin xode.Origin, id xode.AuthorityID) error {
	who, err := origin.Signer()
	if err != nil {
		return ErrBadOrigin
	}
	if err := s.removeCandidate(id, ErrUnstakeMissing); err != nil {
		return err
	}
	logger.Debug("unstaked", "who", who, "candidate", id.AbbrevString())
	return nil
}

func (s *Staking) insertCandidate(id xode.AuthorityID, duplicate, full *Error) error {
	if err := s.candidates.Insert(id); err != nil {
		return registryError(err, duplicate, full, nil)
	}
	s.emit(CandidateAdded{Candidate: id})
	return nil
}

func (s *Staking) removeCandidate(id xode.AuthorityID, missing *Error) error {
	if err := s.candidates.Remove(id); err != nil {
		return registryError(err, nil, nil, missing)
	}
	s.emit(CandidateRemoved{Candidate: id})
	return nil
}
