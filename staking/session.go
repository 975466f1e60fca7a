// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xode-network/xode-staking/xode"
)

// NewSession merges the candidates and returns the collators as the validator set of
// the upcoming session. The set is always returned, never "keep the previous one".
func (s *Staking) NewSession(index uint32) ([]xode.AccountID, bool, error) {
	if _, err := s.MergeCandidates(); err != nil {
		return nil, false, err
	}
	validators, err := s.modules.Collators.Invulnerables()
	if err != nil {
		return nil, false, err
	}
	logger.Debug("new session", "index", index, "validators", len(validators))
	return validators, true, nil
}

// StartSession is called when a session starts.
func (s *Staking) StartSession(uint32) {}

// EndSession is called when a session ends.
func (s *Staking) EndSession(uint32) {}
