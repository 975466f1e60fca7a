// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xode-network/xode-staking/xode"
)

// MergeSkip is a candidate merge could not promote.
type MergeSkip struct {
	Candidate xode.AuthorityID
	Err       error
}

// MergeResult is the outcome of a merge.
type MergeResult struct {
	Added   []xode.AccountID
	Skipped []MergeSkip
}

// MergeCandidates promotes every candidate, in order, into the collator registry.
// Each promotion is attempted independently: duplicate, capacity and conversion
// failures are collected in the result and never abort the loop. Storage failures
// are returned.
// Collators whose candidate was removed are not evicted.
func (s *Staking) MergeCandidates() (*MergeResult, error) {
	candidates, err := s.candidates.Get()
	if err != nil {
		return nil, err
	}

	res := &MergeResult{}
	for _, candidate := range candidates {
		acc, err := s.codec.ToAccount(candidate)
		if err != nil {
			logger.Error("failed to convert candidate", "candidate", candidate.AbbrevString(), "err", err)
			res.Skipped = append(res.Skipped, MergeSkip{candidate, codecError(err)})
			continue
		}
		if err := s.AddCollator(acc); err != nil {
			if _, ok := err.(*Error); !ok {
				return nil, err
			}
			res.Skipped = append(res.Skipped, MergeSkip{candidate, err})
			continue
		}
		res.Added = append(res.Added, acc)
	}

	metricMerges().Add(1)
	metricMergeOutcome().AddWithLabel(int64(len(res.Added)), map[string]string{"outcome": "added"})
	metricMergeOutcome().AddWithLabel(int64(len(res.Skipped)), map[string]string{"outcome": "skipped"})
	logger.Debug("candidates merged", "candidates", len(candidates), "added", len(res.Added), "skipped", len(res.Skipped))
	return res, nil
}
