// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/xode"
)

// BootstrapSkip is a seed bootstrap did not add.
type BootstrapSkip struct {
	Seed string
	Err  error
}

// BootstrapResult is the outcome of seeding the candidates.
type BootstrapResult struct {
	Added   []xode.AuthorityID
	Skipped []BootstrapSkip
}

// NextBlockNumber returns the block of the next merge. It's absent before the first block.
func (s *Staking) NextBlockNumber() (uint32, bool, error) {
	return s.nextBlock.Get()
}

// OnInitialize is the per block hook. The first call seeds the candidates with
// the invulnerables and schedules the first merge. Later calls merge when the block
// equals the scheduled one, and schedule the next merge.
// It returns the weight consumed.
func (s *Staking) OnInitialize(block uint32) (xode.Weight, error) {
	var reads, writes uint64
	if s.meter != nil {
		reads, writes = s.meter.Reads(), s.meter.Writes()
	}
	consumed := func() xode.Weight {
		if s.meter == nil {
			return xode.RocksDBWeight.Reads(1)
		}
		return xode.RocksDBWeight.ReadsWrites(s.meter.Reads()-reads, s.meter.Writes()-writes)
	}

	next, ok, err := s.nextBlock.Get()
	if err != nil {
		return consumed(), err
	}

	switch {
	case !ok:
		res, err := s.Bootstrap()
		if err != nil {
			return consumed(), err
		}
		logger.Info("invulnerables bootstrapped", "block", block, "added", len(res.Added), "skipped", len(res.Skipped))
	case next == block:
		if _, err := s.MergeCandidates(); err != nil {
			return consumed(), err
		}
	default:
		// the trigger compares for equality, a skipped trigger block is never caught up
		if block == next+1 {
			logger.Warn("merge trigger missed", "trigger", next, "block", block)
		}
		return consumed(), nil
	}

	if err := s.reschedule(block); err != nil {
		return consumed(), err
	}
	return consumed(), nil
}

func (s *Staking) reschedule(block uint32) error {
	if block > math.MaxUint32-s.cfg.BlockInterval {
		return errors.Errorf("staking: next block number overflows, block %d interval %d", block, s.cfg.BlockInterval)
	}
	next := block + s.cfg.BlockInterval
	if err := s.nextBlock.Put(next); err != nil {
		return err
	}
	logger.Debug("merge scheduled", "block", next)
	return nil
}

// Bootstrap decodes the invulnerable seeds and adds them as candidates, in order.
// Rejected seeds are collected and skipped. Malformed seeds are skipped too, unless
// the bootstrap is strict.
func (s *Staking) Bootstrap() (*BootstrapResult, error) {
	res := &BootstrapResult{}
	skip := func(seed string, err error, outcome string) {
		res.Skipped = append(res.Skipped, BootstrapSkip{seed, err})
		metricBootstrapSeeds().AddWithLabel(1, map[string]string{"outcome": outcome})
	}

	for _, seed := range s.cfg.Invulnerables {
		id, err := s.codec.DecodeAuthority(seed)
		if err != nil {
			err = codecError(err)
			if s.cfg.StrictBootstrap {
				return nil, errors.WithMessagef(err, "staking: bootstrap seed %q", seed)
			}
			logger.Warn("malformed invulnerable seed skipped", "seed", seed, "err", err)
			skip(seed, err, "malformed")
			continue
		}
		if err := s.AddCandidate(id); err != nil {
			if _, ok := err.(*Error); !ok {
				return nil, err
			}
			skip(seed, err, "rejected")
			continue
		}
		metricBootstrapSeeds().AddWithLabel(1, map[string]string{"outcome": "added"})
		res.Added = append(res.Added, id)
	}
	return res, nil
}
