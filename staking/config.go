// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/xode"
)

// Config is the static configuration of the staking module.
type Config struct {
	// BlockInterval is the number of blocks between two merges.
	BlockInterval uint32
	// MaxCandidates bounds the candidate registry.
	MaxCandidates uint32
	// Invulnerables are hex encoded authority ids seeded into the candidates at the first block.
	Invulnerables []string
	// StrictBootstrap fails the first block on a malformed seed, instead of skipping it.
	StrictBootstrap bool
}

// DefaultConfig returns the config with network defaults and no seeds.
func DefaultConfig() Config {
	return Config{
		BlockInterval: xode.DefaultBlockInterval,
		MaxCandidates: xode.DefaultMaxCandidates,
	}
}

func (c *Config) Validate() error {
	if c.BlockInterval == 0 {
		return errors.New("staking: block interval must be positive")
	}
	if c.MaxCandidates == 0 {
		return errors.New("staking: max candidates must be positive")
	}
	return nil
}
