// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

// Constants of the network.
const (
	// DefaultKeyLength is the length of sr25519/ed25519 authority keys.
	DefaultKeyLength = 32

	DefaultBlockInterval    uint32 = 10
	DefaultMaxCandidates    uint32 = 100
	DefaultMaxAuthorities   uint32 = 100
	DefaultMaxInvulnerables uint32 = 100
	DefaultSessionPeriod    uint32 = 600

	// BlockTime is the default target block time in seconds.
	BlockTime uint64 = 6
)
