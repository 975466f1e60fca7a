// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/xode-network/xode-staking/xode"
)

// well known development keys
const (
	Alice   = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	Bob     = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	Charlie = "0x90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22"
)

// DevSpec returns the spec of the development chain: Alice and Bob are authorities and
// invulnerable seeds, and the treasury is endowed.
func DevSpec() *Spec {
	return &Spec{
		Name:      "xode-dev",
		KeyLength: xode.DefaultKeyLength,
		Staking: StakingSpec{
			BlockInterval: xode.DefaultBlockInterval,
			MaxCandidates: xode.DefaultMaxCandidates,
			Invulnerables: []string{Alice, Bob},
		},
		Aura: AuraSpec{
			MaxAuthorities: xode.DefaultMaxAuthorities,
			Authorities:    []string{Alice, Bob},
		},
		CollatorSelection: CollatorSelectionSpec{
			MaxInvulnerables: xode.DefaultMaxInvulnerables,
		},
		Session: SessionSpec{Period: xode.DefaultSessionPeriod},
		Balances: []Endowment{
			{Account: xode.TreasuryPalletID.IntoAccount().String(), Amount: "1000000000000000000000"},
			{Account: Alice, Amount: "1000000000000000000"},
		},
	}
}
