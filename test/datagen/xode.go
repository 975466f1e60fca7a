// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/xode-network/xode-staking/xode"
)

func RandAccountID() (a xode.AccountID) {
	rand.Read(a[:])
	return
}

// RandAuthorityID returns a random authority id of the default key length.
func RandAuthorityID() xode.AuthorityID {
	return RandAuthorityIDN(xode.DefaultKeyLength)
}

func RandAuthorityIDN(n int) xode.AuthorityID {
	b := make([]byte, n)
	rand.Read(b)
	return xode.BytesToAuthorityID(b)
}
