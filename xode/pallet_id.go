// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

// PalletID identifies a module that owns a derived account.
type PalletID [8]byte

// TreasuryPalletID owns the treasury account.
var TreasuryPalletID = PalletID{'p', 'y', '/', 't', 'r', 's', 'r', 'y'}

var modulePrefix = []byte("modl")

// IntoAccount derives the account owned by the module.
// The account is "modl" followed by the id, zero padded.
func (p PalletID) IntoAccount() AccountID {
	var a AccountID
	n := copy(a[:], modulePrefix)
	copy(a[n:], p[:])
	return a
}

// String implements the stringer interface.
func (p PalletID) String() string {
	return string(p[:])
}
