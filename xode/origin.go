// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

import "errors"

// ErrBadOrigin is returned when a call requires a signed origin and none is present.
var ErrBadOrigin = errors.New("bad origin")

// Origin is the dispatch origin of a call.
type Origin struct {
	signer *AccountID
}

// Signed returns an origin signed by the given account.
func Signed(signer AccountID) Origin {
	return Origin{signer: &signer}
}

// None returns the unsigned origin.
func None() Origin {
	return Origin{}
}

// Signer returns the signing account, or ErrBadOrigin if the origin is not signed.
func (o Origin) Signer() (AccountID, error) {
	if o.signer == nil || o.signer.IsZero() {
		return AccountID{}, ErrBadOrigin
	}
	return *o.signer, nil
}

// String implements the stringer interface.
func (o Origin) String() string {
	if o.signer == nil {
		return "none"
	}
	return "signed(" + o.signer.String() + ")"
}
