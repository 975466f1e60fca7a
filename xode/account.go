// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

// AccountIDLength length of account id in bytes.
const AccountIDLength = 32

var (
	_ json.Marshaler   = (*AccountID)(nil)
	_ json.Unmarshaler = (*AccountID)(nil)
)

// AccountID identifies a fund-holding account.
type AccountID [AccountIDLength]byte

// String implements the stringer interface.
func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns byte slice form of the account id.
func (a AccountID) Bytes() []byte {
	return a[:]
}

// IsZero returns if the account id has all zero bytes.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// MarshalJSON implements json.Marshaler.
func (a AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccountID(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAccountID converts a hex string into AccountID.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) == AccountIDLength*2 {
	} else if len(s) == AccountIDLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return AccountID{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return AccountID{}, errors.New("invalid length")
	}

	var a AccountID
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return AccountID{}, err
	}
	return a, nil
}

// MustParseAccountID converts a hex string into AccountID, panic on error.
func MustParseAccountID(s string) AccountID {
	a, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAccountID converts bytes slice into AccountID.
// If b is larger than account id length, b will be cropped (from the left).
// If b is smaller than account id length, b will be extended (from the left).
func BytesToAccountID(b []byte) AccountID {
	var a AccountID
	if len(b) > len(a) {
		b = b[len(b)-AccountIDLength:]
	}
	copy(a[AccountIDLength-len(b):], b)
	return a
}
