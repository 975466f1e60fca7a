// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	_ json.Marshaler   = AuthorityID{}
	_ json.Unmarshaler = (*AuthorityID)(nil)
	_ rlp.Encoder      = AuthorityID{}
	_ rlp.Decoder      = (*AuthorityID)(nil)
)

// AuthorityID is the public key of a block producer.
// Its length depends on the key scheme of the network, so the raw bytes are kept
// in an immutable string to stay comparable.
type AuthorityID struct {
	raw string
}

// BytesToAuthorityID copies b into a new AuthorityID.
func BytesToAuthorityID(b []byte) AuthorityID {
	return AuthorityID{string(b)}
}

// ParseAuthorityID decodes a hex string, with or without the 0x prefix.
func ParseAuthorityID(s string) (AuthorityID, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(strings.ToLower(s))
	if err != nil {
		return AuthorityID{}, err
	}
	return BytesToAuthorityID(b), nil
}

// MustParseAuthorityID is like ParseAuthorityID but panics on error.
func MustParseAuthorityID(s string) AuthorityID {
	id, err := ParseAuthorityID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Bytes returns a copy of the raw key bytes.
func (a AuthorityID) Bytes() []byte {
	return []byte(a.raw)
}

// Len returns the length of the raw key.
func (a AuthorityID) Len() int {
	return len(a.raw)
}

// IsZero returns whether the id is empty.
func (a AuthorityID) IsZero() bool {
	return len(a.raw) == 0
}

// String implements the stringer interface.
func (a AuthorityID) String() string {
	return "0x" + hex.EncodeToString([]byte(a.raw))
}

// AbbrevString returns abbrev string presentation.
func (a AuthorityID) AbbrevString() string {
	if len(a.raw) <= 8 {
		return a.String()
	}
	return fmt.Sprintf("0x%x…%x", a.raw[:4], a.raw[len(a.raw)-4:])
}

// MarshalJSON implements json.Marshaler.
func (a AuthorityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AuthorityID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return errors.New("empty authority id")
	}
	parsed, err := ParseAuthorityID(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (a AuthorityID) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []byte(a.raw))
}

// DecodeRLP implements rlp.Decoder.
func (a *AuthorityID) DecodeRLP(s *rlp.Stream) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	*a = BytesToAuthorityID(b)
	return nil
}
