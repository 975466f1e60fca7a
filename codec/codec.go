// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package codec converts authority identifiers into account identifiers
// and decodes authority identifiers from hex literals.
package codec

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/cache"
	"github.com/xode-network/xode-staking/xode"
)

var (
	// ErrLengthMismatch is returned when the byte form of an identifier does not fit the target.
	ErrLengthMismatch = errors.New("identifier length mismatch")
	// ErrInvalidHex is returned when a literal is not valid hex.
	ErrInvalidHex = errors.New("invalid hex identifier")
)

const accountCacheSize = 1024

// Codec converts identifiers of a network with the given authority key length.
type Codec struct {
	keyLen   int
	accounts *cache.LRU[xode.AuthorityID, xode.AccountID]
}

// New creates a codec. keyLen must be positive.
func New(keyLen int) *Codec {
	accounts, err := cache.NewLRU[xode.AuthorityID, xode.AccountID](accountCacheSize)
	if err != nil {
		panic(err)
	}
	return &Codec{keyLen: keyLen, accounts: accounts}
}

// KeyLength returns the authority key length.
func (c *Codec) KeyLength() int {
	return c.keyLen
}

// ToAccount reinterprets the canonical bytes of the authority id as an account id.
// The conversion is deterministic and fails unless the byte lengths match exactly.
func (c *Codec) ToAccount(id xode.AuthorityID) (xode.AccountID, error) {
	return c.accounts.GetOrLoad(id, func(id xode.AuthorityID) (xode.AccountID, error) {
		if id.Len() != xode.AccountIDLength {
			return xode.AccountID{}, errors.WithMessagef(ErrLengthMismatch,
				"authority %v has %d bytes, account needs %d", id.AbbrevString(), id.Len(), xode.AccountIDLength)
		}
		return xode.BytesToAccountID(id.Bytes()), nil
	})
}

// MustToAccount is like ToAccount but panics on error.
func (c *Codec) MustToAccount(id xode.AuthorityID) xode.AccountID {
	acc, err := c.ToAccount(id)
	if err != nil {
		panic(err)
	}
	return acc
}

// DecodeAuthority decodes a hex literal, with or without the 0x prefix, into an authority id
// of exactly the key length.
func (c *Codec) DecodeAuthority(s string) (xode.AuthorityID, error) {
	lit := s
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		lit = lit[2:]
	}
	b, err := hexutil.Decode("0x" + strings.ToLower(lit))
	if err != nil {
		return xode.AuthorityID{}, errors.WithMessagef(ErrInvalidHex, "%q: %v", s, err)
	}
	if len(b) != c.keyLen {
		return xode.AuthorityID{}, errors.WithMessagef(ErrLengthMismatch,
			"%q has %d bytes, key needs %d", s, len(b), c.keyLen)
	}
	return xode.BytesToAuthorityID(b), nil
}
