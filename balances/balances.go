// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balances keeps per account balance data.
package balances

import (
	"encoding/json"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

// ModuleName namespaces the storage of the module.
const ModuleName = "Balances"

// AccountData is the balance data of an account.
type AccountData struct {
	Free     *uint256.Int
	Reserved *uint256.Int
	Frozen   *uint256.Int
	Flags    uint64
}

// IsZero returns whether the account holds nothing.
func (d AccountData) IsZero() bool {
	return d.Free.IsZero() && d.Reserved.IsZero() && d.Frozen.IsZero() && d.Flags == 0
}

type accountJSON struct {
	Free     string `json:"free"`
	Reserved string `json:"reserved"`
	Frozen   string `json:"frozen"`
	Flags    uint64 `json:"flags"`
}

func decString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// MarshalJSON encodes balances as decimal strings.
func (d AccountData) MarshalJSON() ([]byte, error) {
	return json.Marshal(&accountJSON{
		Free:     decString(d.Free),
		Reserved: decString(d.Reserved),
		Frozen:   decString(d.Frozen),
		Flags:    d.Flags,
	})
}

// storedAccount is the storage form of AccountData.
type storedAccount struct {
	Free     *big.Int
	Reserved *big.Int
	Frozen   *big.Int
	Flags    uint64
}

func toUint256(b *big.Int) (*uint256.Int, error) {
	if b == nil {
		return new(uint256.Int), nil
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("balance overflows 256 bits")
	}
	return v, nil
}

// Balances is the account store bound to a block's storage.
type Balances struct {
	accounts *storage.Mapping[xode.AccountID, *storedAccount]
}

func New(ctx *storage.Context) *Balances {
	return &Balances{storage.NewMapping[xode.AccountID, *storedAccount](ctx, "Account")}
}

// Account returns the data of the account. Unknown accounts hold zero balances.
func (b *Balances) Account(id xode.AccountID) (AccountData, error) {
	stored, err := b.accounts.Get(id)
	if err != nil {
		return AccountData{}, err
	}
	if stored == nil {
		stored = &storedAccount{}
	}
	var data AccountData
	if data.Free, err = toUint256(stored.Free); err != nil {
		return AccountData{}, err
	}
	if data.Reserved, err = toUint256(stored.Reserved); err != nil {
		return AccountData{}, err
	}
	if data.Frozen, err = toUint256(stored.Frozen); err != nil {
		return AccountData{}, err
	}
	data.Flags = stored.Flags
	return data, nil
}

// SetAccount stores the data. Zero data removes the account.
func (b *Balances) SetAccount(id xode.AccountID, data AccountData) error {
	if data.IsZero() {
		b.accounts.Remove(id)
		return nil
	}
	return b.accounts.Set(id, &storedAccount{
		Free:     data.Free.ToBig(),
		Reserved: data.Reserved.ToBig(),
		Frozen:   data.Frozen.ToBig(),
		Flags:    data.Flags,
	})
}

// Endow adds amount to the free balance of the account.
func (b *Balances) Endow(id xode.AccountID, amount *uint256.Int) error {
	data, err := b.Account(id)
	if err != nil {
		return err
	}
	free, overflow := new(uint256.Int).AddOverflow(data.Free, amount)
	if overflow {
		return errors.Errorf("balances: endow %v overflows", id)
	}
	data.Free = free
	return b.SetAccount(id, data)
}
