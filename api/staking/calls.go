// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/api/utils"
	"github.com/xode-network/xode-staking/codec"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/staking"
	"github.com/xode-network/xode-staking/txpool"
	"github.com/xode-network/xode-staking/xode"
)

// ExtrinsicRequest is a call submitted by a signer.
type ExtrinsicRequest struct {
	Signer xode.AccountID  `json:"signer"`
	Call   string          `json:"call"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// SubmitResult is the pooled extrinsic and the events it emits on the best state.
type SubmitResult struct {
	ID     xode.Hash               `json:"id"`
	Events []runtime.RecordedEvent `json:"events"`
}

type authorityArgs struct {
	Authority string `json:"authority"`
}

type collatorArgs struct {
	Collator xode.AccountID `json:"collator"`
}

func decodeCall(cdc *codec.Codec, name string, args json.RawMessage) (runtime.Call, error) {
	authority := func() (xode.AuthorityID, error) {
		var a authorityArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return xode.AuthorityID{}, err
		}
		return cdc.DecodeAuthority(a.Authority)
	}
	collator := func() (xode.AccountID, error) {
		var a collatorArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return xode.AccountID{}, err
		}
		return a.Collator, nil
	}

	switch name {
	case runtime.Stake{}.CallName():
		id, err := authority()
		return runtime.Stake{Authority: id}, err
	case runtime.Unstake{}.CallName():
		id, err := authority()
		return runtime.Unstake{Authority: id}, err
	case runtime.AddAuthority{}.CallName():
		id, err := authority()
		return runtime.AddAuthority{Authority: id}, err
	case runtime.DeleteAuthority{}.CallName():
		id, err := authority()
		return runtime.DeleteAuthority{Authority: id}, err
	case runtime.AddCollator{}.CallName():
		acc, err := collator()
		return runtime.AddCollator{Collator: acc}, err
	case runtime.DeleteCollator{}.CallName():
		acc, err := collator()
		return runtime.DeleteCollator{Collator: acc}, err
	case runtime.RetrieveAuthorities{}.CallName():
		return runtime.RetrieveAuthorities{}, nil
	case runtime.RetrieveMaxAuthorities{}.CallName():
		return runtime.RetrieveMaxAuthorities{}, nil
	case runtime.RetrieveValidators{}.CallName():
		return runtime.RetrieveValidators{}, nil
	case runtime.RetrieveTreasuryAccount{}.CallName():
		return runtime.RetrieveTreasuryAccount{}, nil
	}
	return nil, errors.Errorf("unknown call %q", name)
}

// rejection converts a dispatch or pool error into an http error.
func rejection(err error) error {
	var stakingErr *staking.Error
	switch {
	case errors.As(err, &stakingErr):
		switch stakingErr.Kind {
		case staking.KindDuplicateEntry:
			return utils.Conflict(err)
		case staking.KindCapacityExceeded:
			return utils.Forbidden(err)
		case staking.KindNotFound:
			return utils.NotFound(err)
		default:
			return utils.BadRequest(err)
		}
	case errors.Is(err, codec.ErrInvalidHex), errors.Is(err, codec.ErrLengthMismatch):
		return utils.BadRequest(err)
	case txpool.IsErrKnownExtrinsic(err):
		return utils.Conflict(err)
	case txpool.IsErrPoolFull(err):
		return utils.HTTPError(err, http.StatusServiceUnavailable)
	case txpool.IsErrUnsigned(err):
		return utils.BadRequest(err)
	}
	return err
}
