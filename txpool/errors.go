// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import "github.com/pkg/errors"

var (
	errKnownExtrinsic = errors.New("known extrinsic")
	errPoolFull       = errors.New("pool is full")
	errAccountQuota   = errors.New("account quota exceeded")
	errUnsigned       = errors.New("unsigned extrinsic")
)

func IsErrKnownExtrinsic(err error) bool {
	return errors.Is(err, errKnownExtrinsic)
}

func IsErrPoolFull(err error) bool {
	return errors.Is(err, errPoolFull) || errors.Is(err, errAccountQuota)
}

func IsErrUnsigned(err error) bool {
	return errors.Is(err, errUnsigned)
}
