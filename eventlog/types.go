// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventlog

import "encoding/json"

// HookExtrinsic is the extrinsic index of events emitted by block hooks.
const HookExtrinsic = -1

// Event is a module event stored in the log.
type Event struct {
	BlockNumber uint32          `json:"blockNumber"`
	Index       uint32          `json:"index"`
	Extrinsic   int             `json:"extrinsic"`
	Name        string          `json:"name"`
	Data        json.RawMessage `json:"data"`
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Nil fields match everything.
type Filter struct {
	Range   *Range
	Names   []string
	Order   Order
	Options *Options
}
