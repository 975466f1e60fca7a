// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/xode-network/xode-staking/eventlog"
	"github.com/xode-network/xode-staking/staking"
)

// RecordedEvent is an event emitted during block execution.
type RecordedEvent struct {
	Extrinsic int           `json:"extrinsic"`
	Name      string        `json:"name"`
	Event     staking.Event `json:"data"`
}

type recorder struct {
	extrinsic int
	events    []RecordedEvent
}

func newRecorder() *recorder {
	return &recorder{extrinsic: eventlog.HookExtrinsic}
}

func (r *recorder) emit(ev staking.Event) {
	r.events = append(r.events, RecordedEvent{
		Extrinsic: r.extrinsic,
		Name:      ev.EventName(),
		Event:     ev,
	})
}

func (r *recorder) len() int {
	return len(r.events)
}

// truncate drops the events recorded after the mark.
func (r *recorder) truncate(mark int) {
	r.events = r.events[:mark]
}
