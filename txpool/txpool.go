// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package txpool keeps the extrinsics waiting to be included in a block.
package txpool

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/xode"
)

var logger = log.WithContext("pkg", "txpool")

// Options options for the pool.
type Options struct {
	Limit           int
	LimitPerAccount int
	MaxLifetime     time.Duration
}

// Entry is a pooled extrinsic.
type Entry struct {
	ID        xode.Hash         `json:"id"`
	Signer    xode.AccountID    `json:"signer"`
	Call      string            `json:"call"`
	Extrinsic runtime.Extrinsic `json:"-"`
	Timestamp int64             `json:"timestamp"`
}

// Event is posted when an extrinsic is pooled.
type Event struct {
	Entry *Entry
}

// TxPool is a bounded fifo of extrinsics.
type TxPool struct {
	options Options

	mu         sync.Mutex
	pending    []*Entry
	known      map[xode.Hash]struct{}
	perAccount map[xode.AccountID]int

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates a pool. Close is required to be called at end.
func New(options Options) *TxPool {
	return &TxPool{
		options:    options,
		known:      make(map[xode.Hash]struct{}),
		perAccount: make(map[xode.AccountID]int),
	}
}

// ExtrinsicID identifies an extrinsic by its signer and call.
func ExtrinsicID(xt runtime.Extrinsic) (xode.Hash, error) {
	signer, err := xt.Origin.Signer()
	if err != nil {
		return xode.Hash{}, errUnsigned
	}
	data, err := json.Marshal(xt.Call)
	if err != nil {
		return xode.Hash{}, errors.Wrap(err, "encode call")
	}
	return xode.Blake2b(signer.Bytes(), []byte(xt.Call.CallName()), data), nil
}

// Add pools the extrinsic. Unsigned extrinsics are rejected.
func (p *TxPool) Add(xt runtime.Extrinsic) (*Entry, error) {
	id, err := ExtrinsicID(xt)
	if err != nil {
		return nil, err
	}
	signer, _ := xt.Origin.Signer()

	entry, err := func() (*Entry, error) {
		p.mu.Lock()
		defer p.mu.Unlock()

		p.expire(time.Now())
		if _, ok := p.known[id]; ok {
			return nil, errKnownExtrinsic
		}
		if p.options.Limit > 0 && len(p.pending) >= p.options.Limit {
			return nil, errPoolFull
		}
		if p.options.LimitPerAccount > 0 && p.perAccount[signer] >= p.options.LimitPerAccount {
			return nil, errAccountQuota
		}
		entry := &Entry{
			ID:        id,
			Signer:    signer,
			Call:      xt.Call.CallName(),
			Extrinsic: xt,
			Timestamp: time.Now().Unix(),
		}
		p.pending = append(p.pending, entry)
		p.known[id] = struct{}{}
		p.perAccount[signer]++
		p.updateGauge()
		return entry, nil
	}()
	if err != nil {
		return nil, err
	}

	logger.Debug("extrinsic pooled", "id", id.AbbrevString(), "call", entry.Call, "signer", signer)
	p.feed.Send(&Event{entry})
	return entry, nil
}

// Drain removes and returns at most max extrinsics, oldest first. Expired extrinsics are dropped.
func (p *TxPool) Drain(max int) []runtime.Extrinsic {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.expire(time.Now())
	n := min(max, len(p.pending))
	xts := make([]runtime.Extrinsic, 0, n)
	for _, entry := range p.pending[:n] {
		xts = append(xts, entry.Extrinsic)
		p.forget(entry)
	}
	p.pending = p.pending[n:]
	p.updateGauge()
	return xts
}

// Dump returns the pooled entries.
func (p *TxPool) Dump() []*Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Entry(nil), p.pending...)
}

func (p *TxPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// SubscribeEvent subscribes to pooled extrinsics.
func (p *TxPool) SubscribeEvent(ch chan *Event) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(ch))
}

// Close closes the pool and its subscriptions.
func (p *TxPool) Close() {
	p.scope.Close()
	logger.Debug("closed")
}

func (p *TxPool) forget(entry *Entry) {
	delete(p.known, entry.ID)
	if p.perAccount[entry.Signer]--; p.perAccount[entry.Signer] <= 0 {
		delete(p.perAccount, entry.Signer)
	}
}

func (p *TxPool) expire(now time.Time) {
	if p.options.MaxLifetime <= 0 {
		return
	}
	deadline := now.Add(-p.options.MaxLifetime).Unix()
	kept := p.pending[:0]
	for _, entry := range p.pending {
		if entry.Timestamp < deadline {
			p.forget(entry)
			metricExpired().Add(1)
			continue
		}
		kept = append(kept, entry)
	}
	p.pending = kept
}

func (p *TxPool) updateGauge() {
	metricPoolGauge().Set(int64(len(p.pending)))
}
