// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node produces blocks from the pooled extrinsics, at a fixed block time
// or on demand.
package node

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"golang.org/x/sync/errgroup"

	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/txpool"
)

var logger = log.WithContext("pkg", "node")

type Options struct {
	// BlockTime is the interval of block production.
	BlockTime time.Duration
	// OnDemand produces a block as soon as an extrinsic is pooled.
	OnDemand bool
	// MaxExtrinsics limits the extrinsics of a block.
	MaxExtrinsics int
	// NTPCheck enables the clock offset check.
	NTPCheck  bool
	NTPServer string
}

// Status is the node status.
type Status struct {
	Best        runtime.BlockSummary `json:"best"`
	Pending     int                  `json:"pending"`
	ClockOffset time.Duration        `json:"clockOffset"`
	Producing   bool                 `json:"producing"`
}

// Node is the standalone block producer.
type Node struct {
	rt      *runtime.Runtime
	pool    *txpool.TxPool
	options Options

	blockFeed event.Feed
	scope     event.SubscriptionScope

	mu          sync.Mutex
	clockOffset time.Duration
	producing   bool

	queryOffset func(server string) (time.Duration, error)
}

func New(rt *runtime.Runtime, pool *txpool.TxPool, options Options) *Node {
	if options.MaxExtrinsics <= 0 {
		options.MaxExtrinsics = 1000
	}
	if options.NTPServer == "" {
		options.NTPServer = defaultNTPServer
	}
	return &Node{
		rt:          rt,
		pool:        pool,
		options:     options,
		queryOffset: queryClockOffset,
	}
}

// Run produces blocks until the context is done.
func (n *Node) Run(ctx context.Context) error {
	defer n.scope.Close()
	g, ctx := errgroup.WithContext(ctx)

	logger.Info("prepared to produce blocks", "blockTime", n.options.BlockTime, "onDemand", n.options.OnDemand)
	if n.options.OnDemand {
		ch := make(chan *txpool.Event, 16)
		sub := n.pool.SubscribeEvent(ch)
		g.Go(func() error {
			defer sub.Unsubscribe()
			n.onDemandLoop(ctx, ch, sub)
			return nil
		})
	} else {
		g.Go(func() error {
			n.intervalLoop(ctx)
			return nil
		})
	}
	if n.options.NTPCheck {
		g.Go(func() error {
			n.housekeeping(ctx)
			return nil
		})
	}

	n.setProducing(true)
	defer n.setProducing(false)
	return g.Wait()
}

func (n *Node) intervalLoop(ctx context.Context) {
	logger.Debug("enter interval loop")
	defer logger.Debug("leave interval loop")

	ticker := time.NewTicker(n.options.BlockTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval block production......")
			return
		case <-ticker.C:
			n.produce()
		}
	}
}

func (n *Node) onDemandLoop(ctx context.Context, ch <-chan *txpool.Event, sub event.Subscription) {
	logger.Debug("enter on demand loop")
	defer logger.Debug("leave on demand loop")

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping on demand block production......")
			return
		case <-sub.Err():
			return
		case <-ch:
			n.produce()
		}
	}
}

func (n *Node) produce() {
	if _, err := n.Produce(); err != nil {
		logger.Error("failed to produce block", "err", err)
	}
}

// Produce executes a block with the pooled extrinsics on top of the best block.
// Extrinsics of a discarded block are dropped.
func (n *Node) Produce() (*runtime.Receipt, error) {
	xts := n.pool.Drain(n.options.MaxExtrinsics)
	receipt, err := n.rt.ExecuteBlock(n.rt.Best().Number+1, xts)
	if err != nil {
		if len(xts) > 0 {
			logger.Warn("extrinsics dropped", "count", len(xts))
		}
		return nil, err
	}

	failed := 0
	for _, r := range receipt.Extrinsics {
		if r.Error != "" {
			failed++
		}
	}
	logger.Info("📦 new block produced",
		"number", receipt.Number,
		"changes", receipt.ChangesHash.AbbrevString(),
		"extrinsics", len(xts),
		"failed", failed,
		"events", len(receipt.Events),
	)
	n.blockFeed.Send(receipt)
	return receipt, nil
}

// SubscribeBlock subscribes to produced blocks.
func (n *Node) SubscribeBlock(ch chan *runtime.Receipt) event.Subscription {
	return n.scope.Track(n.blockFeed.Subscribe(ch))
}

func (n *Node) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Status{
		Best:        n.rt.Best(),
		Pending:     n.pool.Len(),
		ClockOffset: n.clockOffset,
		Producing:   n.producing,
	}
}

func (n *Node) setProducing(b bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.producing = b
}
