// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime builds the genesis state and executes blocks: the block hooks
// followed by the extrinsics, each in its own checkpoint.
package runtime

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/aura"
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/codec"
	"github.com/xode-network/xode-staking/collatorselection"
	"github.com/xode-network/xode-staking/eventlog"
	"github.com/xode-network/xode-staking/genesis"
	"github.com/xode-network/xode-staking/kv"
	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/session"
	"github.com/xode-network/xode-staking/staking"
	"github.com/xode-network/xode-staking/state"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

var logger = log.WithContext("pkg", "runtime")

const metaBucket = kv.Bucket("meta/")

var (
	bestBlockKey = []byte("best")
	chainIDKey   = []byte("chain")
)

// ErrBlockNumber is returned when a block does not extend the best block.
var ErrBlockNumber = errors.New("block number does not extend best block")

// Modules are the modules bound to a block's state.
type Modules struct {
	Aura      *aura.Aura
	Collators *collatorselection.CollatorSelection
	Balances  *balances.Balances
	Staking   *staking.Staking
	Session   *session.Session
}

// BlockSummary is the committed summary of a block.
// ChangesHash is the digest of the state changes made by this block alone, it does not
// commit to the whole state.
type BlockSummary struct {
	Number      uint32      `json:"number"`
	ChangesHash xode.Hash   `json:"changesHash"`
	Weight      xode.Weight `json:"weight"`
	Timestamp   uint64      `json:"timestamp"`
}

// Runtime executes blocks over a kv store. Blocks are executed one at a time.
type Runtime struct {
	mu      sync.RWMutex
	spec    *genesis.Spec
	codec   *codec.Codec
	store   kv.Store
	meta    kv.GetPutter
	creator *state.Creator
	events  *eventlog.DB
	best    BlockSummary
}

// New opens the runtime over the store, building the genesis state if the store is empty.
func New(store kv.Store, events *eventlog.DB, spec *genesis.Spec, cacheSizeMB int) (*Runtime, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	chainID, err := spec.ID()
	if err != nil {
		return nil, err
	}
	r := &Runtime{
		spec:    spec,
		codec:   spec.Codec(),
		store:   store,
		meta:    metaBucket.NewGetPutter(store),
		creator: state.NewCreator(store, cacheSizeMB),
		events:  events,
	}

	storedID, err := r.meta.Get(chainIDKey)
	if err != nil {
		if !r.meta.IsNotFound(err) {
			return nil, errors.Wrap(err, "read chain id")
		}
		if err := r.buildGenesis(chainID); err != nil {
			return nil, errors.WithMessage(err, "build genesis")
		}
		return r, nil
	}
	if xode.BytesToHash(storedID) != xode.Hash(chainID) {
		return nil, errors.Errorf("store belongs to another chain %s", xode.BytesToHash(storedID))
	}

	raw, err := r.meta.Get(bestBlockKey)
	if err != nil {
		return nil, errors.Wrap(err, "read best block")
	}
	if err := rlp.DecodeBytes(raw, &r.best); err != nil {
		return nil, errors.Wrap(err, "decode best block")
	}
	logger.Info("runtime loaded", "best", r.best.Number, "changes", r.best.ChangesHash.AbbrevString())
	return r, nil
}

// bind binds the modules to the state. Events are delivered to emit.
func (r *Runtime) bind(st *state.State, meter *storage.Meter, emit staking.Emitter) *Modules {
	m := &Modules{
		Aura:      aura.New(storage.NewContext(aura.ModuleName, st, meter), r.spec.Aura.MaxAuthorities),
		Collators: collatorselection.New(storage.NewContext(collatorselection.ModuleName, st, meter), r.spec.CollatorSelection.MaxInvulnerables),
		Balances:  balances.New(storage.NewContext(balances.ModuleName, st, meter)),
	}
	m.Staking = staking.New(
		storage.NewContext(staking.ModuleName, st, meter),
		r.spec.StakingConfig(),
		r.codec,
		staking.Modules{
			Authorities: m.Aura,
			Collators:   m.Collators,
			Accounts:    m.Balances,
		},
		emit,
	)
	m.Session = session.New(storage.NewContext(session.ModuleName, st, meter), r.spec.SessionConfig(), m.Staking)
	return m
}

func (r *Runtime) buildGenesis(chainID [32]byte) error {
	st := r.creator.NewState()
	rec := newRecorder()
	m := r.bind(st, nil, rec.emit)

	authorities, err := r.spec.Authorities()
	if err != nil {
		return err
	}
	if err := m.Aura.Initialize(authorities); err != nil {
		return err
	}
	invulnerables, err := r.spec.Invulnerables()
	if err != nil {
		return err
	}
	if err := m.Collators.SetInvulnerables(invulnerables); err != nil {
		return err
	}
	endowments, err := r.spec.Endowments()
	if err != nil {
		return err
	}
	for _, e := range endowments {
		if err := m.Balances.Endow(e.Account, e.Amount); err != nil {
			return err
		}
	}
	if err := m.Session.InitGenesis(); err != nil {
		return err
	}

	stage := st.Stage()
	best := BlockSummary{
		Number:      0,
		ChangesHash: xode.Hash(stage.Hash()),
	}
	if err := r.commit(stage, &best, rec, func(p kv.Putter) error {
		return p.Put(chainIDKey, chainID[:])
	}); err != nil {
		return err
	}
	logger.Info("genesis built", "chain", r.spec.Name, "changes", best.ChangesHash.AbbrevString(),
		"authorities", len(authorities), "invulnerables", len(invulnerables))
	return nil
}

// Best returns the summary of the best block.
func (r *Runtime) Best() BlockSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.best
}

func (r *Runtime) Spec() *genesis.Spec {
	return r.spec
}

func (r *Runtime) Codec() *codec.Codec {
	return r.codec
}

// Events returns the event log, which may be nil.
func (r *Runtime) Events() *eventlog.DB {
	return r.events
}

// ExtrinsicResult is the outcome of an extrinsic.
type ExtrinsicResult struct {
	Call  string `json:"call"`
	Error string `json:"error,omitempty"`
}

// Receipt is the outcome of an executed block.
type Receipt struct {
	BlockSummary
	HookWeight xode.Weight       `json:"hookWeight"`
	Extrinsics []ExtrinsicResult `json:"extrinsics"`
	Events     []RecordedEvent   `json:"events"`
}

// ExecuteBlock executes and commits the block following the best block.
// A hook failure discards the block. A failed extrinsic is reverted alone.
func (r *Runtime) ExecuteBlock(number uint32, xts []Extrinsic) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if number != r.best.Number+1 {
		return nil, errors.WithMessagef(ErrBlockNumber, "got %d, best %d", number, r.best.Number)
	}
	startTime := time.Now()

	st := r.creator.NewState()
	meter := storage.NewMeter()
	rec := newRecorder()
	m := r.bind(st, meter, rec.emit)

	rotated, err := m.Session.OnInitialize(number)
	if err != nil {
		return nil, errors.WithMessagef(err, "block %d: session", number)
	}
	if _, err := m.Staking.OnInitialize(number); err != nil {
		return nil, errors.WithMessagef(err, "block %d: staking", number)
	}
	hookWeight := meter.Consumed(xode.RocksDBWeight)
	logger.Debug("hooks executed", "block", number, "rotated", rotated, "weight", meter.Breakdown(xode.RocksDBWeight))

	results := make([]ExtrinsicResult, 0, len(xts))
	for i, xt := range xts {
		rec.extrinsic = i
		checkpoint := st.NewCheckpoint()
		mark := rec.len()
		result := ExtrinsicResult{Call: xt.Call.CallName()}
		if err := xt.Call.Dispatch(m, xt.Origin); err != nil {
			if isFatal(err) {
				return nil, errors.WithMessagef(err, "block %d: extrinsic %d", number, i)
			}
			st.RevertTo(checkpoint)
			rec.truncate(mark)
			result.Error = err.Error()
			metricExtrinsics().AddWithLabel(1, map[string]string{"call": result.Call, "outcome": "failed"})
			logger.Debug("extrinsic failed", "block", number, "index", i, "call", result.Call, "origin", xt.Origin, "err", err)
		} else {
			metricExtrinsics().AddWithLabel(1, map[string]string{"call": result.Call, "outcome": "ok"})
		}
		results = append(results, result)
	}

	stage := st.Stage()
	summary := BlockSummary{
		Number:      number,
		ChangesHash: xode.Hash(stage.Hash()),
		Weight:      meter.Consumed(xode.RocksDBWeight),
		Timestamp:   uint64(startTime.Unix()),
	}
	if err := r.commit(stage, &summary, rec, nil); err != nil {
		return nil, errors.WithMessagef(err, "block %d: commit", number)
	}

	metricBlocks().Add(1)
	metricBlockWeight().Observe(int64(meter.Reads() + meter.Writes()))
	metricBlockDuration().Observe(time.Since(startTime).Milliseconds())
	if candidates, err := r.candidates(); err == nil {
		metricCandidates().Set(int64(candidates))
	}

	logger.Debug("block executed",
		"number", number,
		"changes", summary.ChangesHash.AbbrevString(),
		"extrinsics", len(xts),
		"events", rec.len(),
		"elapsed", time.Since(startTime),
	)
	return &Receipt{
		BlockSummary: summary,
		HookWeight:   hookWeight,
		Extrinsics:   results,
		Events:       rec.events,
	}, nil
}

// isFatal reports whether a dispatch error is a storage failure rather than a rejection.
func isFatal(err error) bool {
	var stateErr *state.Error
	return errors.As(err, &stateErr)
}

func (r *Runtime) commit(stage *state.Stage, summary *BlockSummary, rec *recorder, extra func(kv.Putter) error) error {
	enc, err := rlp.EncodeToBytes(summary)
	if err != nil {
		return err
	}
	if err := r.creator.Commit(stage, func(p kv.Putter) error {
		putter := metaBucket.NewPutter(p)
		if err := putter.Put(bestBlockKey, enc); err != nil {
			return err
		}
		if extra != nil {
			return extra(putter)
		}
		return nil
	}); err != nil {
		return err
	}
	r.best = *summary

	if r.events != nil {
		batch := r.events.Prepare(summary.Number)
		for _, ev := range rec.events {
			if err := batch.Insert(ev.Extrinsic, ev.Name, ev.Event); err != nil {
				return err
			}
		}
		// the state is committed, a lost event batch only affects queries
		if err := batch.Commit(); err != nil {
			logger.Warn("failed to write events", "block", summary.Number, "err", err)
		}
	}
	return nil
}

func (r *Runtime) candidates() (int, error) {
	var n int
	err := r.view(func(m *Modules) error {
		candidates, err := m.Staking.Candidates()
		n = len(candidates)
		return err
	})
	return n, err
}

// View calls fn with the modules bound to the committed state. Changes are discarded.
func (r *Runtime) View(fn func(m *Modules) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view(fn)
}

func (r *Runtime) view(fn func(m *Modules) error) error {
	return fn(r.bind(r.creator.NewState(), nil, nil))
}

// DryRun dispatches the extrinsic over the committed state and returns the events
// it would emit. Changes are discarded.
func (r *Runtime) DryRun(xt Extrinsic) ([]RecordedEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec := newRecorder()
	m := r.bind(r.creator.NewState(), nil, rec.emit)
	if err := xt.Call.Dispatch(m, xt.Origin); err != nil {
		return nil, err
	}
	return rec.events, nil
}
