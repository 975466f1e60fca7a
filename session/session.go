// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package session rotates periodic sessions and asks a session manager for
// the validator set of each upcoming session.
package session

import (
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/metrics"
	"github.com/xode-network/xode-staking/storage"
	"github.com/xode-network/xode-staking/xode"
)

// ModuleName namespaces the storage of the module.
const ModuleName = "Session"

var (
	logger = log.WithContext("pkg", "session")

	metricRotations = metrics.LazyLoadCounter("session_rotations_count")
)

// Manager decides the validator set at session boundaries.
type Manager interface {
	// NewSession returns the validator set of the session index.
	// The second return value false means keeping the previous set.
	NewSession(index uint32) ([]xode.AccountID, bool, error)
	StartSession(index uint32)
	EndSession(index uint32)
}

// Config defines periodic sessions.
type Config struct {
	Period uint32
	Offset uint32
}

func (c *Config) Validate() error {
	if c.Period == 0 {
		return errors.New("session: period must be positive")
	}
	return nil
}

// Session is the session module bound to a block's storage.
type Session struct {
	cfg          Config
	manager      Manager
	currentIndex *storage.Value[uint32]
	validators   *storage.Value[[]xode.AccountID]
	queued       *storage.Value[[]xode.AccountID]
}

func New(ctx *storage.Context, cfg Config, manager Manager) *Session {
	return &Session{
		cfg:          cfg,
		manager:      manager,
		currentIndex: storage.NewValue[uint32](ctx, "CurrentIndex"),
		validators:   storage.NewValue[[]xode.AccountID](ctx, "Validators"),
		queued:       storage.NewValue[[]xode.AccountID](ctx, "QueuedKeys"),
	}
}

// CurrentIndex returns the index of the current session.
func (s *Session) CurrentIndex() (uint32, error) {
	i, _, err := s.currentIndex.Get()
	return i, err
}

// Validators returns the validator set of the current session.
func (s *Session) Validators() ([]xode.AccountID, error) {
	v, _, err := s.validators.Get()
	return v, err
}

// QueuedValidators returns the validator set of the next session.
func (s *Session) QueuedValidators() ([]xode.AccountID, error) {
	v, _, err := s.queued.Get()
	return v, err
}

// ShouldEndSession returns whether the session ends at the block.
func (s *Session) ShouldEndSession(block uint32) bool {
	return block >= s.cfg.Offset && (block-s.cfg.Offset)%s.cfg.Period == 0
}

// InitGenesis asks the manager for the sets of session 0 and 1, and starts session 0.
func (s *Session) InitGenesis() error {
	initial, ok, err := s.manager.NewSession(0)
	if err != nil {
		return err
	}
	if !ok {
		initial = nil
	}
	queued, ok, err := s.manager.NewSession(1)
	if err != nil {
		return err
	}
	if !ok {
		queued = initial
	}

	if err := s.currentIndex.Put(0); err != nil {
		return err
	}
	if err := s.validators.Put(initial); err != nil {
		return err
	}
	if err := s.queued.Put(queued); err != nil {
		return err
	}
	s.manager.StartSession(0)
	logger.Info("genesis session", "validators", len(initial), "queued", len(queued))
	return nil
}

// OnInitialize rotates the session when the block ends it.
func (s *Session) OnInitialize(block uint32) (bool, error) {
	if !s.ShouldEndSession(block) {
		return false, nil
	}
	return true, s.RotateSession()
}

// RotateSession ends the current session, promotes the queued set, starts the next
// session and queues the set returned for the one after.
func (s *Session) RotateSession() error {
	index, err := s.CurrentIndex()
	if err != nil {
		return err
	}
	s.manager.EndSession(index)

	queued, err := s.QueuedValidators()
	if err != nil {
		return err
	}
	if err := s.validators.Put(queued); err != nil {
		return err
	}

	index++
	if err := s.currentIndex.Put(index); err != nil {
		return err
	}
	s.manager.StartSession(index)

	next, ok, err := s.manager.NewSession(index + 1)
	if err != nil {
		return errors.WithMessagef(err, "session: new session %d", index+1)
	}
	if ok {
		if err := s.queued.Put(next); err != nil {
			return err
		}
	}

	metricRotations().Add(1)
	logger.Info("session rotated", "index", index, "validators", len(queued), "queued", len(next), "changed", ok)
	return nil
}
