// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"errors"

	"github.com/qianbin/directcache"

	"github.com/xode-network/xode-staking/kv"
)

var errNotFound = errors.New("not found")

// Creator creates states over a kv store, with a shared read cache.
type Creator struct {
	store kv.Store
	cache *directcache.Cache
}

var _ kv.Getter = (*Creator)(nil)

// NewCreator create a new creator. The cache is disabled if cacheSizeMB is zero.
func NewCreator(store kv.Store, cacheSizeMB int) *Creator {
	c := &Creator{store: store}
	if cacheSizeMB > 0 {
		c.cache = directcache.New(cacheSizeMB * 1024 * 1024)
	}
	return c
}

// NewState create a new state object.
func (c *Creator) NewState() *State {
	return New(c)
}

// Get reads through the cache. Absent keys are cached as empty values.
func (c *Creator) Get(key []byte) ([]byte, error) {
	if c.cache != nil {
		var val []byte
		if c.cache.AdvGet(key, func(v []byte) {
			val = bytes.Clone(v)
		}, false) {
			metricStateAccess().AddWithLabel(1, map[string]string{"type": "cache-hit"})
			if len(val) == 0 {
				return nil, errNotFound
			}
			return val, nil
		}
		metricStateAccess().AddWithLabel(1, map[string]string{"type": "cache-miss"})
	}

	val, err := c.store.Get(key)
	if err != nil {
		if c.store.IsNotFound(err) {
			if c.cache != nil {
				c.cache.Set(key, nil)
			}
			return nil, errNotFound
		}
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, val)
	}
	return val, nil
}

func (c *Creator) Has(key []byte) (bool, error) {
	val, err := c.Get(key)
	if err != nil {
		if c.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return len(val) > 0, nil
}

func (c *Creator) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || c.store.IsNotFound(err)
}

// Commit writes the stage and extra writes atomically, then refreshes the cache.
func (c *Creator) Commit(stage *Stage, extra func(kv.Putter) error) error {
	batch := c.store.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return err
	}
	if extra != nil {
		if err := extra(batch); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	if c.cache != nil {
		stage.Changes(func(key, val []byte) bool {
			c.cache.Set(key, val)
			return true
		})
	}
	metricStateAccess().AddWithLabel(int64(stage.Len()), map[string]string{"type": "commit"})
	return nil
}
