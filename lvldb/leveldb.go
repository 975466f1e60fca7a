// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/xode-network/xode-staking/kv"
	"github.com/xode-network/xode-staking/log"
)

var (
	_ kv.Store = (*LevelDB)(nil)

	logger = log.WithContext("pkg", "lvldb")
)

const minCacheSizeMB = 16

// Options configures a persistent store. Values below the minimum are raised to it.
type Options struct {
	// CacheSize in megabytes, split between the block cache and the write buffers.
	CacheSize              int
	OpenFilesCacheCapacity int
	ReadOnly               bool
}

// LevelDB is the kv.Store of the runtime state and chain meta.
type LevelDB struct {
	db      *leveldb.DB
	stg     storage.Storage
	syncOpt *opt.WriteOptions
}

// New opens the store at path, creating it unless read only.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, opts.ReadOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "open level db storage [%v]", path)
	}
	ldb, err := open(stg, opts)
	if err != nil {
		stg.Close()
		return nil, err
	}
	logger.Debug("level db opened", "path", path, "cacheMB", opts.CacheSize, "readOnly", opts.ReadOnly)
	return ldb, nil
}

// NewMem opens a store in memory, for dev chains and tests.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, minCacheSizeMB)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
		ReadOnly:               opts.ReadOnly,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, stg: stg, syncOpt: &opt.WriteOptions{Sync: true}}, nil
}

func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns leveldb.ErrNotFound for a missing key, see IsNotFound.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	metricStoreOps().AddWithLabel(1, map[string]string{"op": "get"})
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	metricStoreOps().AddWithLabel(1, map[string]string{"op": "has"})
	return ldb.db.Has(key, nil)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	metricStoreOps().AddWithLabel(1, map[string]string{"op": "put"})
	return ldb.db.Put(key, value, nil)
}

func (ldb *LevelDB) Delete(key []byte) error {
	metricStoreOps().AddWithLabel(1, map[string]string{"op": "delete"})
	return ldb.db.Delete(key, nil)
}

// Close releases the store and its storage lock. Later operations fail with leveldb.ErrClosed.
func (ldb *LevelDB) Close() error {
	if err := ldb.db.Close(); err != nil {
		ldb.stg.Close()
		return err
	}
	return ldb.stg.Close()
}

// NewBatch returns a batch whose writes are synced to disk, so a committed block survives a crash.
func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb, new(leveldb.Batch)}
}

type batch struct {
	ldb *LevelDB
	b   *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.b.Len()
}

func (b *batch) Write() error {
	metricStoreOps().AddWithLabel(1, map[string]string{"op": "batch"})
	metricBatchSize().Observe(int64(b.b.Len()))
	if err := b.ldb.db.Write(b.b, b.ldb.syncOpt); err != nil {
		return errors.Wrap(err, "write level db batch")
	}
	return nil
}
