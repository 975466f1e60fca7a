// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventlog stores the events of committed blocks in sqlite.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open event db at given path.
func New(path string) (eventDB *DB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// a memory db lives in a single connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &DB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*DB, error) {
	return New(":memory:")
}

// Close close the event db.
func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) DriverVersion() string {
	return db.driverVersion
}

// Prepare creates a batch collecting the events of the block.
func (db *DB) Prepare(blockNumber uint32) *BlockBatch {
	return &BlockBatch{
		db:          db.db,
		blockNumber: blockNumber,
	}
}

// Filter queries events matching the filter.
func (db *DB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT blockNumber, eventIndex, extrinsic, name, data FROM event ORDER BY blockNumber ASC, eventIndex ASC")
	}
	var args []any
	stmt := "SELECT blockNumber, eventIndex, extrinsic, name, data FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ? "
		}
	}
	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(",?", len(filter.Names)-1) + ") "
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY blockNumber ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	metricsHandleFilter(filter)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *DB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			event Event
			data  []byte
		)
		if err := rows.Scan(
			&event.BlockNumber,
			&event.Index,
			&event.Extrinsic,
			&event.Name,
			&data,
		); err != nil {
			return nil, err
		}
		event.Data = json.RawMessage(data)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// BlockBatch collects the events of a block and writes them in one transaction.
type BlockBatch struct {
	db          *sql.DB
	blockNumber uint32
	events      []*Event
}

// Insert appends an event. Data is encoded in json.
func (bb *BlockBatch) Insert(extrinsic int, name string, data any) error {
	enc, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "encode event %s", name)
	}
	bb.events = append(bb.events, &Event{
		BlockNumber: bb.blockNumber,
		Index:       uint32(len(bb.events)),
		Extrinsic:   extrinsic,
		Name:        name,
		Data:        enc,
	})
	return nil
}

func (bb *BlockBatch) Len() int {
	return len(bb.events)
}

func (bb *BlockBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := bb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Commit writes the events. Previously stored events of the block are replaced.
func (bb *BlockBatch) Commit() error {
	return bb.execInTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM event WHERE blockNumber = ?;", bb.blockNumber); err != nil {
			return err
		}
		for _, event := range bb.events {
			if _, err := tx.Exec("INSERT INTO event(blockNumber, eventIndex, extrinsic, name, data) VALUES (?, ?, ?, ?, ?);",
				event.BlockNumber,
				event.Index,
				event.Extrinsic,
				event.Name,
				[]byte(event.Data),
			); err != nil {
				return err
			}
		}
		return nil
	})
}
