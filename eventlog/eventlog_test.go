// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	N int `json:"n"`
}

func fill(t *testing.T, db *DB, blocks int) {
	for b := 1; b <= blocks; b++ {
		batch := db.Prepare(uint32(b))
		require.NoError(t, batch.Insert(HookExtrinsic, "CollatorAdded", payload{b}))
		require.NoError(t, batch.Insert(0, "CandidateAdded", payload{b * 10}))
		assert.Equal(t, 2, batch.Len())
		require.NoError(t, batch.Commit())
	}
}

func TestFilter(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	fill(t, db, 10)
	ctx := context.Background()

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, &Event{BlockNumber: 1, Index: 0, Extrinsic: HookExtrinsic, Name: "CollatorAdded", Data: []byte(`{"n":1}`)}, all[0])

	tests := []struct {
		name   string
		filter *Filter
		want   int
		first  uint32
	}{
		{"range", &Filter{Range: &Range{From: 3, To: 5}}, 6, 3},
		{"open range", &Filter{Range: &Range{From: 9}}, 4, 9},
		{"names", &Filter{Names: []string{"CandidateAdded"}}, 10, 1},
		{"several names", &Filter{Names: []string{"CandidateAdded", "CollatorAdded"}}, 20, 1},
		{"unknown name", &Filter{Names: []string{"Nope"}}, 0, 0},
		{"desc", &Filter{Order: DESC}, 20, 10},
		{"paged", &Filter{Options: &Options{Offset: 4, Limit: 3}}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.Filter(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, events, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.first, events[0].BlockNumber)
			}
		})
	}
}

func TestRecommitReplaces(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	fill(t, db, 1)
	batch := db.Prepare(1)
	require.NoError(t, batch.Insert(0, "CandidateRemoved", payload{}))
	require.NoError(t, batch.Commit())

	events, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CandidateRemoved", events[0].Name)
}

func TestCancelledQuery(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()
	fill(t, db, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Filter(ctx, nil)
	assert.Error(t, err)
}

func TestFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	fill(t, db, 2)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	events, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestBadData(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()
	assert.Error(t, db.Prepare(1).Insert(0, "Bad", make(chan int)))
}
