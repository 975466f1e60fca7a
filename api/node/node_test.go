// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xode-network/xode-staking/node"
	"github.com/xode-network/xode-staking/runtime"
)

type fixedStatus node.Status

func (s fixedStatus) Status() node.Status { return node.Status(s) }

func TestNode(t *testing.T) {
	router := mux.NewRouter()
	New(fixedStatus{Best: runtime.BlockSummary{Number: 7}, Pending: 2, Producing: true}, Info{Name: "xode", Chain: "xode-dev", Version: "1.0.0"}).
		Mount(router, "/node")
	ts := httptest.NewServer(router)
	defer ts.Close()

	get := func(path string) string {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return string(data)
	}

	assert.JSONEq(t, `{
		"best": {"number": 7, "changesHash": "0x0000000000000000000000000000000000000000000000000000000000000000", "weight": 0, "timestamp": 0},
		"pending": 2,
		"clockOffset": 0,
		"producing": true
	}`, get("/node/status"))
	assert.JSONEq(t, `{"name": "xode", "chain": "xode-dev", "version": "1.0.0"}`, get("/node/info"))
}
