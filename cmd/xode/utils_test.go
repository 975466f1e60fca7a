// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xode-network/xode-staking/genesis"
	"github.com/xode-network/xode-staking/metrics"
	"github.com/xode-network/xode-staking/runtime"
)

func TestReadIntFromUInt64Flag(t *testing.T) {
	got, err := readIntFromUInt64Flag(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = readIntFromUInt64Flag(uint64(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = readIntFromUInt64Flag(uint64(math.MaxInt) + 1)
	assert.Error(t, err)
}

func TestCacheSize(t *testing.T) {
	assert.Equal(t, 32, normalizeCacheSize(1))
	assert.LessOrEqual(t, normalizeCacheSize(math.MaxInt32), math.MaxInt32)
	assert.Positive(t, suggestFDCache())
}

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{configFlag, dataDirFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSelectSpec(t *testing.T) {
	spec, err := selectSpec(newContext(t))
	require.NoError(t, err)
	assert.Equal(t, genesis.DevSpec(), spec)

	custom := genesis.DevSpec()
	custom.Name = "custom"
	data, err := custom.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	spec, err = selectSpec(newContext(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "custom", spec.Name)

	_, err = selectSpec(newContext(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "load chain spec")
}

func TestPersistentInstance(t *testing.T) {
	dataDir := t.TempDir()
	spec := genesis.DevSpec()

	instanceDir, err := makeInstanceDir(newContext(t, "--data-dir", dataDir), spec)
	require.NoError(t, err)
	assert.DirExists(t, instanceDir)

	open := func() (*runtime.Runtime, func()) {
		mainDB, err := openMainDB(instanceDir, 16)
		require.NoError(t, err)
		eventDB, err := openEventDB(instanceDir)
		require.NoError(t, err)
		rt, err := runtime.New(mainDB, eventDB, spec, 0)
		require.NoError(t, err)
		return rt, func() {
			eventDB.Close()
			mainDB.Close()
		}
	}

	rt, closer := open()
	_, err = rt.ExecuteBlock(1, nil)
	require.NoError(t, err)
	closer()

	rt, closer = open()
	defer closer()
	assert.Equal(t, uint32(1), rt.Best().Number)
	assert.FileExists(t, filepath.Join(instanceDir, "events.db"))
}

func TestMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	url, closer, err := startMetricsServer("localhost:0")
	require.NoError(t, err)
	defer closer()

	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	_, err = io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
