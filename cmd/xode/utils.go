// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xode-network/xode-staking/eventlog"
	"github.com/xode-network/xode-staking/genesis"
	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/lvldb"
	"github.com/xode-network/xode-staking/metrics"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/xode"
)

func initLogger(lvl int, jsonLogs bool) {
	var handler = log.JSONHandler(os.Stdout)
	if !jsonLogs {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		output := io.Writer(os.Stderr)
		handler = log.TerminalHandler(output, log.FromVerbosity(lvl), useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, fmt.Errorf("invalid value %d, exceeds max int", val)
	}
	return int(val), nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".xode")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func selectSpec(ctx *cli.Context) (*genesis.Spec, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.DevSpec(), nil
	}
	spec, err := genesis.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "load chain spec")
	}
	return spec, nil
}

func makeInstanceDir(ctx *cli.Context, spec *genesis.Spec) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	id, err := spec.ID()
	if err != nil {
		return "", err
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", id[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 32 {
		sizeMB = 32
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 128
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 1024)
}

// openMainDB opens the state store, in memory when instanceDir is "Memory".
func openMainDB(instanceDir string, cacheMB int) (*lvldb.LevelDB, error) {
	if instanceDir == "Memory" {
		return lvldb.NewMem()
	}
	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: suggestFDCache(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, nil
}

func openEventDB(instanceDir string) (*eventlog.DB, error) {
	if instanceDir == "Memory" {
		return eventlog.NewMem()
	}
	path := filepath.Join(instanceDir, "events.db")
	db, err := eventlog.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", path)
	}
	return db, nil
}

func serve(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes errgroup.Group
	goes.Go(func() error {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		if err := goes.Wait(); err != nil {
			logger.Warn("http server stopped", "addr", addr, "err", err)
		}
	}, nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	url, closer, err := serve(addr, handler)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	return url + "/", closer, nil
}

func startMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	url, closer, err := serve(addr, handlers.CompressHandler(router))
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}
	return url + "/metrics", closer, nil
}

func printStartupMessage(spec *genesis.Spec, rt *runtime.Runtime, instanceDir, apiURL, metricsURL string) {
	id, _ := spec.ID()
	best := rt.Best()
	if metricsURL == "" {
		metricsURL = "Disabled"
	}

	fmt.Printf(`Starting Xode %v
    Chain        [ %v %v ]
    Best block   [ %v #%v @%v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		xode.Hash(id).AbbrevString(), spec.Name,
		best.ChangesHash.AbbrevString(), best.Number, time.Unix(int64(best.Timestamp), 0),
		instanceDir,
		apiURL,
		metricsURL)
}
