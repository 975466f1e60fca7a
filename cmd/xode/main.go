// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xode-network/xode-staking/api"
	apinode "github.com/xode-network/xode-staking/api/node"
	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/metrics"
	"github.com/xode-network/xode-staking/node"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/txpool"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "xode")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Xode",
		Usage:     "Standalone node of the Xode staking runtime",
		Copyright: "2025 Xode Network",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			blockTimeFlag,
			onDemandFlag,
			ntpCheckFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "spec",
				Usage:  "print the effective chain spec in YAML",
				Flags:  []cli.Flag{configFlag},
				Action: specAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	spec, err := selectSpec(ctx)
	if err != nil {
		return err
	}
	cacheMB, err := readIntFromUInt64Flag(ctx.Uint64(cacheFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse cache flag")
	}
	cacheMB = normalizeCacheSize(cacheMB)
	logger.Debug("cache size(MB)", "size", cacheMB)

	instanceDir := "Memory"
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, spec); err != nil {
			return err
		}
	}

	mainDB, err := openMainDB(instanceDir, cacheMB)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	eventDB, err := openEventDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	rt, err := runtime.New(mainDB, eventDB, spec, cacheMB/2)
	if err != nil {
		return err
	}

	pool := txpool.New(txpool.Options{Limit: 10000, LimitPerAccount: 64, MaxLifetime: 20 * time.Minute})
	defer func() { logger.Info("closing extrinsic pool..."); pool.Close() }()

	producer := node.New(rt, pool, node.Options{
		BlockTime: time.Duration(ctx.Uint64(blockTimeFlag.Name)) * time.Second,
		OnDemand:  ctx.Bool(onDemandFlag.Name),
		NTPCheck:  ctx.Bool(ntpCheckFlag.Name),
	})

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	handler := api.New(rt, pool, producer, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      ctx.Bool(enableAPILogsFlag.Name),
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
		NodeInfo:             apinode.Info{Name: "xode", Chain: spec.Name, Version: fullVersion()},
	})
	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(spec, rt, instanceDir, apiURL, metricsURL)

	return producer.Run(exitSignal)
}

func specAction(ctx *cli.Context) error {
	spec, err := selectSpec(ctx)
	if err != nil {
		return err
	}
	data, err := spec.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
