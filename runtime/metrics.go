// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/xode-network/xode-staking/metrics"

var (
	metricBlocks        = metrics.LazyLoadCounter("runtime_blocks_count")
	metricBlockWeight   = metrics.LazyLoadHistogram("runtime_block_weight_ops", metrics.BucketWeight)
	metricBlockDuration = metrics.LazyLoadHistogram("runtime_block_duration_ms", metrics.Bucket10s)
	metricCandidates    = metrics.LazyLoadGauge("staking_candidates_count")
	metricExtrinsics    = metrics.LazyLoadCounterVec("runtime_extrinsics_count", []string{"call", "outcome"})
)
