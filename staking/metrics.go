// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/xode-network/xode-staking/metrics"

var (
	metricMerges         = metrics.LazyLoadCounter("staking_merges_count")
	metricMergeOutcome   = metrics.LazyLoadCounterVec("staking_merge_candidates_count", []string{"outcome"})
	metricBootstrapSeeds = metrics.LazyLoadCounterVec("staking_bootstrap_seeds_count", []string{"outcome"})
)
