// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import "github.com/xode-network/xode-staking/metrics"

var (
	metricStoreOps  = metrics.LazyLoadCounterVec("lvldb_ops_count", []string{"op"})
	metricBatchSize = metrics.LazyLoadHistogram("lvldb_batch_size", metrics.BucketWeight)
)
