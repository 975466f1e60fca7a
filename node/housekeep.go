// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultNTPServer = "pool.ntp.org"
	clockCheckPeriod = 10 * time.Minute
)

func (n *Node) housekeeping(ctx context.Context) {
	logger.Debug("enter housekeeping")
	defer logger.Debug("leave housekeeping")

	ticker := time.NewTicker(clockCheckPeriod)
	defer ticker.Stop()

	n.checkClockOffset()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.checkClockOffset()
		}
	}
}

func (n *Node) checkClockOffset() {
	offset, err := n.queryOffset(n.options.NTPServer)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	n.mu.Lock()
	n.clockOffset = offset
	n.mu.Unlock()

	if offset < 0 {
		offset = -offset
	}
	if offset > n.options.BlockTime/2 {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(offset))
	}
}

func queryClockOffset(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}
