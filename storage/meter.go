// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"fmt"

	"github.com/xode-network/xode-staking/xode"
)

// Meter counts storage operations, to be converted into weight.
type Meter struct {
	reads  uint64
	writes uint64
}

func NewMeter() *Meter {
	return &Meter{}
}

func (m *Meter) Read(n uint64)  { m.reads += n }
func (m *Meter) Write(n uint64) { m.writes += n }

func (m *Meter) Reads() uint64  { return m.reads }
func (m *Meter) Writes() uint64 { return m.writes }

// Consumed converts counted operations into weight.
func (m *Meter) Consumed(w xode.DbWeight) xode.Weight {
	return w.ReadsWrites(m.reads, m.writes)
}

func (m *Meter) Reset() {
	m.reads, m.writes = 0, 0
}

func (m *Meter) Breakdown(w xode.DbWeight) string {
	return fmt.Sprintf(
		"READ: %d ops (%d) | WRITE: %d ops (%d) | TOTAL: %d",
		m.reads,
		w.Reads(m.reads),
		m.writes,
		w.Writes(m.writes),
		m.Consumed(w),
	)
}
