// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xode

// Weight is the execution cost of a piece of logic, in picoseconds of reference time.
type Weight uint64

// DbWeight is the cost of single storage operations.
type DbWeight struct {
	Read  Weight
	Write Weight
}

// RocksDBWeight is the storage weight used by the runtime.
var RocksDBWeight = DbWeight{
	Read:  25_000 * 1000,
	Write: 100_000 * 1000,
}

// Reads returns the weight of n reads.
func (w DbWeight) Reads(n uint64) Weight {
	return w.Read * Weight(n)
}

// Writes returns the weight of n writes.
func (w DbWeight) Writes(n uint64) Weight {
	return w.Write * Weight(n)
}

// ReadsWrites returns the weight of r reads and w writes.
func (w DbWeight) ReadsWrites(r, wr uint64) Weight {
	return w.Reads(r) + w.Writes(wr)
}
