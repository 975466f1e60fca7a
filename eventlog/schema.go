// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventlog

// eventIndex is the position of the event in the block, extrinsic is -1 for hook events.
const eventTableSchema = `
create table if not exists event (
	blockNumber integer,
	eventIndex integer,
	extrinsic integer,
	name text,
	data blob,
	primary key (blockNumber, eventIndex)
);

create index if not exists eventNameIndex on event(name);
`
