// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/api/utils"
	"github.com/xode-network/xode-staking/eventlog"
)

type Events struct {
	db    *eventlog.DB
	limit uint64
}

func New(db *eventlog.DB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func parseUint(query url.Values, key string, max uint64) (*uint64, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, key))
	}
	if n > max {
		return nil, utils.BadRequest(fmt.Errorf("%s exceeds the maximum allowed value of %d", key, max))
	}
	return &n, nil
}

// parseFilter reads the filter from the query: from, to, name (repeatable), order, offset and limit.
func (e *Events) parseFilter(query url.Values) (*eventlog.Filter, error) {
	filter := &eventlog.Filter{
		Names:   query["name"],
		Options: &eventlog.Options{Limit: e.limit + 1},
	}

	from, err := parseUint(query, "from", math.MaxUint32)
	if err != nil {
		return nil, err
	}
	to, err := parseUint(query, "to", math.MaxUint32)
	if err != nil {
		return nil, err
	}
	if from != nil || to != nil {
		filter.Range = &eventlog.Range{To: math.MaxUint32}
		if from != nil {
			filter.Range.From = uint32(*from)
		}
		if to != nil {
			filter.Range.To = uint32(*to)
		}
		if filter.Range.From > filter.Range.To {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
	}

	switch order := query.Get("order"); order {
	case "", string(eventlog.ASC):
		filter.Order = eventlog.ASC
	case string(eventlog.DESC):
		filter.Order = eventlog.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("invalid order %q", order))
	}

	offset, err := parseUint(query, "offset", math.MaxInt64)
	if err != nil {
		return nil, err
	}
	if offset != nil {
		filter.Options.Offset = *offset
	}
	limit, err := parseUint(query, "limit", math.MaxUint64)
	if err != nil {
		return nil, err
	}
	if limit != nil {
		if *limit > e.limit {
			return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
		}
		filter.Options.Limit = *limit
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	events, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	// ensure the result size is less than the configured limit
	if len(events) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	if events == nil {
		events = []*eventlog.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
