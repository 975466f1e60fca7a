// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/xode-network/xode-staking/api/events"
	"github.com/xode-network/xode-staking/api/middleware"
	"github.com/xode-network/xode-staking/api/node"
	"github.com/xode-network/xode-staking/api/staking"
	"github.com/xode-network/xode-staking/api/validators"
	"github.com/xode-network/xode-staking/log"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/txpool"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	EventsLimit          uint64
	NodeInfo             node.Info
}

// New return api router
func New(
	rt *runtime.Runtime,
	pool *txpool.TxPool,
	status node.StatusSource,
	opts Options,
) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(rt, pool).
		Mount(router, "/staking")
	validators.New(rt).
		Mount(router, "/validators")
	if db := rt.Events(); db != nil {
		events.New(db, opts.EventsLimit).
			Mount(router, "/events")
	}
	node.New(status, opts.NodeInfo).
		Mount(router, "/node")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	// every subrouter answers a method mismatch itself, otherwise the next
	// mounted prefix turns it into a not found
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	_ = router.Walk(func(_ *mux.Route, r *mux.Router, _ []*mux.Route) error {
		r.MethodNotAllowedHandler = router.MethodNotAllowedHandler
		return nil
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = middleware.RequestLogger(logger, opts.SlowQueriesThreshold)(handler)
	}
	return handler
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
