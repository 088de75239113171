// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstake/api/accounts"
	"github.com/vechain/nftstake/api/node"
	"github.com/vechain/nftstake/api/stakes"
	"github.com/vechain/nftstake/api/subscriptions"
	"github.com/vechain/nftstake/api/transactions"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/metrics"
	"github.com/vechain/nftstake/solo"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	// TxRateLimit caps the transactions accepted per second, 0 for no limit.
	TxRateLimit int
}

// New return api router
func New(n *solo.Node, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(n).
		Mount(router, "/accounts")
	transactions.New(n, opts.TxRateLimit).
		Mount(router, "/transactions")
	stakes.New(n).
		Mount(router, "/stakes")
	node.New(n).
		Mount(router, "/node")
	subs := subscriptions.New(n, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Name("GET /metrics").
			Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
