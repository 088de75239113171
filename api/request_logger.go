// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vechain/nftstake/log"
)

const requestIDHeader = "X-Request-Id"

// RequestLoggerHandler returns a http handler logging every request with an id,
// which is echoed in the response headers.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		// the body can only be read once, it's restored for the wrapped handler
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return // don't pass bad request to the next handler
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		handler.ServeHTTP(w, r)

		logger.Info("API Request",
			"id", id,
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(bodyBytes),
			"elapsed", time.Since(start),
		)
	}
	return http.HandlerFunc(fn)
}
