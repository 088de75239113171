// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound},
		{"custom", HTTPError(errors.New("slow down"), http.StatusTooManyRequests), http.StatusTooManyRequests},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })(rec, httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.err != nil {
				assert.Contains(t, rec.Body.String(), tt.err.Error())
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct{ A int }
	require.NoError(t, ParseJSON(strings.NewReader(`{"A":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"B":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, map[string]int{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}

func TestParsePublicKey(t *testing.T) {
	_, err := ParsePublicKey("owner", "not-base58-0OIl")
	assert.Error(t, err)
	key, err := ParsePublicKey("owner", "11111111111111111111111111111111")
	require.NoError(t, err)
	assert.True(t, key.IsZero())
}
