// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"errors"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/solo"
)

// Node represents a complete test node with a ledger and its API server.
type Node interface {
	// Solo returns the underlying ledger
	Solo() *solo.Node

	// Start starts the API server
	Start() error

	// Stop stops the API server and the ledger
	Stop() error

	// APIServer returns the node api server
	APIServer() *httptest.Server

	// Advance moves the wall clock of the ledger forward.
	Advance(d time.Duration)
}

// node implements the Node interface
type node struct {
	solo            *solo.Node
	apiOpts         api.Options
	apiServer       *httptest.Server
	apiServerCloser func()

	mu  sync.Mutex
	now time.Time
}

func (n *node) clock() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.now
}

func (n *node) Advance(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.now = n.now.Add(d)
}

// Start starts the API server. Returns an error if the node is already running.
func (n *node) Start() error {
	if n.solo == nil {
		return errors.New("ledger is not initialized")
	}
	if n.apiServer != nil {
		return errors.New("node is already running")
	}

	apiHandler, apiCloser := api.New(n.solo, n.apiOpts)
	n.apiServer = httptest.NewServer(apiHandler)
	n.apiServerCloser = apiCloser
	return nil
}

// Stop gracefully shuts down the node. Returns an error if the node is not running.
func (n *node) Stop() error {
	if n.apiServer == nil {
		return errors.New("node is not running")
	}

	if n.apiServerCloser != nil {
		n.apiServerCloser()
		n.apiServerCloser = nil
	}
	n.apiServer.Close()
	n.apiServer = nil
	n.solo.Close()
	return nil
}

func (n *node) Solo() *solo.Node {
	return n.solo
}

// APIServer returns the node api server
func (n *node) APIServer() *httptest.Server {
	return n.apiServer
}
