// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"fmt"
	"time"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/solo"
)

// GenesisTime is the wall clock a test node starts at.
var GenesisTime = time.Unix(1_700_000_000, 0)

// NodeBuilder implements the builder pattern for creating a test node instance
type NodeBuilder struct {
	opts    solo.Options
	apiOpts api.Options
}

// NewNodeBuilder creates a new NodeBuilder with default configuration
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{
		opts: solo.DefaultOptions(),
		apiOpts: api.Options{
			AllowedOrigins: "*",
			EnableMetrics:  true,
		},
	}
}

// WithOptions sets the ledger options. The clock is always replaced by the
// node's own manual clock.
func (b *NodeBuilder) WithOptions(opts solo.Options) *NodeBuilder {
	b.opts = opts
	return b
}

// WithAPIOptions sets the options of the API server.
func (b *NodeBuilder) WithAPIOptions(opts api.Options) *NodeBuilder {
	b.apiOpts = opts
	return b
}

// Build creates a new Node backed by an in-memory database.
func (b *NodeBuilder) Build() (Node, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	n := &node{now: GenesisTime, apiOpts: b.apiOpts}
	opts := b.opts
	opts.SlotInterval = 0
	opts.Now = n.clock

	n.solo, err = solo.New(db, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create solo node: %w", err)
	}
	return n, nil
}

// Convenience constructors

// NewDefaultNode creates a new node with default configuration
func NewDefaultNode() (Node, error) {
	return NewNodeBuilder().Build()
}
