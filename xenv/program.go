// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/gagliardetto/solana-go"
)

// Program is a native program executed by the runtime.
type Program interface {
	ID() solana.PublicKey
	Name() string
	// Execute runs one instruction addressed to the program.
	Execute(env *Environment) error
}

// Programs looks up native programs by id.
type Programs interface {
	Lookup(id solana.PublicKey) (Program, bool)
}

// ProgramSet is a Programs backed by a map.
type ProgramSet map[solana.PublicKey]Program

// NewProgramSet indexes the given programs.
func NewProgramSet(programs ...Program) ProgramSet {
	set := make(ProgramSet, len(programs))
	for _, p := range programs {
		set[p.ID()] = p
	}
	return set
}

// Lookup implements Programs.
func (s ProgramSet) Lookup(id solana.PublicKey) (Program, bool) {
	p, ok := s[id]
	return p, ok
}
