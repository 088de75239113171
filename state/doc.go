// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the account arena of the ledger.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ stage ] -> [ kv batch ]
//	         |
//	  [ blob cache ]
//	         |
//	   [ kv bucket ]
//
// Accounts are keyed by public key. A missing account reads as an empty
// account owned by the system program, and an account drained to zero
// lamports is removed when the stage is committed.
package state
