// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h *discardHandler) WithGroup(_ string) slog.Handler { return h }

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

// NewTerminalHandlerWithLevel returns a handler optimized for human readability on a terminal,
// printing records at or above lvl.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Leveler, useColor bool) slog.Handler {
	return gethlog.NewTerminalHandlerWithLevel(wr, lvl.Level(), useColor)
}

// JSONHandlerWithLevel returns a handler which prints records in JSON format at or above lvl.
func JSONHandlerWithLevel(wr io.Writer, lvl slog.Leveler) slog.Handler {
	return gethlog.JSONHandlerWithLevel(wr, lvl.Level())
}

// FromVerbosity converts the numeric verbosity of the command line (0=crit ... 5=trace) into a slog level.
func FromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return LevelCrit
	case verbosity == 1:
		return LevelError
	case verbosity == 2:
		return LevelWarn
	case verbosity == 3:
		return LevelInfo
	case verbosity == 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// IsTerminal reports whether the writer is an interactive terminal, so colour output can be used.
func IsTerminal(wr io.Writer) bool {
	f, ok := wr.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
