// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Error is a failure raised by a native program. It reverts the transaction.
type Error struct {
	Program string
	Code    uint32
	Name    string
	Message string
}

func New(program string, code uint32, name, message string) *Error {
	return &Error{
		Program: program,
		Code:    code,
		Name:    name,
		Message: message,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("custom program error: 0x%x (%s.%s: %s)", e.Code, e.Program, e.Name, e.Message)
}

// Is matches errors raised by the same program with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Program == t.Program && e.Code == t.Code
}

// IsRevertErr reports whether err is, or wraps, a program error.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var re *Error
	return errors.As(e, &re)
}

// Code extracts the program error code from err.
func Code(err error) (uint32, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}
