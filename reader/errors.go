// This file is part of janet-core.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reader

// Status classifies the outcome of a parse. Parse, ParseString and ParseAll
// do not return a Status; they report failure through a *ParseError.
type Status uint8

const (
	// StatusOK means the input parsed cleanly into complete forms.
	StatusOK Status = iota
	// StatusPending means the input ended partway through a value (e.g. an
	// open paren or a string literal with no closing quote yet).
	StatusPending
	// StatusError means the input contained a parse error.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPending:
		return "pending"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseError reports a single reader failure. Message matches one of the
// fixed diagnostics below, byte for byte, so tests and callers can match on
// it. Unlike net-package failures, reader errors are data, not wrapped
// errors: a reader is routinely fed bad input as part of normal operation.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string { return e.Message }

// Fixed diagnostics, one per failure mode in the grammar.
const (
	msgUnexpectedEOS    = "unexpected end of source"
	msgUnexpectedChar   = "unexpected character"
	msgSymNoDigits      = "symbols cannot start with digits"
	msgStructOddArgs    = "struct literal needs an even number of arguments"
	msgUnknownStrEscape = "unknown string escape sequence"
	msgInvalidHexEscape = "invalid hex escape in string"
	msgTooMuchRecur     = "recursed too deeply in parsing"
	msgUnexpectedCloser = "unexpected closing delimiter"
	msgMismatchedCloser = "mismatched delimiter"
)
