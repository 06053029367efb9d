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

import "strconv"

// isWhitespace classifies the bytes the scanner skips between forms. Comma
// is whitespace, not punctuation: Janet source uses it purely for visual
// grouping in argument lists.
func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', 0, ',':
		return true
	default:
		return false
	}
}

// isSymbolChar classifies bytes that may appear in a symbol or keyword atom:
// the union of ranges [a-z], [A-Z], [0-9:], [<-@], [*-/], [$-&], plus '_',
// '^', '!'. '<-@' already covers '?' along with '=' and '>'. ',' falls
// inside '*-/' but is excluded, since it is whitespace (see isWhitespace).
// Symbol characters are ASCII only; there is no high-byte range.
func isSymbolChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= ':':
		return true
	case c >= '<' && c <= '@':
		return true
	case c >= '*' && c <= '/' && c != ',':
		return true
	case c >= '$' && c <= '&':
		return true
	case c == '_' || c == '^' || c == '!':
		return true
	default:
		return false
	}
}

// toHex converts a single ASCII hex digit to its value, or -1 if c is not a
// hex digit.
func toHex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// looksNumeric reports whether a completed symbol-shaped atom should be
// attempted as a number before falling back to a symbol. It does not itself
// validate the number; parseNumber does that and reports ok=false if the
// shape was a false positive (e.g. "-foo").
func looksNumeric(tok string) bool {
	if len(tok) == 0 {
		return false
	}
	c := tok[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if (c == '-' || c == '+' || c == '.') && len(tok) > 1 {
		return true
	}
	return false
}

// parseNumber parses a Janet-grammar number token: plain decimal integers
// and reals (including exponent form), and radix-prefixed integers written
// as "RxDIGITS" (e.g. "16xFF"). Returns ok=false if tok does not parse as
// either, in which case the caller treats it as a symbol, or rejects it
// with "symbols cannot start with digits" if its first byte is a digit.
func parseNumber(tok string) (isInt bool, i int32, r float64, ok bool) {
	if xi := indexByte(tok, 'x'); xi > 0 {
		radix, err := strconv.ParseInt(tok[:xi], 10, 32)
		if err == nil && radix >= 2 && radix <= 36 {
			digits := tok[xi+1:]
			neg := false
			if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
				neg = digits[0] == '-'
				digits = digits[1:]
			}
			n, err := strconv.ParseInt(digits, int(radix), 64)
			if err == nil {
				if neg {
					n = -n
				}
				return true, int32(n), 0, true
			}
		}
		return false, 0, 0, false
	}
	if n, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return true, int32(n), 0, true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return false, 0, f, true
	}
	return false, 0, 0, false
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
