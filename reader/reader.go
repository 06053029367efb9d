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

// Package reader implements the s-expression reader: a recursive-descent
// parser that turns source text into value.Value forms, each paired with a
// SourceMap recording where in the source text the form (and, recursively,
// each of its children) came from.
package reader

import (
	"github.com/db47h/janet-core/value"
)

// maxRecurDepth bounds the parser's recursion through nested aggregates,
// matching the depth guard in the form this grammar was distilled from.
// Quote prefixes are counted in a loop and add no depth.
const maxRecurDepth = 200

type parser struct {
	src   []byte
	pos   int
	depth int
}

// Parse reads exactly one top-level form from src. It is an error for src to
// contain zero forms or more than one (after trailing whitespace/comments).
func Parse(src []byte) (value.Value, SourceMap, error) {
	forms, maps, err := ParseAll(src)
	if err != nil {
		return value.Nil, SourceMap{}, err
	}
	if len(forms) != 1 {
		return value.Nil, SourceMap{}, &ParseError{Message: msgUnexpectedEOS, Offset: len(src)}
	}
	return forms[0], maps[0], nil
}

// ParseString is Parse for a Go string, a convenience supplementing the
// byte-slice entry point (the original incremental parser only ever saw
// bytes fed a chunk at a time; callers holding a whole string in memory
// shouldn't have to convert it by hand first).
func ParseString(s string) (value.Value, SourceMap, error) {
	return Parse([]byte(s))
}

// ParseAll reads every top-level form in src and returns them in order along
// with one SourceMap per form.
func ParseAll(src []byte) ([]value.Value, []SourceMap, error) {
	p := &parser{src: src}
	var vals []value.Value
	var maps []SourceMap
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			break
		}
		v, m, err := p.form()
		if err != nil {
			return nil, nil, err
		}
		vals = append(vals, v)
		maps = append(maps, m)
	}
	return vals, maps, nil
}

func (p *parser) errorf(msg string) error {
	return &ParseError{Message: msg, Offset: p.pos}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// skipSpace consumes whitespace and '#' line comments, the latter running to
// the next newline or end of input.
func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '#' {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		break
	}
}

// form reads one form at the current position, trimming any interleaved
// whitespace, comments and leading quote (') marks first: the quote count is
// accumulated across that same trim loop, exactly like the whitespace skip,
// rather than treated as a distinct prefix form. Once the underlying form is
// parsed, the result is wrapped in that many nested (quote ...) tuples, but
// the wrapped value's SourceMap is the inner form's own map, reused
// verbatim — quoting adds no source span of its own.
func (p *parser) form() (value.Value, SourceMap, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecurDepth {
		return value.Nil, SourceMap{}, p.errorf(msgTooMuchRecur)
	}

	qcount := 0
	for {
		c, ok := p.peek()
		if !ok {
			break
		}
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '#' {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if c == '\'' {
			qcount++
			p.pos++
			continue
		}
		break
	}

	ret, retMap, err := p.formBody()
	if err != nil {
		return value.Nil, SourceMap{}, err
	}
	for i := 0; i < qcount; i++ {
		ret = value.Tuple(value.SymString("quote"), ret)
	}
	return ret, retMap, nil
}

// formBody dispatches on the byte at the current position to parse one
// unwrapped form: an aggregate, a string, or an atom.
func (p *parser) formBody() (value.Value, SourceMap, error) {
	start := p.pos
	c, ok := p.peek()
	if !ok {
		return value.Nil, SourceMap{}, p.errorf(msgUnexpectedEOS)
	}

	switch c {
	case '(':
		return p.aggregate(start, '(', ')', value.Tuple)
	case ')', ']', '}':
		return value.Nil, SourceMap{}, p.errorf(msgUnexpectedCloser)
	case '[':
		return p.aggregate(start, '[', ']', value.Array)
	case '{':
		return p.assocForm(start, false)
	case '"':
		return p.stringForm(start)
	case '@':
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == '{' {
			p.pos++ // consume '@', leaving '{' for assocForm
			return p.assocForm(start, true)
		}
		return p.atomForm(start)
	default:
		return p.atomForm(start)
	}
}

// aggregate reads a parenthesized or bracketed sequence of forms, building a
// tuple or array value via build depending on which constructor is passed.
func (p *parser) aggregate(start int, open, close byte, build func(...value.Value) value.Value) (value.Value, SourceMap, error) {
	p.pos++ // consume opener
	var elems []value.Value
	var submaps []SourceMap
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return value.Nil, SourceMap{}, p.errorf(msgUnexpectedEOS)
		}
		if c == close {
			p.pos++
			break
		}
		if c == ')' || c == ']' || c == '}' {
			return value.Nil, SourceMap{}, p.errorf(msgMismatchedCloser)
		}
		v, m, err := p.form()
		if err != nil {
			return value.Nil, SourceMap{}, err
		}
		elems = append(elems, v)
		submaps = append(submaps, m)
	}
	end := p.pos
	return build(elems...), seqMap(start, end, submaps), nil
}

// assocForm reads a struct ({...}) or table (@{...}) literal. Both require
// an even number of constituent forms.
func (p *parser) assocForm(start int, isTable bool) (value.Value, SourceMap, error) {
	p.pos++ // consume '{'
	var flat []value.Value
	var flatMaps []SourceMap
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return value.Nil, SourceMap{}, p.errorf(msgUnexpectedEOS)
		}
		if c == '}' {
			p.pos++
			break
		}
		if c == ')' || c == ']' {
			return value.Nil, SourceMap{}, p.errorf(msgMismatchedCloser)
		}
		v, m, err := p.form()
		if err != nil {
			return value.Nil, SourceMap{}, err
		}
		flat = append(flat, v)
		flatMaps = append(flatMaps, m)
	}
	if len(flat)%2 != 0 {
		return value.Nil, SourceMap{}, p.errorf(msgStructOddArgs)
	}
	end := p.pos

	entries := make([]value.Entry, 0, len(flat)/2)
	pairs := make([]kvMap, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		entries = append(entries, value.Entry{Key: flat[i], Val: flat[i+1]})
		kv := kvMap{keyValue: flat[i], key: flatMaps[i], val: flatMaps[i+1]}
		replaced := false
		for j := range pairs {
			if value.Equal(pairs[j].keyValue, flat[i]) {
				// A repeated key overwrites, as it does in the value.
				pairs[j] = kv
				replaced = true
				break
			}
		}
		if !replaced {
			pairs = append(pairs, kv)
		}
	}

	var v value.Value
	if isTable {
		v = value.Table(entries)
	} else {
		v = value.Struct(entries)
	}
	return v, assocMap(start, end, pairs), nil
}

// stringForm reads a "..." literal, resolving escapes per the escape table:
// \n \r \t \f \0 \" \' \z \e and \hHH (two hex digits).
func (p *parser) stringForm(start int) (value.Value, SourceMap, error) {
	p.pos++ // consume opening quote
	var buf []byte
	for {
		c, ok := p.peek()
		if !ok {
			return value.Nil, SourceMap{}, p.errorf(msgUnexpectedEOS)
		}
		if c == '"' {
			p.pos++
			break
		}
		if c != '\\' {
			buf = append(buf, c)
			p.pos++
			continue
		}
		p.pos++ // consume backslash
		ec, ok := p.peek()
		if !ok {
			return value.Nil, SourceMap{}, p.errorf(msgUnexpectedEOS)
		}
		switch ec {
		case 'n':
			buf = append(buf, '\n')
			p.pos++
		case 'r':
			buf = append(buf, '\r')
			p.pos++
		case 't':
			buf = append(buf, '\t')
			p.pos++
		case 'f':
			buf = append(buf, '\f')
			p.pos++
		case '0', 'z':
			buf = append(buf, 0)
			p.pos++
		case 'e':
			buf = append(buf, 0x1B)
			p.pos++
		case '"':
			buf = append(buf, '"')
			p.pos++
		case '\'':
			buf = append(buf, '\'')
			p.pos++
		case '\\':
			buf = append(buf, '\\')
			p.pos++
		case 'h':
			p.pos++
			if p.pos+1 >= len(p.src) {
				return value.Nil, SourceMap{}, p.errorf(msgInvalidHexEscape)
			}
			hi, lo := toHex(p.src[p.pos]), toHex(p.src[p.pos+1])
			if hi < 0 || lo < 0 {
				return value.Nil, SourceMap{}, p.errorf(msgInvalidHexEscape)
			}
			buf = append(buf, byte(hi<<4|lo))
			p.pos += 2
		default:
			return value.Nil, SourceMap{}, p.errorf(msgUnknownStrEscape)
		}
	}
	end := p.pos
	return value.Str(buf), atomMap(start, end), nil
}

// atomForm scans a run of symbol characters and classifies it as a number,
// one of the literal keywords (nil/true/false), a keyword (leading ':'), or
// a plain symbol.
func (p *parser) atomForm(start int) (value.Value, SourceMap, error) {
	for p.pos < len(p.src) && isSymbolChar(p.src[p.pos]) {
		p.pos++
	}
	end := p.pos
	if end == start {
		return value.Nil, SourceMap{}, p.errorf(msgUnexpectedChar)
	}
	tok := string(p.src[start:end])

	switch tok {
	case "nil":
		return value.Nil, atomMap(start, end), nil
	case "true":
		return value.Bool(true), atomMap(start, end), nil
	case "false":
		return value.Bool(false), atomMap(start, end), nil
	}

	if tok[0] == ':' {
		return value.KeywordString(tok), atomMap(start, end), nil
	}

	if looksNumeric(tok) {
		isInt, i, r, ok := parseNumber(tok)
		if ok {
			if isInt {
				return value.Int(i), atomMap(start, end), nil
			}
			return value.Real(r), atomMap(start, end), nil
		}
	}

	if tok[0] >= '0' && tok[0] <= '9' {
		return value.Nil, SourceMap{}, p.errorf(msgSymNoDigits)
	}

	return value.SymString(tok), atomMap(start, end), nil
}
