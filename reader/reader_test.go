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

import (
	"testing"

	"github.com/db47h/janet-core/value"
)

func mustParse(t *testing.T, src string) (value.Value, SourceMap) {
	t.Helper()
	v, m, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q): unexpected error: %v", src, err)
	}
	return v, m
}

func TestParseTuple(t *testing.T) {
	v, m := mustParse(t, "(a b c)")
	seq, ok := v.AsSeq()
	if !ok || len(seq) != 3 {
		t.Fatalf("expected 3-element tuple, got %#v", v)
	}
	for i, want := range []string{"a", "b", "c"} {
		b, ok := seq[i].AsBytes()
		if !ok || string(b) != want {
			t.Errorf("elem %d: want symbol %q, got %#v", i, want, seq[i])
		}
	}
	if !m.IsSeq() || m.Len() != 3 {
		t.Fatalf("sourcemap not structurally parallel: %#v", m)
	}
	start, end := m.Range()
	if start != 0 || end != len("(a b c)") {
		t.Errorf("range = (%d,%d), want (0,%d)", start, end, len("(a b c)"))
	}
}

func TestParseTable(t *testing.T) {
	v, m := mustParse(t, "@{:x 1}")
	if v.Kind() != value.KindTable {
		t.Fatalf("want table, got %s", v.Kind())
	}
	a, ok := v.AsAssoc()
	if !ok || a.Len() != 1 {
		t.Fatalf("expected 1-entry table, got %#v", v)
	}
	val, found := a.Get(value.KeywordString(":x"))
	if !found {
		t.Fatalf("key :x not found")
	}
	n, ok := val.AsInt()
	if !ok || n != 1 {
		t.Errorf("want int 1, got %#v", val)
	}
	if !m.IsAssoc() || m.Len() != 1 {
		t.Fatalf("sourcemap shape wrong: %#v", m)
	}
	if _, ok := m.KeySub(value.KeywordString(":x")); !ok {
		t.Errorf("KeySub(:x) not ok")
	}
	if _, ok := m.ValueSub(value.KeywordString(":x")); !ok {
		t.Errorf("ValueSub(:x) not ok")
	}
	if _, ok := m.KeySub(value.KeywordString(":missing")); ok {
		t.Errorf("KeySub(:missing) should not be found")
	}
}

func TestParseAtAdjacencyIsNotSpecial(t *testing.T) {
	// '@' not immediately followed by '{' is an ordinary symbol character.
	v, _ := mustParse(t, "@foo")
	b, ok := v.AsBytes()
	if !ok || string(b) != "@foo" {
		t.Fatalf("want symbol @foo, got %#v", v)
	}
}

func TestParseHexEscape(t *testing.T) {
	v, _ := mustParse(t, `"a\h41b"`)
	b, ok := v.AsBytes()
	if !ok || string(b) != "aAb" {
		t.Fatalf("want \"aAb\", got %q", b)
	}
}

func TestParseUnknownEscapeErrors(t *testing.T) {
	_, _, err := ParseString(`"ab\qc"`)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Message != msgUnknownStrEscape {
		t.Errorf("message = %q, want %q", pe.Message, msgUnknownStrEscape)
	}
}

func TestParseQuote(t *testing.T) {
	v, m := mustParse(t, "'(1 2)")
	seq, ok := v.AsSeq()
	if !ok || len(seq) != 2 {
		t.Fatalf("want 2-elem wrapper tuple, got %#v", v)
	}
	head, ok := seq[0].AsBytes()
	if !ok || string(head) != "quote" {
		t.Fatalf("want (quote ...), got head %#v", seq[0])
	}
	inner, ok := seq[1].AsSeq()
	if !ok || len(inner) != 2 {
		t.Fatalf("want quoted 2-elem tuple, got %#v", seq[1])
	}
	// Quoting adds no source span of its own: m is the inner tuple's own
	// map, reused verbatim, so its range excludes the leading quote byte.
	if !m.IsSeq() || m.Len() != 2 {
		t.Fatalf("quote sourcemap shape wrong: %#v", m)
	}
	start, end := m.Range()
	if start != 1 || end != len("'(1 2)") {
		t.Errorf("range = (%d,%d), want (1,%d)", start, end, len("'(1 2)"))
	}
}

func TestParseDoubleQuoteNestsWithoutNewMap(t *testing.T) {
	v, m := mustParse(t, "''a")
	seq, ok := v.AsSeq()
	if !ok || len(seq) != 2 {
		t.Fatalf("want (quote (quote a)), got %#v", v)
	}
	inner, ok := seq[1].AsSeq()
	if !ok || len(inner) != 2 {
		t.Fatalf("want inner (quote a), got %#v", seq[1])
	}
	if sym, ok := inner[0].AsBytes(); !ok || string(sym) != "quote" {
		t.Fatalf("want inner quote symbol, got %#v", inner[0])
	}
	// Both quote marks add no span: m is plain "a"'s own atom map.
	if !m.IsAtom() {
		t.Fatalf("want atom sourcemap for doubly-quoted atom, got %#v", m)
	}
	start, end := m.Range()
	if start != 2 || end != 3 {
		t.Errorf("range = (%d,%d), want (2,3)", start, end)
	}
}

func TestParseCommaIsWhitespace(t *testing.T) {
	v, _ := mustParse(t, "(a, b)")
	seq, ok := v.AsSeq()
	if !ok || len(seq) != 2 {
		t.Fatalf("want 2-element tuple, got %#v", v)
	}
	for i, want := range []string{"a", "b"} {
		b, ok := seq[i].AsBytes()
		if !ok || string(b) != want {
			t.Errorf("elem %d: want symbol %q, got %#v", i, want, seq[i])
		}
	}
}

func TestParseSymbolCharsExtendedPunctuation(t *testing.T) {
	for _, src := range []string{"&", "%", "$", "^foo"} {
		v, _, err := ParseString(src)
		if err != nil {
			t.Fatalf("ParseString(%q): unexpected error: %v", src, err)
		}
		b, ok := v.AsBytes()
		if !ok || string(b) != src {
			t.Errorf("ParseString(%q) = %#v, want symbol %q", src, v, src)
		}
	}
}

func TestParseStructOddArgsErrors(t *testing.T) {
	_, _, err := ParseString("{1 2 3}")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Message != msgStructOddArgs {
		t.Errorf("message = %q, want %q", pe.Message, msgStructOddArgs)
	}
}

func TestParseSymbolCannotStartWithDigit(t *testing.T) {
	_, _, err := ParseString("3abc")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Message != msgSymNoDigits {
		t.Errorf("message = %q, want %q", pe.Message, msgSymNoDigits)
	}
}

func TestParseUnexpectedEOS(t *testing.T) {
	_, _, err := ParseString("(a b")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Message != msgUnexpectedEOS {
		t.Errorf("message = %q, want %q", pe.Message, msgUnexpectedEOS)
	}
}

func TestParseAllMultipleForms(t *testing.T) {
	vals, maps, err := ParseAll([]byte("1 2 3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 3 || len(maps) != 3 {
		t.Fatalf("want 3 forms, got %d vals, %d maps", len(vals), len(maps))
	}
}

func TestRoundTripIgnoringMutability(t *testing.T) {
	tuple, _ := mustParse(t, "(1 2 3)")
	arr := value.Array(value.Int(1), value.Int(2), value.Int(3))
	if !value.Equal(tuple, arr) {
		t.Errorf("tuple %#v should equal array %#v ignoring mutability", tuple, arr)
	}

	printed := tuple.String()
	reparsed, _ := mustParse(t, printed)
	if !value.Equal(tuple, reparsed) {
		t.Errorf("round trip failed: %#v != reprint %#v", tuple, reparsed)
	}
}

func TestParseComment(t *testing.T) {
	v, _ := mustParse(t, "1 # a comment\n")
	n, ok := v.AsInt()
	if !ok || n != 1 {
		t.Fatalf("want int 1, got %#v", v)
	}
}
