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

package value

import (
	"strconv"
	"strings"
)

// String renders v back into source text parseable by reader.Parse. It is
// the inverse used by the round-trip property in spec.md §8 (property 1):
// parse(print(v)) == v.
func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNil:
		b.WriteString("nil")
	case KindBoolean:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInteger:
		b.WriteString(strconv.FormatInt(int64(v.integer), 10))
	case KindReal:
		b.WriteString(strconv.FormatFloat(v.real, 'g', -1, 64))
	case KindString:
		writeQuotedString(b, v.bytes)
	case KindSymbol, KindKeyword:
		b.Write(v.bytes)
	case KindTuple:
		writeSeq(b, '(', ')', v.seq)
	case KindArray:
		writeSeq(b, '[', ']', v.seq)
	case KindStruct:
		writeAssoc(b, "{", "}", v.assoc)
	case KindTable:
		writeAssoc(b, "@{", "}", v.assoc)
	default:
		b.WriteString("<" + v.kind.String() + ">")
	}
}

func writeSeq(b *strings.Builder, open, close byte, seq []Value) {
	b.WriteByte(open)
	for i, e := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, e)
	}
	b.WriteByte(close)
}

func writeAssoc(b *strings.Builder, open, close string, a *Assoc) {
	b.WriteString(open)
	for i, e := range a.Entries() {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, e.Key)
		b.WriteByte(' ')
		writeValue(b, e.Val)
	}
	b.WriteString(close)
}

func writeQuotedString(b *strings.Builder, s []byte) {
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case 0:
			b.WriteString(`\0`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case 0x1B:
			b.WriteString(`\e`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}
