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

// Package value implements the tagged value union consumed and produced by
// the reader and net packages: nil, booleans, 32-bit integers, reals,
// strings, symbols, keywords, tuples, arrays, structs, tables, and opaque
// abstract/function/fiber/stream handles.
//
// The reader and net packages treat the value system as an external
// collaborator; this package is its concrete, in-module implementation.
package value

import "fmt"

// Kind discriminates the variants of Value.
type Kind uint8

// Value variants.
const (
	KindNil Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindString
	KindSymbol
	KindKeyword
	KindTuple
	KindArray
	KindStruct
	KindTable
	KindAbstract
	KindFunction
	KindFiber
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindKeyword:
		return "keyword"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindTable:
		return "table"
	case KindAbstract:
		return "abstract"
	case KindFunction:
		return "function"
	case KindFiber:
		return "fiber"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Value is a single tagged runtime value. The zero Value is KindNil.
//
// Tuples and arrays share the seq field; tuples are conventionally never
// mutated after construction, arrays may be extended via AppendArray. Structs and tables share the assoc field the same way.
type Value struct {
	kind    Kind
	boolean bool
	integer int32
	real    float64
	bytes   []byte
	seq     []Value
	assoc   *Assoc
	payload interface{}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// Nil is the canonical nil value.
var Nil = Value{kind: KindNil}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Int wraps a 32-bit signed integer, the only integer width the reader
// produces.
func Int(n int32) Value { return Value{kind: KindInteger, integer: n} }

// Real wraps a double-precision float.
func Real(f float64) Value { return Value{kind: KindReal, real: f} }

// Str wraps an immutable string value. The byte slice is not copied;
// callers must not mutate it afterwards.
func Str(b []byte) Value { return Value{kind: KindString, bytes: b} }

// StrString is a convenience wrapper around Str for Go string literals.
func StrString(s string) Value { return Str([]byte(s)) }

// Sym wraps a symbol.
func Sym(b []byte) Value { return Value{kind: KindSymbol, bytes: b} }

// SymString is a convenience wrapper around Sym for Go string literals.
func SymString(s string) Value { return Sym([]byte(s)) }

// Keyword wraps a keyword value (by convention, a symbol whose first byte is
// ':'; the reader does not special-case this, per spec.md's open question on
// the symbol character class).
func Keyword(b []byte) Value { return Value{kind: KindKeyword, bytes: b} }

// KeywordString is a convenience wrapper around Keyword for Go strings.
func KeywordString(s string) Value { return Keyword([]byte(s)) }

// Tuple wraps an immutable ordered sequence.
func Tuple(elems ...Value) Value { return Value{kind: KindTuple, seq: elems} }

// Array wraps a mutable ordered sequence.
func Array(elems ...Value) Value { return Value{kind: KindArray, seq: elems} }

// AppendArray appends elem to the array value v and returns the extended
// Value; the caller's copy of v keeps its old length. Panics if v is not a
// KindArray value.
func AppendArray(v Value, elem Value) Value {
	if v.kind != KindArray {
		panic("value: AppendArray on non-array")
	}
	v.seq = append(v.seq, elem)
	return v
}

// Struct wraps an immutable key/value map built from entries. Odd-length
// semantics (an unmatched key) are the caller's responsibility; the reader
// enforces evenness before calling this.
func Struct(entries []Entry) Value {
	return Value{kind: KindStruct, assoc: newAssoc(entries)}
}

// Table wraps a mutable key/value map.
func Table(entries []Entry) Value {
	return Value{kind: KindTable, assoc: newAssoc(entries)}
}

// Abstract wraps an opaque host-typed payload (e.g. *net.Address) along with
// a type name used purely for diagnostics.
func Abstract(typeName string, payload interface{}) Value {
	return Value{kind: KindAbstract, bytes: []byte(typeName), payload: payload}
}

// Stream wraps an opaque stream payload (e.g. *net.Stream).
func Stream(payload interface{}) Value {
	return Value{kind: KindStream, payload: payload}
}

// Fiber wraps an opaque fiber payload (e.g. *fiber.Fiber).
func Fiber(payload interface{}) Value {
	return Value{kind: KindFiber, payload: payload}
}

// Function wraps an opaque callable payload.
func Function(payload interface{}) Value {
	return Value{kind: KindFunction, payload: payload}
}

// AsBool returns the boolean payload and whether v is a KindBoolean.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBoolean }

// AsInt returns the integer payload and whether v is a KindInteger.
func (v Value) AsInt() (int32, bool) { return v.integer, v.kind == KindInteger }

// AsReal returns the real payload and whether v is a KindReal.
func (v Value) AsReal() (float64, bool) { return v.real, v.kind == KindReal }

// AsBytes returns the byte payload for string/symbol/keyword values.
func (v Value) AsBytes() ([]byte, bool) {
	switch v.kind {
	case KindString, KindSymbol, KindKeyword:
		return v.bytes, true
	default:
		return nil, false
	}
}

// AsSeq returns the element slice for tuple/array values.
func (v Value) AsSeq() ([]Value, bool) {
	switch v.kind {
	case KindTuple, KindArray:
		return v.seq, true
	default:
		return nil, false
	}
}

// AsAssoc returns the underlying Assoc for struct/table values.
func (v Value) AsAssoc() (*Assoc, bool) {
	switch v.kind {
	case KindStruct, KindTable:
		return v.assoc, true
	default:
		return nil, false
	}
}

// Payload returns the opaque payload for abstract/function/fiber/stream
// values.
func (v Value) Payload() interface{} { return v.payload }

// TypeName returns the abstract type name set by Abstract.
func (v Value) TypeName() string {
	if v.kind != KindAbstract {
		return ""
	}
	return string(v.bytes)
}

// GoString supports %#v and friends for debugging.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value{%s: %s}", v.kind, v.String())
}
