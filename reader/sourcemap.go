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

import "github.com/db47h/janet-core/value"

// mapShape discriminates the SourceMap variants. A SourceMap always carries
// a byte range; mapShape says what, if anything, hangs off it.
type mapShape uint8

const (
	shapeAtom mapShape = iota
	shapeSeq
	shapeAssoc
)

// kvMap is one key/value pair of submaps inside an associative SourceMap,
// tagged with the parsed key value itself: struct/table SourceMaps are
// looked up by that key, not by position, since a caller holding a value
// like :x generally doesn't know (or care) what insertion order produced it.
type kvMap struct {
	keyValue value.Value
	key      SourceMap
	val      SourceMap
}

// SourceMap records the byte range a parsed form occupied in its source
// text, plus — for sequences and associative forms — one submap per child,
// kept in exact structural parallelism with the parsed value: a tuple/array
// SourceMap has one seq entry per element of the value, in the same order,
// and a struct/table SourceMap has one kv entry per key/value pair of the
// value, in insertion order. This parallelism is what lets the three
// accessors below navigate a SourceMap using the same index or key that
// addresses the parsed value itself.
type SourceMap struct {
	start, end int
	shape      mapShape
	seq        []SourceMap
	assoc      []kvMap
}

// atomMap builds the SourceMap for a leaf form (numbers, strings, symbols,
// keywords, nil/true/false).
func atomMap(start, end int) SourceMap {
	return SourceMap{start: start, end: end, shape: shapeAtom}
}

// seqMap builds the SourceMap for a tuple or array, elems in the same order
// as the value's own elements.
func seqMap(start, end int, elems []SourceMap) SourceMap {
	return SourceMap{start: start, end: end, shape: shapeSeq, seq: elems}
}

// assocMap builds the SourceMap for a struct or table, pairs in insertion
// order matching the value's own entries.
func assocMap(start, end int, pairs []kvMap) SourceMap {
	return SourceMap{start: start, end: end, shape: shapeAssoc, assoc: pairs}
}

// Range returns the half-open [start, end) byte offsets the form occupied in
// the source text fed to the parser.
func (m SourceMap) Range() (start, end int) { return m.start, m.end }

// Len reports the number of submaps for a sequence SourceMap, or the number
// of key/value pairs for an associative one. Zero for an atom.
func (m SourceMap) Len() int {
	switch m.shape {
	case shapeSeq:
		return len(m.seq)
	case shapeAssoc:
		return len(m.assoc)
	default:
		return 0
	}
}

// Index returns the submap of the i'th element of a tuple/array SourceMap.
// ok is false if m is not a sequence SourceMap or i is out of range.
func (m SourceMap) Index(i int) (sub SourceMap, ok bool) {
	if m.shape != shapeSeq || i < 0 || i >= len(m.seq) {
		return SourceMap{}, false
	}
	return m.seq[i], true
}

// KeySub returns the submap of the key half of the entry of a struct/table
// SourceMap whose key value equals key. ok is false if m is not an
// associative SourceMap or no entry's key matches.
func (m SourceMap) KeySub(key value.Value) (sub SourceMap, ok bool) {
	if m.shape != shapeAssoc {
		return SourceMap{}, false
	}
	for _, kv := range m.assoc {
		if value.Equal(kv.keyValue, key) {
			return kv.key, true
		}
	}
	return SourceMap{}, false
}

// ValueSub returns the submap of the value half of the entry of a
// struct/table SourceMap whose key value equals key. ok is false if m is not
// an associative SourceMap or no entry's key matches.
func (m SourceMap) ValueSub(key value.Value) (sub SourceMap, ok bool) {
	if m.shape != shapeAssoc {
		return SourceMap{}, false
	}
	for _, kv := range m.assoc {
		if value.Equal(kv.keyValue, key) {
			return kv.val, true
		}
	}
	return SourceMap{}, false
}

// IsAtom reports whether m has no submaps of its own.
func (m SourceMap) IsAtom() bool { return m.shape == shapeAtom }

// IsSeq reports whether m is a tuple/array SourceMap.
func (m SourceMap) IsSeq() bool { return m.shape == shapeSeq }

// IsAssoc reports whether m is a struct/table SourceMap.
func (m SourceMap) IsAssoc() bool { return m.shape == shapeAssoc }
