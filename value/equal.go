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

// Equal reports structural equality between a and b, ignoring whether a
// sequence/assoc value is conventionally mutable (array vs tuple, table vs
// struct) — testable property 2 in spec.md §8 requires exactly this: a
// parsed array literal compares equal to the same elements built as a
// tuple, and a table compares equal to a struct with the same entries.
func Equal(a, b Value) bool {
	if !sameFamily(a.kind, b.kind) {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBoolean:
		return a.boolean == b.boolean
	case KindInteger:
		return a.integer == b.integer
	case KindReal:
		return a.real == b.real
	case KindString, KindSymbol, KindKeyword:
		return string(a.bytes) == string(b.bytes)
	case KindTuple, KindArray:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindStruct, KindTable:
		if a.assoc.Len() != b.assoc.Len() {
			return false
		}
		for _, e := range a.assoc.Entries() {
			bv, ok := b.assoc.Get(e.Key)
			if !ok || !Equal(e.Val, bv) {
				return false
			}
		}
		return true
	default:
		return a.payload == b.payload
	}
}

// sameFamily groups kinds that Equal treats interchangeably (mutability
// aside): {tuple, array} and {struct, table}. All others must match kind
// exactly.
func sameFamily(a, b Kind) bool {
	if a == b {
		return true
	}
	seq := func(k Kind) bool { return k == KindTuple || k == KindArray }
	assoc := func(k Kind) bool { return k == KindStruct || k == KindTable }
	return (seq(a) && seq(b)) || (assoc(a) && assoc(b))
}
