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

import "testing"

func TestEqualIgnoresMutability(t *testing.T) {
	tuple := Tuple(Int(1), Int(2))
	arr := Array(Int(1), Int(2))
	if !Equal(tuple, arr) {
		t.Errorf("tuple and array with same elements should be equal")
	}

	st := Struct([]Entry{{Key: KeywordString(":a"), Val: Int(1)}})
	tbl := Table([]Entry{{Key: KeywordString(":a"), Val: Int(1)}})
	if !Equal(st, tbl) {
		t.Errorf("struct and table with same entries should be equal")
	}
}

func TestEqualDistinguishesKindFamilies(t *testing.T) {
	if Equal(Int(1), Real(1)) {
		t.Errorf("integer 1 must not equal real 1.0")
	}
	if Equal(StrString("a"), SymString("a")) {
		t.Errorf("string \"a\" must not equal symbol a")
	}
}

func TestAssocPutOverwritesInPlace(t *testing.T) {
	tbl := Table(nil)
	a, _ := tbl.AsAssoc()
	a.Put(KeywordString(":x"), Int(1))
	a.Put(KeywordString(":x"), Int(2))
	if a.Len() != 1 {
		t.Fatalf("want 1 entry after overwrite, got %d", a.Len())
	}
	v, ok := a.Get(KeywordString(":x"))
	n, _ := v.AsInt()
	if !ok || n != 2 {
		t.Fatalf("want overwritten value 2, got %v (ok=%v)", v, ok)
	}
}

func TestStringRendersReaderSyntax(t *testing.T) {
	v := Tuple(Int(1), StrString("hi\n"), KeywordString(":k"))
	s := v.String()
	if want := `(1 "hi\n" :k)`; s != want {
		t.Fatalf("String() = %q, want %q", s, want)
	}
}
