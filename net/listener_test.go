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

package net

import "testing"

func TestAsyncOpDispatchUnboundEventIsNoop(t *testing.T) {
	op := NewAsyncOp(&Stream{})
	done, err := op.Dispatch(EventRead)
	if done || err != nil {
		t.Fatalf("unbound event should be a no-op, got done=%v err=%v", done, err)
	}
}

func TestAsyncOpDispatchMarksDone(t *testing.T) {
	op := NewAsyncOp(&Stream{})
	op.Bind(EventRead, func(o *AsyncOp, kind EventKind) bool {
		return true
	})
	done, err := op.Dispatch(EventRead)
	if !done || err != nil {
		t.Fatalf("want done=true err=nil, got done=%v err=%v", done, err)
	}
	if op.State != StateDone {
		t.Fatalf("want StateDone, got %v", op.State)
	}
}

func TestAsyncOpDispatchRecoversPanic(t *testing.T) {
	op := NewAsyncOp(&Stream{})
	op.Bind(EventWrite, func(o *AsyncOp, kind EventKind) bool {
		panic("boom")
	})
	_, err := op.Dispatch(EventWrite)
	if err == nil {
		t.Fatal("want panic surfaced as error")
	}
	if op.State != StateDone {
		t.Fatalf("want StateDone after panic, got %v", op.State)
	}
}
