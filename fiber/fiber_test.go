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

package fiber

import (
	"context"
	"testing"
	"time"

	"github.com/db47h/janet-core/value"
)

func TestAwaitReady(t *testing.T) {
	f := New(context.Background(), 1)
	ch := make(chan value.Value, 1)
	ch <- value.Int(42)
	v, err := Await(f, ch, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := v.AsInt()
	if !ok || n != 42 {
		t.Fatalf("want 42, got %#v", v)
	}
}

func TestAwaitTimeoutResolvesToNil(t *testing.T) {
	f := New(context.Background(), 1)
	ch := make(chan value.Value)
	v, err := Await(f, ch, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if v.Kind() != value.KindNil {
		t.Fatalf("want nil on timeout, got %#v", v)
	}
}

func TestSpawnInheritsSupervisor(t *testing.T) {
	root := New(context.Background(), 4)
	child := root.Spawn(func(self *Fiber) (interface{}, error) {
		return "done", nil
	})
	if child.Supervisor != root.Supervisor {
		t.Fatalf("spawned child must inherit parent's supervisor channel")
	}
	select {
	case ev := <-root.Supervisor:
		if ev.Value != "done" {
			t.Fatalf("want event value \"done\", got %v", ev.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for child completion event")
	}
}

func TestSpawnRecoversPanic(t *testing.T) {
	root := New(context.Background(), 4)
	root.Spawn(func(self *Fiber) (interface{}, error) {
		panic("boom")
	})
	select {
	case ev := <-root.Supervisor:
		if ev.Err == nil {
			t.Fatal("want panic to surface as an error event")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panicking child's event")
	}
}
