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
	"time"

	"github.com/db47h/janet-core/value"
)

// Await suspends the calling goroutine (the fiber body) until ready fires, the
// fiber's context is cancelled, or timeout elapses, whichever comes first. A
// non-positive timeout disables the deadline. A timeout resolves to
// (value.Nil, nil) — not an error — matching how the network layer treats a
// socket wait that simply ran out of time as a normal, expected outcome
// rather than a failure.
func Await(f *Fiber, ready <-chan value.Value, timeout time.Duration) (value.Value, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	select {
	case v := <-ready:
		return v, nil
	case <-deadline:
		return value.Nil, nil
	case <-f.Context().Done():
		return value.Nil, f.Context().Err()
	}
}

// AwaitEvent is Await specialized for a Supervisor channel, used by a fiber
// that spawned children and wants to wait on the next one to finish, or
// time out.
func AwaitEvent(f *Fiber, ch <-chan Event, timeout time.Duration) (Event, bool) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	select {
	case ev := <-ch:
		return ev, true
	case <-deadline:
		return Event{}, false
	case <-f.Context().Done():
		return Event{}, false
	}
}
