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

import (
	"sync"

	"github.com/pkg/errors"
)

// EventKind identifies what happened to a registered async operation. Read
// and Write cover ordinary stream traffic; Complete covers the
// completion-based backend (Windows-style overlapped I/O); Mark, Close and
// Timeout are the lifecycle events every backend needs regardless of how it
// detects readiness.
type EventKind uint8

const (
	EventMark EventKind = iota
	EventRead
	EventWrite
	EventComplete
	EventClose
	EventTimeout
)

func (k EventKind) String() string {
	switch k {
	case EventMark:
		return "mark"
	case EventRead:
		return "read"
	case EventWrite:
		return "write"
	case EventComplete:
		return "complete"
	case EventClose:
		return "close"
	case EventTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ListenerState tracks where a registered async operation is in its
// lifecycle.
type ListenerState uint8

const (
	StateIdle ListenerState = iota
	StateRegistered
	StateCompleting
	StateDone
)

// Handler reacts to one EventKind for one registered operation. It returns
// done=true once the operation has produced its final result and should be
// deregistered.
type Handler func(op *AsyncOp, kind EventKind) (done bool)

// AsyncOp is one in-flight asynchronous operation on a Stream: an accept,
// a read, a write, or a completion-style operation, depending on which
// backend registered it. This is the Go-idiomatic generalization of a
// per-port handler-map entry: instead of indexing handlers by a numeric
// port, this module indexes them by EventKind against a single registered
// operation, since a Stream only ever has one pending read and one pending
// write at a time (see Stream's per-direction mutexes).
type AsyncOp struct {
	Stream *Stream
	State  ListenerState

	mu       sync.Mutex
	handlers map[EventKind]Handler

	Result interface{}
	Err    error
}

// NewAsyncOp creates a registered operation on s with no handlers bound yet.
func NewAsyncOp(s *Stream) *AsyncOp {
	return &AsyncOp{Stream: s, State: StateRegistered, handlers: make(map[EventKind]Handler)}
}

// Bind installs (overwriting any previous) the handler for kind, the
// vtable-style dispatch table generalizing the per-port input/output/wait
// handler maps: the net backends differ in which events they emit — POSIX
// emits Read/Write, Windows emits Complete — but both drive the same
// Mark/Close/Timeout lifecycle, so a single AsyncOp works unmodified under
// either sockopts_unix.go or sockopts_windows.go.
func (op *AsyncOp) Bind(kind EventKind, h Handler) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.handlers[kind] = h
}

// Dispatch routes kind to its bound handler, if any, and advances op's state
// when the handler reports completion. Dispatch is a no-op (returns false,
// nil) for an event with no bound handler, matching the original's habit of
// silently ignoring events on ports nothing is listening on. It is also a
// no-op once op has reached StateDone: a read that completes after the
// stream was already closed out from under it must not re-deliver a result
// nobody is waiting for anymore.
func (op *AsyncOp) Dispatch(kind EventKind) (done bool, err error) {
	op.mu.Lock()
	if op.State == StateDone {
		op.mu.Unlock()
		return false, nil
	}
	h, ok := op.handlers[kind]
	op.mu.Unlock()
	if !ok {
		return false, nil
	}
	if kind == EventComplete || kind == EventRead || kind == EventWrite {
		op.State = StateCompleting
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("net: async handler panic: %v", r)
			op.State = StateDone
		}
	}()
	done = h(op, kind)
	if done {
		op.State = StateDone
	}
	return done, nil
}

// Mark dispatches EventMark, signalling that the fiber owning this
// operation was cancelled. It has an effect only through an EventMark
// handler; Accept, Read and Write bind none, so for their operations Mark
// changes nothing and their background I/O goroutine keeps running.
func (op *AsyncOp) Mark() {
	op.Dispatch(EventMark)
}

// Close tears the operation down immediately, regardless of state.
func (op *AsyncOp) Close() {
	op.Dispatch(EventClose)
	op.State = StateDone
}
