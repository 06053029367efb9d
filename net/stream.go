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

// Package net implements the asynchronous stream layer: connect, listen,
// accept (single-shot and accept-loop), read/write/recv/send, shutdown and
// introspection, all suspending the calling fiber rather than blocking its
// backing goroutine across a genuine wait.
package net

import (
	"net"
	"sync"

	"github.com/rs/xid"
)

// StreamFlags records what operations a Stream supports, mirroring the
// distinction the original made between a plain connected stream, a
// listening (acceptable) stream, and a UDP server stream that both reads and
// writes to arbitrary peers without a fixed remote address.
type StreamFlags uint8

const (
	FlagReadable StreamFlags = 1 << iota
	FlagWritable
	FlagAcceptable
	FlagUDPServer
	FlagSocket
	FlagClosed
)

// Has reports whether all bits in want are set.
func (f StreamFlags) Has(want StreamFlags) bool { return f&want == want }

// Stream wraps one socket handle — a connection, a listening socket, or a
// packet socket — plus the per-direction locks that enforce the ordering
// rule: at most one pending read and one pending write at a time, so a
// fiber can't issue two overlapping reads and get their results crossed.
type Stream struct {
	ID    string
	Flags StreamFlags

	conn   net.Conn
	ln     net.Listener
	pconn  net.PacketConn

	readMu  sync.Mutex
	writeMu sync.Mutex

	opsMu sync.Mutex
	ops   map[*AsyncOp]struct{}

	closeOnce sync.Once
	closeErr  error
}

// newStream allocates a Stream with a fresh sortable xid ID.
func newStream(flags StreamFlags) *Stream {
	return &Stream{ID: xid.New().String(), Flags: flags}
}

func newConnStream(c net.Conn) *Stream {
	s := newStream(FlagReadable | FlagWritable | FlagSocket)
	s.conn = c
	return s
}

func newListenerStream(l net.Listener) *Stream {
	s := newStream(FlagAcceptable | FlagSocket)
	s.ln = l
	return s
}

func newPacketStream(p net.PacketConn) *Stream {
	s := newStream(FlagReadable | FlagWritable | FlagUDPServer | FlagSocket)
	s.pconn = p
	return s
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool { return s.Flags.Has(FlagClosed) }

// registerOp adds op to the set of operations pending on s, so that a
// concurrent Close can reach it with an EventClose.
func (s *Stream) registerOp(op *AsyncOp) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if s.ops == nil {
		s.ops = make(map[*AsyncOp]struct{})
	}
	s.ops[op] = struct{}{}
}

// deregisterOp removes op once it has produced a result (or been closed)
// and no longer needs to hear about this stream's lifecycle.
func (s *Stream) deregisterOp(op *AsyncOp) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	delete(s.ops, op)
}

// Close closes the underlying handle exactly once; subsequent calls return
// the first close's result. Any operations still registered on s — a
// pending accept, read or write — are dispatched an EventClose so the fiber
// waiting on them wakes instead of blocking forever on a handle that just
// went away out from under it.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.Flags |= FlagClosed

		s.opsMu.Lock()
		pending := make([]*AsyncOp, 0, len(s.ops))
		for op := range s.ops {
			pending = append(pending, op)
		}
		s.opsMu.Unlock()
		for _, op := range pending {
			op.Close()
		}

		switch {
		case s.conn != nil:
			s.closeErr = s.conn.Close()
		case s.ln != nil:
			s.closeErr = s.ln.Close()
		case s.pconn != nil:
			s.closeErr = s.pconn.Close()
		}
	})
	return s.closeErr
}
