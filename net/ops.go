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
	"context"
	"net"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/db47h/janet-core/fiber"
	"github.com/db47h/janet-core/netmetrics"
	"github.com/db47h/janet-core/value"
)

// Connect dials addr and returns a connected Stream, suspending f's fiber
// until the dial resolves (addresses are tried in order, as
// ResolveAddress can return more than one candidate) or times out.
func Connect(f *fiber.Fiber, addrs []Address, timeout time.Duration) (*Stream, error) {
	if len(addrs) == 0 {
		return nil, errors.New("net: connect: no addresses to try")
	}
	type result struct {
		conn net.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var lastErr error
		for _, a := range addrs {
			dialStr, err := a.DialString()
			if err != nil {
				lastErr = err
				continue
			}
			c, err := net.Dial(a.NetworkName(), dialStr)
			if err == nil {
				done <- result{conn: c}
				return
			}
			lastErr = err
		}
		done <- result{err: lastErr}
	}()

	ready := make(chan value.Value, 1)
	go func() {
		r := <-done
		if r.err != nil {
			ready <- value.Nil
			return
		}
		ready <- value.Stream(newConnStream(r.conn))
	}()

	v, err := fiber.Await(f, ready, timeout)
	if err != nil {
		return nil, errors.Wrap(err, "net: connect")
	}
	if v.Kind() != value.KindStream {
		return nil, errors.Errorf("net: connect: timed out or failed dialing %v", addrs)
	}
	s := v.Payload().(*Stream)
	netmetrics.Default.StreamOpened("connect")
	return s, nil
}

// Listen binds addr and returns a listening (acceptable) Stream. For a
// datagram address, this is a UDP-server Stream instead; for a stream
// address, serverify is applied first so a restarted process can rebind
// immediately. backlog is not applied: the listen queue length is the one
// the standard net package chooses.
func Listen(addr Address, backlog int) (*Stream, error) {
	dialStr, err := addr.DialString()
	if err != nil {
		return nil, errors.Wrap(err, "net: listen")
	}

	if addr.Socket == SocketDatagram {
		pc, err := net.ListenPacket(addr.NetworkName(), dialStr)
		if err != nil {
			return nil, errors.Wrap(err, "net: listen udp")
		}
		s := newPacketStream(pc)
		netmetrics.Default.ListenerOpened("udp")
		return s, nil
	}

	lc := net.ListenConfig{
		Control: func(network, address string, rc syscall.RawConn) error {
			if err := serverify(rc); err != nil {
				return err
			}
			return disableSigpipe(rc)
		},
	}
	ln, err := lc.Listen(context.Background(), addr.NetworkName(), dialStr)
	if err != nil {
		return nil, errors.Wrap(err, "net: listen tcp")
	}
	s := newListenerStream(ln)
	netmetrics.Default.ListenerOpened("tcp")
	return s, nil
}

// Accept accepts a single connection from a listening Stream, suspending
// until one arrives or timeout elapses. The accept is tracked as an AsyncOp
// registered on s, so a concurrent Close(s) wakes the waiting fiber with an
// EventClose instead of leaving it blocked on a listener that is never going
// to produce a connection.
func Accept(f *fiber.Fiber, s *Stream, timeout time.Duration) (*Stream, error) {
	if !s.Flags.Has(FlagAcceptable) {
		return nil, errors.New("net: accept: stream is not acceptable")
	}

	op := NewAsyncOp(s)
	s.registerOp(op)
	defer s.deregisterOp(op)

	ready := make(chan value.Value, 1)
	op.Bind(EventComplete, func(o *AsyncOp, kind EventKind) bool {
		ready <- o.Result.(value.Value)
		return true
	})
	op.Bind(EventClose, func(o *AsyncOp, kind EventKind) bool {
		ready <- value.Nil
		return true
	})

	go func() {
		c, err := s.ln.Accept()
		var v value.Value
		if err != nil {
			v = value.Nil
		} else {
			v = value.Stream(newConnStream(c))
		}
		op.Result = v
		op.Dispatch(EventComplete)
	}()

	v, err := fiber.Await(f, ready, timeout)
	if err != nil {
		op.Mark()
		return nil, errors.Wrap(err, "net: accept")
	}
	if v.Kind() != value.KindStream {
		return nil, nil // timeout or close: spec requires nil, not an error
	}
	conn := v.Payload().(*Stream)
	netmetrics.Default.ConnectionAccepted()
	return conn, nil
}

// AcceptLoop repeatedly accepts connections on s and spawns handler as a
// child fiber of f for each one, inheriting f's Supervisor channel so the
// caller can observe every connection fiber's completion in one place. It
// runs until f's context is cancelled or s is closed.
func AcceptLoop(f *fiber.Fiber, s *Stream, acceptTimeout time.Duration, handler func(conn *fiber.Fiber, c *Stream) (interface{}, error)) {
	for {
		select {
		case <-f.Context().Done():
			return
		default:
		}
		conn, err := Accept(f, s, acceptTimeout)
		if err != nil {
			return
		}
		if conn == nil {
			if s.Closed() {
				return
			}
			continue
		}
		f.Spawn(func(child *fiber.Fiber) (interface{}, error) {
			return handler(child, conn)
		})
	}
}

// Read reads up to n bytes, suspending until data arrives, the peer closes,
// or timeout elapses. n<=0 means "whatever a single read returns." The read
// is tracked as an AsyncOp registered on s so a concurrent Close(s) dispatches
// EventClose and wakes the waiting fiber immediately.
func Read(f *fiber.Fiber, s *Stream, n int, timeout time.Duration) ([]byte, error) {
	if !s.Flags.Has(FlagReadable) {
		return nil, errors.New("net: read: stream is not readable")
	}
	s.readMu.Lock()
	defer s.readMu.Unlock()

	if n <= 0 {
		n = 4096
	}

	op := NewAsyncOp(s)
	s.registerOp(op)
	defer s.deregisterOp(op)

	ready := make(chan value.Value, 1)
	op.Bind(EventRead, func(o *AsyncOp, kind EventKind) bool {
		ready <- o.Result.(value.Value)
		return true
	})
	op.Bind(EventClose, func(o *AsyncOp, kind EventKind) bool {
		ready <- value.Nil
		return true
	})

	go func() {
		buf := make([]byte, n)
		k, err := s.conn.Read(buf)
		var v value.Value
		if err != nil && k == 0 {
			v = value.Nil
		} else {
			v = value.Str(buf[:k])
		}
		op.Result = v
		op.Dispatch(EventRead)
	}()

	v, err := fiber.Await(f, ready, timeout)
	if err != nil {
		op.Mark()
		return nil, errors.Wrap(err, "net: read")
	}
	if v.Kind() != value.KindString {
		return nil, nil
	}
	b, _ := v.AsBytes()
	netmetrics.Default.BytesRead(len(b))
	return b, nil
}

// Chunk reads until exactly n bytes have been read or the peer closes,
// suspending between underlying reads as needed — the "read a whole
// message" counterpart to Read's "read whatever's available."
func Chunk(f *fiber.Fiber, s *Stream, n int, timeout time.Duration) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		chunk, err := Read(f, s, n-len(out), timeout)
		if err != nil {
			return out, err
		}
		if chunk == nil {
			break
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// Write writes all of b, suspending between partial writes as needed. Each
// partial write is tracked as an AsyncOp registered on s so a concurrent
// Close(s) dispatches EventClose and wakes the waiting fiber immediately
// instead of leaving it blocked on a connection that is gone.
func Write(f *fiber.Fiber, s *Stream, b []byte, timeout time.Duration) error {
	if !s.Flags.Has(FlagWritable) {
		return errors.New("net: write: stream is not writable")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	total := 0
	for total < len(b) {
		op := NewAsyncOp(s)
		s.registerOp(op)

		ready := make(chan value.Value, 1)
		op.Bind(EventWrite, func(o *AsyncOp, kind EventKind) bool {
			ready <- o.Result.(value.Value)
			return true
		})
		op.Bind(EventClose, func(o *AsyncOp, kind EventKind) bool {
			ready <- value.Nil
			return true
		})

		remaining := b[total:]
		go func() {
			k, err := s.conn.Write(remaining)
			var v value.Value
			if err != nil && k == 0 {
				v = value.Nil
			} else {
				v = value.Int(int32(k))
			}
			op.Result = v
			op.Dispatch(EventWrite)
		}()
		v, err := fiber.Await(f, ready, timeout)
		s.deregisterOp(op)
		if err != nil {
			op.Mark()
			return errors.Wrap(err, "net: write")
		}
		if v.Kind() != value.KindInteger {
			return errors.New("net: write: timed out or connection closed")
		}
		k, _ := v.AsInt()
		total += int(k)
		netmetrics.Default.BytesWritten(int(k))
	}
	return nil
}

// RecvFrom reads one datagram from a UDP-server Stream, returning the data
// and the sender's Address.
func RecvFrom(f *fiber.Fiber, s *Stream, n int, timeout time.Duration) ([]byte, Address, error) {
	if !s.Flags.Has(FlagUDPServer) {
		return nil, Address{}, errors.New("net: recv-from: stream is not a udp server")
	}
	if n <= 0 {
		n = 4096
	}
	type result struct {
		data []byte
		addr net.Addr
		err  error
	}
	ready := make(chan result, 1)
	go func() {
		buf := make([]byte, n)
		k, addr, err := s.pconn.ReadFrom(buf)
		ready <- result{data: buf[:k], addr: addr, err: err}
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}
	select {
	case r := <-ready:
		if r.err != nil && len(r.data) == 0 {
			return nil, Address{}, nil
		}
		netmetrics.Default.BytesRead(len(r.data))
		return r.data, addrFromNet(r.addr), nil
	case <-deadline:
		return nil, Address{}, nil
	case <-f.Context().Done():
		return nil, Address{}, f.Context().Err()
	}
}

// SendTo sends b as a single datagram to addr, suspending until the write
// completes or timeout elapses.
func SendTo(f *fiber.Fiber, s *Stream, addr Address, b []byte, timeout time.Duration) error {
	if !s.Flags.Has(FlagUDPServer) {
		return errors.New("net: send-to: stream is not a udp server")
	}
	dialStr, err := addr.DialString()
	if err != nil {
		return errors.Wrap(err, "net: send-to")
	}
	peer, err := net.ResolveUDPAddr(addr.NetworkName(), dialStr)
	if err != nil {
		return errors.Wrap(err, "net: send-to: resolve")
	}

	type result struct {
		n   int
		err error
	}
	ready := make(chan result, 1)
	go func() {
		n, err := s.pconn.WriteTo(b, peer)
		ready <- result{n: n, err: err}
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}
	select {
	case r := <-ready:
		if r.err != nil {
			return errors.Wrap(r.err, "net: send-to: write")
		}
		netmetrics.Default.BytesWritten(r.n)
		return nil
	case <-deadline:
		return errors.New("net: send-to: timed out")
	case <-f.Context().Done():
		return f.Context().Err()
	}
}

// ShutdownMode selects which half (or both) of a full-duplex stream to shut
// down.
type ShutdownMode uint8

const (
	ShutdownBoth ShutdownMode = iota
	ShutdownRead
	ShutdownWrite
)

// Shutdown half- or fully-closes s without releasing its file descriptor,
// retrying on EINTR the way the platform-level implementation this was
// grounded on does. For ShutdownBoth, a connection type with no half-close
// support is closed outright instead.
func Shutdown(s *Stream, mode ShutdownMode) error {
	type closeReader interface{ CloseRead() error }
	type closeWriter interface{ CloseWrite() error }

	if s.conn == nil {
		return errors.New("net: shutdown: stream has no connection")
	}
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		switch mode {
		case ShutdownRead:
			if cr, ok := s.conn.(closeReader); ok {
				err = cr.CloseRead()
			}
		case ShutdownWrite:
			if cw, ok := s.conn.(closeWriter); ok {
				err = cw.CloseWrite()
			}
		default:
			cr, rok := s.conn.(closeReader)
			cw, wok := s.conn.(closeWriter)
			if !rok || !wok {
				err = s.conn.Close()
				break
			}
			if err = cr.CloseRead(); err == nil {
				err = cw.CloseWrite()
			}
		}
		if !isEINTR(err) {
			break
		}
	}
	if err != nil {
		return errors.Wrap(err, "net: shutdown")
	}
	return nil
}

// Flush forces any buffered data out immediately by toggling TCP_NODELAY on
// then off, the same two-step dance used to force a coalesced write out
// without permanently disabling Nagle's algorithm.
func Flush(s *Stream) error {
	if s.conn == nil {
		return errors.New("net: flush: stream has no connection")
	}
	if err := setTCPNoDelay(s.conn, true); err != nil {
		return errors.Wrap(err, "net: flush: enable nodelay")
	}
	if err := setTCPNoDelay(s.conn, false); err != nil {
		return errors.Wrap(err, "net: flush: restore nodelay")
	}
	return nil
}

// LocalName returns the local address of s.
func LocalName(s *Stream) (Address, error) {
	switch {
	case s.conn != nil:
		return addrFromNet(s.conn.LocalAddr()), nil
	case s.ln != nil:
		return addrFromNet(s.ln.Addr()), nil
	case s.pconn != nil:
		return addrFromNet(s.pconn.LocalAddr()), nil
	default:
		return Address{}, errors.New("net: local-name: stream has no handle")
	}
}

// PeerName returns the remote address of a connected Stream.
func PeerName(s *Stream) (Address, error) {
	if s.conn == nil {
		return Address{}, errors.New("net: peer-name: stream is not connected")
	}
	return addrFromNet(s.conn.RemoteAddr()), nil
}

func isEINTR(err error) bool {
	return errors.Is(err, syscall.EINTR)
}

func addrFromNet(a net.Addr) Address {
	if a == nil {
		return Address{}
	}
	switch addr := a.(type) {
	case *net.TCPAddr:
		fam := FamilyInet
		if addr.IP.To4() == nil {
			fam = FamilyInet6
		}
		return Address{Family: fam, IP: addr.IP.String(), Port: addr.Port, Socket: SocketStream}
	case *net.UDPAddr:
		fam := FamilyInet
		if addr.IP.To4() == nil {
			fam = FamilyInet6
		}
		return Address{Family: fam, IP: addr.IP.String(), Port: addr.Port, Socket: SocketDatagram}
	case *net.UnixAddr:
		return Address{Family: FamilyUnix, Path: addr.Name, Socket: SocketStream}
	default:
		return Address{IP: a.String()}
	}
}
