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

//go:build !windows

package net

import (
	"net"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// serverify sets SO_REUSEADDR and SO_REUSEPORT on a not-yet-listening
// socket so a restarted server can rebind a recently-closed address
// immediately, and so multiple processes can share one listening port for
// load distribution.
func serverify(rc syscall.RawConn) error {
	var sockErr error
	err := rc.Control(func(fd uintptr) {
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); e != nil {
			sockErr = e
			return
		}
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); e != nil {
			sockErr = e
			return
		}
	})
	if err != nil {
		return errors.Wrap(err, "net: serverify control")
	}
	return errors.Wrap(sockErr, "net: serverify setsockopt")
}

// disableSigpipe suppresses SIGPIPE delivery for writes to a peer that has
// gone away, so a broken connection surfaces as a write error instead of
// terminating the process — the POSIX platforms without MSG_NOSIGNAL rely
// on the socket-level option instead.
func disableSigpipe(rc syscall.RawConn) error {
	var sockErr error
	err := rc.Control(func(fd uintptr) {
		sockErr = setNoSigpipe(int(fd))
	})
	if err != nil {
		return errors.Wrap(err, "net: disableSigpipe control")
	}
	if sockErr != nil {
		return errors.Wrap(sockErr, "net: disableSigpipe setsockopt")
	}
	return nil
}

// setTCPNoDelay toggles Nagle's algorithm, used by Flush to force
// previously buffered writes out immediately and then restore normal
// coalescing behavior.
func setTCPNoDelay(c net.Conn, on bool) error {
	type noDelayer interface{ SetNoDelay(bool) error }
	if nd, ok := c.(noDelayer); ok {
		return nd.SetNoDelay(on)
	}
	return nil
}
