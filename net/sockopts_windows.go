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

//go:build windows

package net

import (
	"net"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// serverify sets SO_REUSEADDR so a restarted server can rebind a recently
// closed address immediately. Windows has no SO_REUSEPORT equivalent for
// port sharing across processes; serverify does not attempt to emulate one.
func serverify(rc syscall.RawConn) error {
	var sockErr error
	err := rc.Control(func(fd uintptr) {
		sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return errors.Wrap(err, "net: serverify control")
	}
	return errors.Wrap(sockErr, "net: serverify setsockopt")
}

// disableSigpipe is a no-op on Windows: writes to a vanished peer surface as
// a WSAECONNRESET error, not a process signal, so there is nothing to
// suppress.
func disableSigpipe(rc syscall.RawConn) error { return nil }

// setTCPNoDelay toggles Nagle's algorithm, used by Flush.
func setTCPNoDelay(c net.Conn, on bool) error {
	type noDelayer interface{ SetNoDelay(bool) error }
	if nd, ok := c.(noDelayer); ok {
		return nd.SetNoDelay(on)
	}
	return nil
}
