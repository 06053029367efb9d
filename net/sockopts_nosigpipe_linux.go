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

//go:build linux

package net

// setNoSigpipe is a no-op on Linux: there is no SO_NOSIGPIPE socket option,
// and MSG_NOSIGNAL is not passed either, since net.Conn.Write does not
// expose send flags. A write to a vanished peer does not kill the process:
// the Go runtime leaves SIGPIPE on sockets unhandled, so the write fails
// with EPIPE.
func setNoSigpipe(fd int) error {
	return nil
}
