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
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Family discriminates the address families this package resolves.
type Family uint8

const (
	FamilyInet Family = iota
	FamilyInet6
	FamilyUnix
	FamilyUnixAbstract
)

// Address is the resolved, abstract-namespace-aware counterpart of the
// addresses net.Resolve*Addr hands back. It is what net/address produces and
// what Connect, Listen and SendTo consume.
type Address struct {
	Family Family
	IP     string // dotted-decimal or canonical IPv6; empty for unix sockets
	Port   int    // 0 for unix sockets
	Path   string // socket path for unix/unix-abstract; empty otherwise
	Socket SocketType
}

// SocketType distinguishes stream from datagram sockets, mirroring the
// stream/datagram split the original made at the address-resolution stage
// rather than leaving it to Connect/Listen.
type SocketType uint8

const (
	SocketStream SocketType = iota
	SocketDatagram
)

// ResolveAddress resolves host/port (or, for unix sockets, a filesystem or
// abstract-namespace path) into zero or more candidate Addresses, matching
// getaddrinfo's habit of returning a list to try in order. A host beginning
// with '@' denotes a Linux abstract-namespace unix socket, consistent with
// the leading-'@' convention for abstract paths.
func ResolveAddress(host, port string, socket SocketType) ([]Address, error) {
	if strings.HasPrefix(host, "@") || strings.HasPrefix(host, "/") || strings.HasPrefix(host, "./") {
		family := FamilyUnix
		path := host
		if strings.HasPrefix(host, "@") {
			family = FamilyUnixAbstract
			path = host[1:]
		}
		return []Address{{Family: family, Path: path, Socket: socket}}, nil
	}

	network := "tcp"
	if socket == SocketDatagram {
		network = "udp"
	}
	addr := net.JoinHostPort(host, port)
	if port == "" {
		addr = host
	}
	ips, err := net.DefaultResolver.LookupIPAddr(context.Background(), host)
	if err != nil || len(ips) == 0 {
		// Fall back to treating host:port as already resolvable by the
		// standard dialer (e.g. host is a literal IP, or empty for wildcard
		// bind); we don't fail resolution here, we let Connect/Listen
		// surface the real dial error.
		return []Address{{Family: FamilyInet, IP: host, Port: atoiOr0(port), Socket: socket}}, nil
	}

	var out []Address
	for _, ipa := range ips {
		fam := FamilyInet
		if ipa.IP.To4() == nil {
			fam = FamilyInet6
		}
		out = append(out, Address{Family: fam, IP: ipa.IP.String(), Port: atoiOr0(port), Socket: socket})
	}
	_ = network
	_ = addr
	return out, nil
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// String renders the address the way the accept/connection introspection
// operations print it: dotted-decimal/canonical-IPv6 "host:port" for inet
// families, the path for a named unix socket, "@" for an unnamed one, or
// "@" followed by the name for an abstract one.
func (a Address) String() string {
	switch a.Family {
	case FamilyInet, FamilyInet6:
		return net.JoinHostPort(a.IP, strconv.Itoa(a.Port))
	case FamilyUnix:
		if a.Path == "" {
			return "@"
		}
		return a.Path
	case FamilyUnixAbstract:
		return "@" + a.Path
	default:
		return ""
	}
}

// NetworkName maps an Address to the Go network string Dial/Listen expect.
func (a Address) NetworkName() string {
	switch a.Family {
	case FamilyUnix, FamilyUnixAbstract:
		if a.Socket == SocketDatagram {
			return "unixgram"
		}
		return "unix"
	default:
		if a.Socket == SocketDatagram {
			return "udp"
		}
		return "tcp"
	}
}

// DialString renders the address as the string net.Dial/net.Listen expect as
// their second argument.
func (a Address) DialString() (string, error) {
	switch a.Family {
	case FamilyUnix:
		return a.Path, nil
	case FamilyUnixAbstract:
		return "@" + a.Path, nil
	case FamilyInet, FamilyInet6:
		return net.JoinHostPort(a.IP, strconv.Itoa(a.Port)), nil
	default:
		return "", errors.Errorf("net: address has unknown family %d", a.Family)
	}
}
