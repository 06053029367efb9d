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

// Command janetcore is a small demonstration harness: it parses source
// files given on the command line and, optionally, runs a fiber-scheduled
// echo server so the net package's accept loop can be exercised end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/db47h/janet-core/corelog"
	"github.com/db47h/janet-core/fiber"
	njet "github.com/db47h/janet-core/net"
	"github.com/db47h/janet-core/reader"
)

// parseList accumulates repeated -parse flags into a slice, the same
// pattern the retro runtime used for its repeated -f flag.
type parseList []string

func (p *parseList) String() string { return fmt.Sprint([]string(*p)) }

func (p *parseList) Set(s string) error {
	*p = append(*p, s)
	return nil
}

var (
	filesToParse parseList
	listenAddr   = flag.String("addr", "", "if set, run an echo server on this address (host:port)")
	acceptDeadline = flag.Duration("accept-timeout", 0, "accept timeout per connection attempt; 0 disables")
)

func init() {
	flag.Var(&filesToParse, "parse", "source file to parse and print (may be repeated)")
}

func main() {
	flag.Parse()

	for _, path := range filesToParse {
		if err := parseAndPrint(path); err != nil {
			corelog.Errorf("parse %s: %v", path, err)
			os.Exit(1)
		}
	}

	if *listenAddr == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		corelog.Infof("shutting down")
		cancel()
	}()
	defer cancel()

	if err := runEchoServer(ctx, *listenAddr); err != nil {
		corelog.Errorf("echo server: %v", err)
		os.Exit(1)
	}
}

func parseAndPrint(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	vals, maps, err := reader.ParseAll(src)
	if err != nil {
		return err
	}
	for i, v := range vals {
		start, end := maps[i].Range()
		fmt.Printf("%s [%d,%d): %s\n", path, start, end, v.String())
	}
	return nil
}

func runEchoServer(ctx context.Context, addr string) error {
	addrs, err := njet.ResolveAddress(hostOf(addr), portOf(addr), njet.SocketStream)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return fmt.Errorf("janetcore: could not resolve %s", addr)
	}

	ln, err := njet.Listen(addrs[0], 1024)
	if err != nil {
		return err
	}
	defer ln.Close()

	local, _ := njet.LocalName(ln)
	corelog.Infof("listening on %s", local.String())

	root := fiber.New(ctx, 64)
	njet.AcceptLoop(root, ln, *acceptDeadline, func(conn *fiber.Fiber, c *njet.Stream) (interface{}, error) {
		peer, _ := njet.PeerName(c)
		corelog.Debugf("accepted %s", peer.String())
		defer c.Close()
		for {
			buf, err := njet.Read(conn, c, 0, 30*time.Second)
			if err != nil {
				return nil, err
			}
			if buf == nil {
				return nil, nil
			}
			if err := njet.Write(conn, c, buf, 30*time.Second); err != nil {
				return nil, err
			}
		}
	})

	<-ctx.Done()
	return nil
}

func hostOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return ""
}
