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
	"testing"
	"time"

	"github.com/db47h/janet-core/fiber"
)

func TestConnectAcceptEcho(t *testing.T) {
	ln, err := Listen(Address{Family: FamilyInet, IP: "127.0.0.1", Port: 0, Socket: SocketStream}, 16)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	local, err := LocalName(ln)
	if err != nil {
		t.Fatalf("LocalName: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	root := fiber.New(ctx, 4)

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := Accept(root, ln, 3*time.Second)
		if err != nil || conn == nil {
			t.Errorf("Accept: conn=%v err=%v", conn, err)
			return
		}
		defer conn.Close()
		buf, err := Read(root, conn, 0, 3*time.Second)
		if err != nil {
			t.Errorf("server Read: %v", err)
			return
		}
		if err := Write(root, conn, buf, 3*time.Second); err != nil {
			t.Errorf("server Write: %v", err)
		}
	}()

	client := fiber.New(ctx, 1)
	cs, err := Connect(client, []Address{local}, 3*time.Second)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cs.Close()

	msg := []byte("hello")
	if err := Write(client, cs, msg, 3*time.Second); err != nil {
		t.Fatalf("client Write: %v", err)
	}
	echoed, err := Read(client, cs, 0, 3*time.Second)
	if err != nil {
		t.Fatalf("client Read: %v", err)
	}
	if string(echoed) != "hello" {
		t.Fatalf("echoed = %q, want %q", echoed, "hello")
	}

	<-serverDone
}

func TestCloseWakesPendingAccept(t *testing.T) {
	ln, err := Listen(Address{Family: FamilyInet, IP: "127.0.0.1", Port: 0, Socket: SocketStream}, 16)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	root := fiber.New(context.Background(), 1)
	done := make(chan struct{})
	var conn *Stream
	var acceptErr error
	go func() {
		defer close(done)
		conn, acceptErr = Accept(root, ln, 0) // no timeout: must be woken by Close
	}()

	time.Sleep(20 * time.Millisecond)
	if err := ln.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Accept did not wake up on Close")
	}
	if acceptErr != nil {
		t.Fatalf("Accept after Close: %v", acceptErr)
	}
	if conn != nil {
		t.Fatalf("want nil stream after listener closed, got %#v", conn)
	}
}

func TestAcceptTimeoutReturnsNilNotError(t *testing.T) {
	ln, err := Listen(Address{Family: FamilyInet, IP: "127.0.0.1", Port: 0, Socket: SocketStream}, 16)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	root := fiber.New(context.Background(), 1)
	conn, err := Accept(root, ln, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Accept timeout must not be an error, got %v", err)
	}
	if conn != nil {
		t.Fatalf("want nil stream on timeout, got %#v", conn)
	}
}
