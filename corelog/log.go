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

// Package corelog provides the leveled logging used throughout this module:
// package-level writers, one per severity, so callers can redirect or mute
// individual levels instead of a single monolithic logger.
package corelog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/db47h/janet-core/internal/ngi"
)

// Level is a log severity, lowest-to-highest.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

// Writers for each level. Any may be set to io.Discard to mute it, or
// redirected to a file/buffer; nil is treated the same as io.Discard. Each
// defaults to an ngi.ErrWriter over the underlying stream so a broken
// destination fails once instead of spamming write errors on every call.
var (
	DebugWriter io.Writer = ngi.NewErrWriter(os.Stderr)
	InfoWriter  io.Writer = ngi.NewErrWriter(os.Stdout)
	WarnWriter  io.Writer = ngi.NewErrWriter(os.Stderr)
	ErrWriter   io.Writer = ngi.NewErrWriter(os.Stderr)
)

func writerFor(l Level) io.Writer {
	switch l {
	case LevelDebug:
		return DebugWriter
	case LevelInfo:
		return InfoWriter
	case LevelWarn:
		return WarnWriter
	case LevelError:
		return ErrWriter
	default:
		return os.Stderr
	}
}

func logf(l Level, format string, args ...interface{}) {
	w := writerFor(l)
	if w == nil {
		return
	}
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s [%s] %s\n", ts, l, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...interface{})  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...interface{})  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...interface{}) { logf(LevelError, format, args...) }
