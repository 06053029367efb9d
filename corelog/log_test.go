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

package corelog

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestInfofWritesToInfoWriter(t *testing.T) {
	var buf bytes.Buffer
	orig := InfoWriter
	InfoWriter = &buf
	defer func() { InfoWriter = orig }()

	Infof("listening on %s", "127.0.0.1:9999")

	out := buf.String()
	if !strings.Contains(out, "[INFO]") || !strings.Contains(out, "127.0.0.1:9999") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestDiscardedLevelWritesNothing(t *testing.T) {
	orig := DebugWriter
	DebugWriter = io.Discard
	defer func() { DebugWriter = orig }()

	Debugf("should not panic or error: %d", 1)
}
