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

package netmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollectorAccumulates(t *testing.T) {
	c := New()
	c.StreamOpened("connect")
	c.StreamOpened("connect")
	c.ListenerOpened("tcp")
	c.ConnectionAccepted()
	c.BytesRead(100)
	c.BytesWritten(50)

	if c.streamsOpened["connect"] != 2 {
		t.Errorf("streamsOpened[connect] = %d, want 2", c.streamsOpened["connect"])
	}
	if c.bytesRead != 100 || c.bytesWritten != 50 {
		t.Errorf("bytesRead=%d bytesWritten=%d, want 100/50", c.bytesRead, c.bytesWritten)
	}
}

func TestCollectorImplementsPrometheusCollector(t *testing.T) {
	var _ prometheus.Collector = New()
}
