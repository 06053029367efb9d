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

import "github.com/pkg/errors"

// ErrClosed is returned by operations attempted on a Stream after Close.
var ErrClosed = errors.New("net: stream closed")

// ErrWrongKind is returned when an operation is attempted on a Stream whose
// Flags don't support it (e.g. Read on a listening Stream).
var ErrWrongKind = errors.New("net: operation not supported by this stream kind")
