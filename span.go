// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package notemark

import "fmt"

// Span is a contiguous, half-open range of bytes in a source string.
type Span struct {
	Start int
	End   int
}

// NullSpan returns an invalid span.
func NullSpan() Span {
	return Span{-1, -1}
}

// IsValid reports whether the span's offsets are non-negative
// and Start is not after End.
func (span Span) IsValid() bool {
	return span.Start >= 0 && span.End >= 0 && span.Start <= span.End
}

// Len returns the number of bytes the span covers
// or zero if the span is invalid.
func (span Span) Len() int {
	if !span.IsValid() {
		return 0
	}
	return span.End - span.Start
}

// Offset returns the span moved forward by delta bytes.
func (span Span) Offset(delta int) Span {
	if !span.IsValid() {
		return span
	}
	return Span{
		Start: span.Start + delta,
		End:   span.End + delta,
	}
}

func (span Span) String() string {
	if !span.IsValid() {
		return "[-]"
	}
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}

func spanSlice(s string, span Span) string {
	if !span.IsValid() {
		return ""
	}
	return s[span.Start:span.End]
}
