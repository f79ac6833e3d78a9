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

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTag returns the form of a tag name used to compare tags.
// Two tags are the same if their normalized names are equal.
func NormalizeTag(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// Tags returns the normalized names of the tags in tokens
// (including tags nested in other tokens' children)
// without duplicates, in the order they first appear.
func Tags(tokens []*Token) []string {
	var names []string
	seen := make(map[string]struct{})
	Walk(tokens, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Token().Kind() != TagKind {
				return true
			}
			name := NormalizeTag(c.Token().Text())
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
			return true
		},
	})
	return names
}

// Export is a key/value assignment written as
//
//	export weight = 100Lbs
type Export struct {
	Name  string
	Value string
	Unit  string
	// Span is the location of the assignment in the top-level source.
	Span Span
}

// Exports returns the export assignments in tokens
// (including assignments nested in other tokens' children)
// in source order.
func Exports(tokens []*Token) []Export {
	var exports []Export
	Walk(tokens, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if tok := c.Token(); tok.Kind() == ExportKind {
				exports = append(exports, Export{
					Name:  tok.Text(),
					Value: tok.ExportValue(),
					Unit:  tok.ExportUnit(),
					Span:  c.Span(),
				})
			}
			return true
		},
	})
	return exports
}
