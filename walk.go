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

// A Cursor describes a [Token] encountered during [Walk].
type Cursor struct {
	token  *Token
	parent *Token
	depth  int
	base   int
}

// Token returns the current [Token].
func (c *Cursor) Token() *Token {
	return c.token
}

// Parent returns the token whose children contain the current token
// or nil if the current token is at the top level.
func (c *Cursor) Parent() *Token {
	return c.parent
}

// Depth returns the number of ancestors of the current token.
func (c *Cursor) Depth() int {
	return c.depth
}

// Span returns the current token's span
// in the coordinates of the top-level source,
// even for tokens nested inside another token's children.
func (c *Cursor) Span() Span {
	return c.token.Span().Offset(c.base)
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each token before the token's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that token.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each token after the token's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
}

// Walk traverses a token sequence and the tokens' children
// in source order,
// calling [WalkOptions.Pre] and [WalkOptions.Post].
// A nil opts is treated like an empty WalkOptions.
func Walk(tokens []*Token, opts *WalkOptions) {
	type walkFrame struct {
		token  *Token
		parent *Token
		depth  int
		base   int
		post   bool
	}

	if opts == nil {
		opts = new(WalkOptions)
	}
	stack := make([]walkFrame, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{token: tokens[i]})
	}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.token = curr.token
		cursor.parent = curr.parent
		cursor.depth = curr.depth
		cursor.base = curr.base
		if curr.post {
			if opts.Post != nil && !opts.Post(cursor) {
				break
			}
			continue
		}

		if opts.Pre != nil && !opts.Pre(cursor) {
			continue
		}
		curr.post = true
		stack = append(stack, curr)
		n := curr.token.ChildCount()
		if n == 0 {
			continue
		}
		childBase := curr.base + curr.token.BodySpan().Start
		for i := n - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{
				token:  curr.token.Child(i),
				parent: curr.token,
				depth:  curr.depth + 1,
				base:   childBase,
			})
		}
	}
}
