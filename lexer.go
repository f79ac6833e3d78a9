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

// Package notemark provides a lexer for a lightweight note markup language.
//
// Note markup mixes Markdown-like structure
// (headings, emphasis, lists, code fences, links, and images)
// with note-taking extensions:
//
//	title="Groceries"
//	#errands #weekly
//	[ ] buy milk
//	  [x] check the fridge first
//	export budget = 40USD
//	!!remember the coupons!!
//
// [Tokenize] converts a document into a flat sequence of tokens
// that covers the document exactly.
// The bodies of emphasis, list items, and todo items
// are lexed again and stored as the token's children.
package notemark

import (
	"fmt"
	"unicode/utf8"
)

const defaultIndentWidth = 2

// A Lexer converts note markup into tokens.
// The zero value uses the default settings.
type Lexer struct {
	// IndentWidth is the number of white space characters
	// per nesting level of list and todo items.
	// If IndentWidth is zero or negative, 2 is used.
	IndentWidth int
}

// Tokenize converts source into tokens
// using the default settings for [Lexer].
func Tokenize(source string) []*Token {
	return new(Lexer).Tokenize(source)
}

// Tokenize converts source into a sequence of tokens.
// The tokens are contiguous:
// the first token starts at 0,
// each token ends where the next one starts,
// and the last token ends at len(source).
// Every newline outside of a code block
// is its own [LineBreakKind] token.
// Text that does not form any other token
// is collected into [ParagraphKind] tokens.
//
// Tokenize never fails.
// It returns nil for an empty source.
func (l *Lexer) Tokenize(source string) []*Token {
	state := &scanState{
		lexer:          l,
		source:         source,
		paragraphStart: -1,
	}
	for state.pos < len(source) {
		state.step()
	}
	state.flushParagraph()
	return state.tokens
}

func (l *Lexer) indentWidth() int {
	if l == nil || l.IndentWidth <= 0 {
		return defaultIndentWidth
	}
	return l.IndentWidth
}

type scanState struct {
	lexer  *Lexer
	source string
	pos    int
	tokens []*Token

	// paragraphStart is the offset of the first unmatched byte
	// since the last emitted token, or -1 if there is none.
	paragraphStart int
}

func (s *scanState) step() {
	c := s.source[s.pos]
	if c == '\n' {
		s.flushParagraph()
		s.tokens = append(s.tokens, &Token{
			kind: LineBreakKind,
			span: Span{s.pos, s.pos + 1},
			raw:  s.source[s.pos : s.pos+1],
			text: "\n",
			body: NullSpan(),
		})
		s.pos++
		return
	}

	for _, p := range candidates(c) {
		m, ok := p.match(s.source, s.pos)
		if !ok {
			continue
		}
		if m.end <= s.pos || m.end > len(s.source) {
			panic(fmt.Sprintf("internal error: %v match at offset %d ends at %d (source length %d)",
				p.kind, s.pos, m.end, len(s.source)))
		}
		s.flushParagraph()
		s.tokens = append(s.tokens, s.lexer.newToken(s.source, s.pos, p.kind, m))
		s.pos = m.end
		return
	}

	// Literal text. Advance by a whole rune
	// so that paragraph boundaries never split a UTF-8 sequence.
	if s.paragraphStart < 0 {
		s.paragraphStart = s.pos
	}
	_, size := utf8.DecodeRuneInString(s.source[s.pos:])
	s.pos += size
}

func (s *scanState) flushParagraph() {
	if s.paragraphStart < 0 {
		return
	}
	text := s.source[s.paragraphStart:s.pos]
	s.tokens = append(s.tokens, &Token{
		kind: ParagraphKind,
		span: Span{s.paragraphStart, s.pos},
		raw:  text,
		text: text,
		body: NullSpan(),
	})
	s.paragraphStart = -1
}

func (l *Lexer) newToken(src string, start int, kind Kind, m match) *Token {
	tok := &Token{
		kind: kind,
		span: Span{start, m.end},
		raw:  src[start:m.end],
		body: NullSpan(),
	}
	field := func(i int) string {
		return spanSlice(src, m.fields[i])
	}
	switch kind {
	case TitleKind, TagKind, InlineCodeKind:
		tok.text = field(0)
	case ExportKind:
		tok.text = field(0)
		tok.target = field(1)
		tok.unit = field(2)
	case CodeBlockKind:
		tok.target = field(0)
		tok.text = field(1)
	case LinkKind, ImageKind:
		tok.text = field(0)
		tok.target = field(1)
	case HeadingKind:
		tok.level = m.fields[0].Len()
		tok.text = field(1)
	case BoldKind, ItalicsKind, StrikethroughKind, HighlightKind:
		l.lexBody(tok, src, m.fields[0])
	case BulletedListKind, AlphanumericListKind, TodoKind:
		tok.level = m.fields[0].Len() / l.indentWidth()
		tok.marker = field(1)
		if kind == TodoKind {
			tok.state = todoStateFor(tok.marker[0])
		}
		l.lexBody(tok, src, m.fields[2])
	}
	return tok
}

// lexBody stores the body span of tok
// and lexes the body's text into tok's children.
// Child offsets are relative to the body, not to src.
func (l *Lexer) lexBody(tok *Token, src string, body Span) {
	tok.text = spanSlice(src, body)
	tok.body = body.Offset(-tok.span.Start)
	if tok.text == "" {
		return
	}
	tok.children = l.Tokenize(tok.text)
}
