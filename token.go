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

// Token is a unit of note markup recognized by the [Lexer].
// Tokens are never modified after the lexer creates them.
type Token struct {
	kind   Kind
	span   Span
	raw    string
	text   string
	target string // link/image destination, code-block language, or export value
	unit   string
	level  int // heading level or indent depth
	marker string
	state  TodoState

	// body is the span of the lexed body, relative to the start of raw.
	body     Span
	children []*Token
}

// Kind returns the type of token
// or zero if the token is nil.
func (tok *Token) Kind() Kind {
	if tok == nil {
		return 0
	}
	return tok.kind
}

// Span returns the range of the source the token was lexed from
// or [NullSpan] if the token is nil.
// Tokens inside another token's children are positioned
// relative to the start of the parent's [*Token.BodySpan].
func (tok *Token) Span() Span {
	if tok == nil {
		return NullSpan()
	}
	return tok.span
}

// Start returns the offset where the token starts,
// or -1 if the token is nil.
func (tok *Token) Start() int {
	return tok.Span().Start
}

// End returns the offset where the token ends (exclusive),
// or -1 if the token is nil.
func (tok *Token) End() int {
	return tok.Span().End
}

// Raw returns the exact source text the token consumed.
func (tok *Token) Raw() string {
	if tok == nil {
		return ""
	}
	return tok.raw
}

// Text returns the token's primary payload:
//
//   - the value of a [TitleKind] assignment
//   - the name of a [TagKind] (without the leading "#")
//   - the title of a [HeadingKind]
//   - the name of an [ExportKind] assignment
//   - the code of a [CodeBlockKind] or [InlineCodeKind]
//   - the text of a [LinkKind] or the alt text of an [ImageKind]
//   - the unlexed body of emphasis, list, and todo tokens
//   - the text of a [ParagraphKind]
//   - "\n" for a [LineBreakKind]
//
// Text returns the empty string for any other token.
func (tok *Token) Text() string {
	if tok == nil {
		return ""
	}
	return tok.text
}

// HeadingLevel returns the number of "#" characters
// that introduced a [HeadingKind] token
// or zero for any other token.
func (tok *Token) HeadingLevel() int {
	if tok.Kind() != HeadingKind {
		return 0
	}
	return tok.level
}

// IndentDepth returns the nesting level of a list or todo item,
// its leading white space width divided by the lexer's indent width.
// IndentDepth returns zero for any other token.
func (tok *Token) IndentDepth() int {
	if !tok.Kind().IsItem() {
		return 0
	}
	return tok.level
}

// Marker returns the character that introduced a list item
// ("-", "*", or a single letter or digit)
// or the state character between the brackets of a todo item.
func (tok *Token) Marker() string {
	if tok == nil {
		return ""
	}
	return tok.marker
}

// TodoState returns the check state of a [TodoKind] token
// or zero for any other token.
func (tok *Token) TodoState() TodoState {
	if tok.Kind() != TodoKind {
		return 0
	}
	return tok.state
}

// Language returns the rest of the opening fence line
// of a [CodeBlockKind] token.
func (tok *Token) Language() string {
	if tok.Kind() != CodeBlockKind {
		return ""
	}
	return tok.target
}

// Target returns the destination of a [LinkKind] or [ImageKind] token.
func (tok *Token) Target() string {
	if k := tok.Kind(); k != LinkKind && k != ImageKind {
		return ""
	}
	return tok.target
}

// ExportValue returns the digits of an [ExportKind] assignment.
func (tok *Token) ExportValue() string {
	if tok.Kind() != ExportKind {
		return ""
	}
	return tok.target
}

// ExportUnit returns the unit suffix of an [ExportKind] assignment.
func (tok *Token) ExportUnit() string {
	if tok.Kind() != ExportKind {
		return ""
	}
	return tok.unit
}

// BodySpan returns the span of the token's body
// in the same coordinates as [*Token.Span].
// The spans of the token's children are relative to the start of BodySpan.
// BodySpan returns [NullSpan] for tokens without a lexed body.
func (tok *Token) BodySpan() Span {
	if tok == nil || !tok.body.IsValid() {
		return NullSpan()
	}
	return tok.body.Offset(tok.span.Start)
}

// Children returns the tokens lexed from the token's body.
func (tok *Token) Children() []*Token {
	if tok == nil {
		return nil
	}
	return tok.children
}

// ChildCount returns the number of children the token has.
// Calling ChildCount on nil returns 0.
func (tok *Token) ChildCount() int {
	if tok == nil {
		return 0
	}
	return len(tok.children)
}

// Child returns the i'th child of the token.
func (tok *Token) Child(i int) *Token {
	return tok.children[i]
}

func (tok *Token) String() string {
	if tok == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v%v %q", tok.kind, tok.span, tok.raw)
}

// Kind is an enumeration of values returned by [*Token.Kind].
type Kind uint16

const (
	TitleKind Kind = 1 + iota
	TagKind
	HeadingKind
	ExportKind
	CodeBlockKind
	InlineCodeKind
	BoldKind
	ItalicsKind
	StrikethroughKind
	HighlightKind
	LinkKind
	ImageKind
	BulletedListKind
	AlphanumericListKind
	TodoKind
	HorizontalRuleKind
	LineBreakKind
	ParagraphKind

	maxKind
)

var kindNames = [maxKind]string{
	TitleKind:            "title",
	TagKind:              "tag",
	HeadingKind:          "heading",
	ExportKind:           "export",
	CodeBlockKind:        "code-block",
	InlineCodeKind:       "inline-code",
	BoldKind:             "bold",
	ItalicsKind:          "italics",
	StrikethroughKind:    "strikethrough",
	HighlightKind:        "highlight",
	LinkKind:             "link",
	ImageKind:            "image",
	BulletedListKind:     "bulleted-list",
	AlphanumericListKind: "alphanumeric-list",
	TodoKind:             "todo",
	HorizontalRuleKind:   "horizontal-rule",
	LineBreakKind:        "line-break",
	ParagraphKind:        "paragraph",
}

func (k Kind) String() string {
	if k == 0 || k >= maxKind {
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
	return kindNames[k]
}

// IsItem reports whether k is a list or todo item kind.
func (k Kind) IsItem() bool {
	return k == BulletedListKind || k == AlphanumericListKind || k == TodoKind
}

// IsEmphasis reports whether k is a bold, italics,
// strikethrough, or highlight kind.
func (k Kind) IsEmphasis() bool {
	return k == BoldKind || k == ItalicsKind || k == StrikethroughKind || k == HighlightKind
}

// TodoState is the check state of a todo item.
type TodoState uint8

const (
	// TodoOpen is written as "[ ]".
	TodoOpen TodoState = 1 + iota
	// TodoDone is written as "[x]" or "[X]".
	TodoDone
	// TodoIndeterminate is written as "[~]".
	TodoIndeterminate
)

func (state TodoState) String() string {
	switch state {
	case TodoOpen:
		return "open"
	case TodoDone:
		return "done"
	case TodoIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("TodoState(%d)", uint8(state))
	}
}

func todoStateFor(c byte) TodoState {
	switch c {
	case ' ':
		return TodoOpen
	case 'x', 'X':
		return TodoDone
	case '~':
		return TodoIndeterminate
	default:
		return 0
	}
}
