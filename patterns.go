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
	"strings"
	"unicode"
	"unicode/utf8"
)

// A match is the result of a successful pattern attempt.
// All offsets are absolute offsets into the string being lexed.
type match struct {
	end    int
	fields [3]Span
}

// A matcher attempts to match a pattern starting exactly at src[pos:].
// Matchers keep no state between calls:
// they may look at bytes before pos, but never record anything.
type matcher func(src string, pos int) (m match, ok bool)

type pattern struct {
	kind  Kind
	match matcher
}

// Captured fields by kind:
//
//	title              value
//	export             name, value, unit
//	code-block         language, code
//	inline-code        code
//	horizontal-rule    -
//	list items         indent, marker, body
//	todo               indent, state, body
//	emphasis           body
//	link, image        text, target
//	tag                name
//	heading            hashes, text
var (
	titlePattern            = &pattern{kind: TitleKind, match: matchTitle}
	exportPattern           = &pattern{kind: ExportKind, match: matchExport}
	codeBlockPattern        = &pattern{kind: CodeBlockKind, match: matchCodeBlock}
	inlineCodePattern       = &pattern{kind: InlineCodeKind, match: matchInlineCode}
	horizontalRulePattern   = &pattern{kind: HorizontalRuleKind, match: matchHorizontalRule}
	bulletedListPattern     = &pattern{kind: BulletedListKind, match: matchBulletedList}
	alphanumericListPattern = &pattern{kind: AlphanumericListKind, match: matchAlphanumericList}
	todoPattern             = &pattern{kind: TodoKind, match: matchTodo}
	boldPattern             = &pattern{kind: BoldKind, match: delimited("**")}
	italicsPattern          = &pattern{kind: ItalicsKind, match: delimited("__")}
	strikethroughPattern    = &pattern{kind: StrikethroughKind, match: delimited("~~")}
	highlightPattern        = &pattern{kind: HighlightKind, match: delimited("!!")}
	linkPattern             = &pattern{kind: LinkKind, match: matchLink}
	imagePattern            = &pattern{kind: ImageKind, match: matchImage}
	tagPattern              = &pattern{kind: TagKind, match: matchTag}
	headingPattern          = &pattern{kind: HeadingKind, match: matchHeading}
)

// dispatch maps a trigger byte to its candidate patterns in priority order.
var dispatch = [256][]*pattern{
	't':  {titlePattern},
	'e':  {exportPattern},
	'`':  {codeBlockPattern, inlineCodePattern},
	'-':  {horizontalRulePattern, bulletedListPattern},
	' ':  {todoPattern, bulletedListPattern, alphanumericListPattern},
	'\t': {todoPattern, bulletedListPattern, alphanumericListPattern},
	'*':  {boldPattern, bulletedListPattern},
	'[':  {todoPattern, linkPattern},
	'~':  {codeBlockPattern, strikethroughPattern},
	'_':  {italicsPattern},
	'!':  {highlightPattern, imagePattern},
	'#':  {tagPattern, headingPattern},
}

// fallback is tried for bytes without an entry in dispatch.
// The alphanumeric list matcher only succeeds at the start of a line,
// so text like "e.g." in the middle of a sentence stays literal.
var fallback = []*pattern{alphanumericListPattern}

func candidates(c byte) []*pattern {
	if p := dispatch[c]; p != nil {
		return p
	}
	return fallback
}

func matchTitle(src string, pos int) (m match, ok bool) {
	const prefix = `title="`
	if !strings.HasPrefix(src[pos:], prefix) {
		return match{}, false
	}
	start := pos + len(prefix)
	q := strings.LastIndexByte(src[start:lineEnd(src, pos)], '"')
	if q < 1 {
		return match{}, false
	}
	m.fields[0] = Span{start, start + q}
	m.end = start + q + 1
	return m, true
}

func matchExport(src string, pos int) (m match, ok bool) {
	const (
		prefix = "export "
		equals = " = "
	)
	if !strings.HasPrefix(src[pos:], prefix) {
		return match{}, false
	}
	line := src[pos:lineEnd(src, pos)]
	// The name is greedy, so the last assignment on the line wins.
	for i := len(line) - len(equals); i > len(prefix); i-- {
		if !strings.HasPrefix(line[i:], equals) {
			continue
		}
		valueStart := i + len(equals)
		valueEnd := valueStart
		for valueEnd < len(line) && isASCIIDigit(line[valueEnd]) {
			valueEnd++
		}
		unitEnd := valueEnd
		for unitEnd < len(line) && isUnitByte(line[unitEnd]) {
			unitEnd++
		}
		if valueEnd == valueStart || unitEnd == valueEnd {
			continue
		}
		m.fields[0] = Span{pos + len(prefix), pos + i}
		m.fields[1] = Span{pos + valueStart, pos + valueEnd}
		m.fields[2] = Span{pos + valueEnd, pos + unitEnd}
		m.end = pos + unitEnd
		return m, true
	}
	return match{}, false
}

func matchCodeBlock(src string, pos int) (m match, ok bool) {
	if !hasFence(src[pos:]) {
		return match{}, false
	}
	eol := lineEnd(src, pos)
	if eol >= len(src) {
		return match{}, false
	}
	codeStart := eol + 1
	// The code ends with the first newline followed by a fence.
	// Either fence closes the block.
	for k := codeStart; ; {
		i := strings.IndexByte(src[k:], '\n')
		if i < 0 {
			return match{}, false
		}
		nl := k + i
		if hasFence(src[nl+1:]) {
			m.fields[0] = Span{pos + 3, eol}
			m.fields[1] = Span{codeStart, nl + 1}
			m.end = nl + 4
			return m, true
		}
		k = nl + 1
	}
}

func hasFence(s string) bool {
	return strings.HasPrefix(s, "```") || strings.HasPrefix(s, "~~~")
}

func matchInlineCode(src string, pos int) (m match, ok bool) {
	if src[pos] != '`' {
		return match{}, false
	}
	i := pos + 1
	for i < len(src) && src[i] != '`' && src[i] != '\n' {
		i++
	}
	if i == pos+1 || i >= len(src) || src[i] != '`' {
		return match{}, false
	}
	m.fields[0] = Span{pos + 1, i}
	m.end = i + 1
	return m, true
}

func matchHorizontalRule(src string, pos int) (m match, ok bool) {
	if !isLineStart(src, pos) || !strings.HasPrefix(src[pos:], "---") {
		return match{}, false
	}
	end := pos + 3
	if end < len(src) && src[end] != '\n' && src[end] != '\r' {
		return match{}, false
	}
	m.end = end
	return m, true
}

func matchBulletedList(src string, pos int) (m match, ok bool) {
	return matchListItem(src, pos, func(s string) int {
		if s[0] == '-' || s[0] == '*' {
			return 1
		}
		return 0
	})
}

func matchAlphanumericList(src string, pos int) (m match, ok bool) {
	return matchListItem(src, pos, func(s string) int {
		if len(s) >= 2 && isASCIIAlphanumeric(s[0]) && s[1] == '.' {
			return 2
		}
		return 0
	})
}

// matchListItem matches an indented list item at the start of a line.
// marker reports the length of the list marker at the start of its argument,
// or zero if there is none.
// The marker's first byte becomes the item's marker field.
func matchListItem(src string, pos int, marker func(string) int) (m match, ok bool) {
	if !isLineStart(src, pos) {
		return match{}, false
	}
	eol := lineEnd(src, pos)
	indentEnd := skipIndent(src, pos, eol)
	if indentEnd >= eol {
		return match{}, false
	}
	n := marker(src[indentEnd:eol])
	if n == 0 {
		return match{}, false
	}
	body, ok := listItemBody(src, indentEnd+n, eol)
	if !ok {
		return match{}, false
	}
	m.fields[0] = Span{pos, indentEnd}
	m.fields[1] = Span{indentEnd, indentEnd + 1}
	m.fields[2] = body
	m.end = eol
	return m, true
}

// listItemBody returns the span of a list item's body
// after skipping spaces that follow the marker.
// The body always has at least one byte,
// so a marker followed only by spaces keeps the last space as its body.
func listItemBody(src string, start, eol int) (Span, bool) {
	i := start
	for i < eol && src[i] == ' ' {
		i++
	}
	if i == eol {
		if i == start {
			return Span{}, false
		}
		i--
	}
	return Span{i, eol}, true
}

func matchTodo(src string, pos int) (m match, ok bool) {
	if !isLineStart(src, pos) {
		return match{}, false
	}
	eol := lineEnd(src, pos)
	i := skipIndent(src, pos, eol)
	if i+4 > eol || src[i] != '[' || src[i+2] != ']' || src[i+3] != ' ' {
		return match{}, false
	}
	if todoStateFor(src[i+1]) == 0 {
		return match{}, false
	}
	body := Span{i + 4, eol}
	if strings.TrimSpace(spanSlice(src, body)) == "" {
		return match{}, false
	}
	m.fields[0] = Span{pos, i}
	m.fields[1] = Span{i + 1, i + 2}
	m.fields[2] = body
	m.end = eol
	return m, true
}

// delimited returns a matcher for a span of text
// wrapped in delim on a single line.
// The closing delimiter is the last one on the line.
func delimited(delim string) matcher {
	return func(src string, pos int) (m match, ok bool) {
		if !strings.HasPrefix(src[pos:], delim) {
			return match{}, false
		}
		eol := lineEnd(src, pos)
		bodyStart := pos + len(delim)
		if bodyStart+1 > eol {
			return match{}, false
		}
		i := strings.LastIndex(src[bodyStart+1:eol], delim)
		if i < 0 {
			return match{}, false
		}
		closer := bodyStart + 1 + i
		m.fields[0] = Span{bodyStart, closer}
		m.end = closer + len(delim)
		return m, true
	}
}

func matchLink(src string, pos int) (m match, ok bool) {
	if src[pos] != '[' || pos > 0 && src[pos-1] == '!' {
		return match{}, false
	}
	return matchReference(src, pos, pos+1)
}

func matchImage(src string, pos int) (m match, ok bool) {
	if !strings.HasPrefix(src[pos:], "![") {
		return match{}, false
	}
	return matchReference(src, pos, pos+2)
}

// matchReference matches the "text](target)" portion of a link or image.
func matchReference(src string, pos, textStart int) (m match, ok bool) {
	eol := lineEnd(src, pos)
	i := strings.Index(src[textStart:eol], "](")
	if i < 0 {
		return match{}, false
	}
	textEnd := textStart + i
	targetStart := textEnd + 2
	j := strings.IndexByte(src[targetStart:eol], ')')
	if j < 0 {
		return match{}, false
	}
	m.fields[0] = Span{textStart, textEnd}
	m.fields[1] = Span{targetStart, targetStart + j}
	m.end = targetStart + j + 1
	return m, true
}

func matchTag(src string, pos int) (m match, ok bool) {
	if src[pos] != '#' {
		return match{}, false
	}
	if pos > 0 && strings.IndexByte("#[(", src[pos-1]) >= 0 {
		return match{}, false
	}
	end := pos + 1
	for end < len(src) {
		c, size := utf8.DecodeRuneInString(src[end:])
		if c == '#' || unicode.IsSpace(c) {
			break
		}
		end += size
	}
	if end == pos+1 {
		return match{}, false
	}
	m.fields[0] = Span{pos + 1, end}
	m.end = end
	return m, true
}

func matchHeading(src string, pos int) (m match, ok bool) {
	if src[pos] != '#' || pos > 0 && src[pos-1] == '`' {
		return match{}, false
	}
	i := pos
	for i < len(src) && src[i] == '#' {
		i++
	}
	if i >= len(src) || src[i] != ' ' {
		return match{}, false
	}
	eol := lineEnd(src, i)
	m.fields[0] = Span{pos, i}
	m.fields[1] = Span{i + 1, eol}
	m.end = eol
	return m, true
}

// lineEnd returns the offset of the first newline at or after pos,
// or len(src) if there is none.
func lineEnd(src string, pos int) int {
	i := strings.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i
}

func isLineStart(src string, pos int) bool {
	return pos == 0 || src[pos-1] == '\n'
}

func skipIndent(src string, pos, end int) int {
	for pos < end && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	return pos
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIAlphanumeric(c byte) bool {
	return isASCIIDigit(c) || isASCIILetter(c)
}

func isUnitByte(c byte) bool {
	return isASCIILetter(c) || c == '.'
}
