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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchers(t *testing.T) {
	tests := []struct {
		name    string
		pattern *pattern
		src     string
		pos     int
		// want is the consumed text, or "" if the match should fail.
		want   string
		fields []string
	}{
		{"Title", titlePattern, `title="Foo" rest`, 0, `title="Foo"`, []string{"Foo"}},
		{"TitleNotAnchored", titlePattern, `x title="Foo"`, 0, "", nil},
		{"TitleAtOffset", titlePattern, `x title="Foo"`, 2, `title="Foo"`, []string{"Foo"}},
		{"TitleStopsAtLineEnd", titlePattern, "title=\"a\nb\"", 0, "", nil},

		{"Export", exportPattern, "export bloodGlucose = 89u", 0, "export bloodGlucose = 89u", []string{"bloodGlucose", "89", "u"}},
		{"ExportUnitWithDot", exportPattern, "export speed = 12m.s rest", 0, "export speed = 12m.s", []string{"speed", "12", "m.s"}},
		{"ExportLastAssignmentWins", exportPattern, "export a = 1b = 2c", 0, "export a = 1b = 2c", []string{"a = 1b", "2", "c"}},
		{"ExportNotAnchored", exportPattern, "the export a = 1b", 0, "", nil},
		{"ExportNoName", exportPattern, "export  = 1b", 0, "", nil},

		{"CodeBlock", codeBlockPattern, "```go\nx\n```after", 0, "```go\nx\n```", []string{"go", "x\n"}},
		{"CodeBlockMixedFences", codeBlockPattern, "~~~\nx\n```", 0, "~~~\nx\n```", []string{"", "x\n"}},
		{"CodeBlockFirstClosingFence", codeBlockPattern, "```\na\n```\nb\n```", 0, "```\na\n```", []string{"", "a\n"}},
		{"CodeBlockUnclosed", codeBlockPattern, "```\nx\n", 0, "", nil},
		{"CodeBlockEmpty", codeBlockPattern, "```\n```", 0, "", nil},

		{"InlineCode", inlineCodePattern, "`a b` c", 0, "`a b`", []string{"a b"}},
		{"InlineCodeEmpty", inlineCodePattern, "``", 0, "", nil},
		{"InlineCodeAcrossLines", inlineCodePattern, "`a\nb`", 0, "", nil},

		{"HorizontalRule", horizontalRulePattern, "---\nx", 0, "---", nil},
		{"HorizontalRuleCRLF", horizontalRulePattern, "---\r\n", 0, "---", nil},
		{"HorizontalRuleTrailingText", horizontalRulePattern, "--- x", 0, "", nil},
		{"HorizontalRuleMidLine", horizontalRulePattern, "a\nb ---", 4, "", nil},

		{"BulletedList", bulletedListPattern, "  - item\nnext", 0, "  - item", []string{"  ", "-", "item"}},
		{"BulletedListNoSpace", bulletedListPattern, "-item", 0, "-item", []string{"", "-", "item"}},
		{"BulletedListOnlySpaces", bulletedListPattern, "-   ", 0, "-   ", []string{"", "-", " "}},
		{"BulletedListEmpty", bulletedListPattern, "-\nx", 0, "", nil},
		{"BulletedListMidLine", bulletedListPattern, "a - b", 2, "", nil},

		{"AlphanumericList", alphanumericListPattern, "b. second", 0, "b. second", []string{"", "b", "second"}},
		{"AlphanumericListAfterNewline", alphanumericListPattern, "x\n7.seven", 2, "7.seven", []string{"", "7", "seven"}},
		{"AlphanumericListMidLine", alphanumericListPattern, "see e.g. this", 4, "", nil},
		{"AlphanumericListTwoCharacters", alphanumericListPattern, "10. ten", 0, "", nil},

		{"Todo", todoPattern, "[ ] call", 0, "[ ] call", []string{"", " ", "call"}},
		{"TodoIndented", todoPattern, "\t[x] done", 0, "\t[x] done", []string{"\t", "x", "done"}},
		{"TodoUnknownState", todoPattern, "[?] what", 0, "", nil},
		{"TodoBlankBody", todoPattern, "[ ]   ", 0, "", nil},
		{"TodoNoSpace", todoPattern, "[ ]x", 0, "", nil},

		{"Bold", boldPattern, "**a** b", 0, "**a**", []string{"a"}},
		{"BoldGreedy", boldPattern, "**a** and **b**", 0, "**a** and **b**", []string{"a** and **b"}},
		{"BoldEmpty", boldPattern, "****", 0, "", nil},
		{"BoldSingleStar", boldPattern, "*****", 0, "*****", []string{"*"}},
		{"BoldAcrossLines", boldPattern, "**a\nb**", 0, "", nil},
		{"Italics", italicsPattern, "__it__", 0, "__it__", []string{"it"}},
		{"Strikethrough", strikethroughPattern, "~~x~~", 0, "~~x~~", []string{"x"}},
		{"Highlight", highlightPattern, "!!x!!", 0, "!!x!!", []string{"x"}},

		{"Link", linkPattern, "[a](b) [c](d)", 0, "[a](b)", []string{"a", "b"}},
		{"LinkAfterBang", linkPattern, "![a](b)", 1, "", nil},
		{"LinkEmpty", linkPattern, "[]()", 0, "[]()", []string{"", ""}},
		{"LinkUnclosed", linkPattern, "[a](b", 0, "", nil},
		{"Image", imagePattern, "![alt](img.png)", 0, "![alt](img.png)", []string{"alt", "img.png"}},

		{"Tag", tagPattern, "#foo bar", 0, "#foo", []string{"foo"}},
		{"TagStopsAtHash", tagPattern, "#foo#bar", 0, "#foo", []string{"foo"}},
		{"TagPunctuation", tagPattern, "#it-works!!!", 0, "#it-works!!!", []string{"it-works!!!"}},
		{"TagAfterHash", tagPattern, "##foo", 1, "", nil},
		{"TagAfterBracket", tagPattern, "[#foo]", 1, "", nil},
		{"TagAfterParen", tagPattern, "(#foo)", 1, "", nil},
		{"TagHeading", tagPattern, "# Heading", 0, "", nil},

		{"Heading", headingPattern, "### Three\nx", 0, "### Three", []string{"###", "Three"}},
		{"HeadingEmpty", headingPattern, "# ", 0, "# ", []string{"#", ""}},
		{"HeadingAfterBacktick", headingPattern, "`# a", 1, "", nil},
		{"HeadingNoSpace", headingPattern, "#a", 0, "", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, ok := test.pattern.match(test.src, test.pos)
			if test.want == "" {
				if ok {
					t.Errorf("%v match(%q, %d) = %q; want no match", test.pattern.kind, test.src, test.pos, test.src[test.pos:m.end])
				}
				return
			}
			if !ok {
				t.Fatalf("%v match(%q, %d) failed; want %q", test.pattern.kind, test.src, test.pos, test.want)
			}
			if got := test.src[test.pos:m.end]; got != test.want {
				t.Errorf("%v match(%q, %d) consumed %q; want %q", test.pattern.kind, test.src, test.pos, got, test.want)
			}
			var fields []string
			for i := range test.fields {
				fields = append(fields, spanSlice(test.src, m.fields[i]))
			}
			if diff := cmp.Diff(test.fields, fields); diff != "" {
				t.Errorf("%v match(%q, %d) fields (-want +got):\n%s", test.pattern.kind, test.src, test.pos, diff)
			}
		})
	}
}

// Matchers must not carry state between calls,
// since nested bodies are matched with the same patterns.
func TestMatchersAreStateless(t *testing.T) {
	const src = "**x** **y**"
	first, ok1 := boldPattern.match(src, 6)
	_, _ = boldPattern.match(src, 0)
	second, ok2 := boldPattern.match(src, 6)
	if !ok1 || !ok2 || first != second {
		t.Errorf("bold match at 6 = %v, %t then %v, %t; want identical successes", first, ok1, second, ok2)
	}
}

func TestCandidates(t *testing.T) {
	kinds := func(c byte) []Kind {
		var result []Kind
		for _, p := range candidates(c) {
			result = append(result, p.kind)
		}
		return result
	}
	tests := []struct {
		c    byte
		want []Kind
	}{
		{'t', []Kind{TitleKind}},
		{'e', []Kind{ExportKind}},
		{'`', []Kind{CodeBlockKind, InlineCodeKind}},
		{'-', []Kind{HorizontalRuleKind, BulletedListKind}},
		{' ', []Kind{TodoKind, BulletedListKind, AlphanumericListKind}},
		{'\t', []Kind{TodoKind, BulletedListKind, AlphanumericListKind}},
		{'*', []Kind{BoldKind, BulletedListKind}},
		{'[', []Kind{TodoKind, LinkKind}},
		{'~', []Kind{CodeBlockKind, StrikethroughKind}},
		{'_', []Kind{ItalicsKind}},
		{'!', []Kind{HighlightKind, ImageKind}},
		{'#', []Kind{TagKind, HeadingKind}},
		{'a', []Kind{AlphanumericListKind}},
		{'7', []Kind{AlphanumericListKind}},
		{0xc3, []Kind{AlphanumericListKind}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, kinds(test.c)); diff != "" {
			t.Errorf("candidates(%q) (-want +got):\n%s", test.c, diff)
		}
	}
}
