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

// notemark lexes note markup and prints the resulting tokens.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/pflag"
	"go4.org/bytereplacer"
	"golang.org/x/term"
	"pkt.systems/version"
	"zombiezen.com/go/notemark"
)

func init() {
	version.SetDefaultModule("zombiezen.com/go/notemark")
}

type options struct {
	lexer   notemark.Lexer
	flat    bool
	tags    bool
	exports bool
	// width is the maximum number of columns for the raw text column.
	// Zero means no limit.
	width int
}

// kindColumns is the room left for the span and kind columns
// when the raw text width is derived from the terminal.
const kindColumns = 40

// minRawWidth is the narrowest raw text column
// derived from the terminal width.
const minRawWidth = 16

func main() {
	var (
		opts    options
		outPath string
	)
	flags := pflag.NewFlagSet("notemark", pflag.ExitOnError)
	flags.IntVarP(&opts.lexer.IndentWidth, "indent-width", "i", 2, "White space characters per list nesting level")
	flags.BoolVar(&opts.flat, "flat", false, "Omit the children of emphasis, list, and todo tokens")
	flags.BoolVar(&opts.tags, "tags", false, "Print only the distinct tags")
	flags.BoolVar(&opts.exports, "exports", false, "Print only the export assignments")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVarP(&opts.width, "width", "w", -1, "Truncate raw text to this many columns (0 for no limit; default fits the terminal)")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: notemark [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, note markup is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if opts.tags && opts.exports {
		fmt.Fprintln(os.Stderr, "notemark: --tags and --exports are mutually exclusive")
		os.Exit(2)
	}

	var out io.Writer = os.Stdout
	var outFile *os.File
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
			os.Exit(1)
		}
		outFile = f
		out = f
	}
	if opts.width < 0 {
		opts.width = rawWidth(out)
	}
	err := run(out, os.Stdin, flags.Args(), &opts)
	if outFile != nil {
		if closeErr := outFile.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		os.Exit(1)
	}
}

// run lexes each named file, or stdin if there are none,
// and writes the report selected by opts to w.
func run(w io.Writer, stdin io.Reader, paths []string, opts *options) error {
	ew := &errWriter{w: w}
	if len(paths) == 0 {
		source, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		report(ew, string(source), opts)
		return ew.err
	}
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(paths) > 1 {
			if ew.hasWritten {
				ew.WriteString("\n")
			}
			fmt.Fprintf(ew, "==> %s <==\n", path)
		}
		report(ew, string(source), opts)
		if ew.err != nil {
			return fmt.Errorf("write %s report: %w", path, ew.err)
		}
	}
	return nil
}

func report(w *errWriter, source string, opts *options) {
	tokens := opts.lexer.Tokenize(source)
	switch {
	case opts.tags:
		for _, tag := range notemark.Tags(tokens) {
			fmt.Fprintf(w, "#%s\n", tag)
		}
	case opts.exports:
		for _, exp := range notemark.Exports(tokens) {
			fmt.Fprintf(w, "%v\t%s\t%s\t%s\n", exp.Span, exp.Name, exp.Value, exp.Unit)
		}
	default:
		writeTokens(w, tokens, opts.flat, opts.width)
	}
}

// writeTokens writes one line per token:
// indentation for the nesting depth,
// the absolute span, the kind, and the escaped raw text.
// If width is positive, the raw text is truncated to that many columns.
func writeTokens(w *errWriter, tokens []*notemark.Token, flat bool, width int) {
	notemark.Walk(tokens, &notemark.WalkOptions{
		Pre: func(c *notemark.Cursor) bool {
			raw := escapeRaw(c.Token().Raw())
			if width > 0 {
				raw = truncate.StringWithTail(raw, uint(width), "...")
			}
			fmt.Fprintf(w, "%s%v\t%v\t%s\n",
				strings.Repeat("  ", c.Depth()),
				c.Span(),
				c.Token().Kind(),
				raw)
			return !flat
		},
		Post: func(c *notemark.Cursor) bool {
			return w.err == nil
		},
	})
}

// rawWidth returns the raw text column width for a report written to w:
// whatever the terminal leaves after the span and kind columns,
// or no limit if w is not a terminal.
func rawWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return 0
	}
	return max(cols-kindColumns, minRawWidth)
}

var rawEscaper = bytereplacer.New(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeRaw(raw string) string {
	return string(rawEscaper.Replace([]byte(raw)))
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
