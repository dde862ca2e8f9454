// Copyright © 2024 Manish Kumar <manish59@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package grit

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func testCursor(s string, compat bool) Cursor {
	return NewReader(strings.NewReader(s), compat)
}

func parseAll(t *testing.T, s string, compat bool) []Record {
	t.Helper()
	recs, err := ReadAll(testCursor(s, compat))
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	return recs
}

// sweepString runs an operator over string inputs and returns the
// emitted bytes.
func sweepString(t *testing.T, build func(w *Writer) Operator, a, b string, opt SweepOptions) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	op := build(w)
	err := Sweep(testCursor(a, opt.Compat), testCursor(b, opt.Compat), op, opt)
	if err != nil {
		t.Fatalf("sweep: %s", err)
	}
	if err = w.Flush(); err != nil {
		t.Fatalf("flush: %s", err)
	}
	return buf.String()
}

func testGenome(t *testing.T, pairs ...interface{}) *Genome {
	t.Helper()
	g := NewGenome()
	for i := 0; i < len(pairs); i += 2 {
		if err := g.Add(pairs[i].(string), pairs[i+1].(uint64)); err != nil {
			t.Fatalf("genome: %s", err)
		}
	}
	return g
}

// randomSortedBed builds a sorted BED string for property tests.
func randomSortedBed(rng *rand.Rand, chroms []string, n int, maxLen uint64) string {
	var sb strings.Builder
	for _, chrom := range chroms {
		pos := uint64(0)
		for i := 0; i < n; i++ {
			pos += uint64(rng.Intn(50))
			l := uint64(rng.Intn(int(maxLen))) + 1
			fmt.Fprintf(&sb, "%s\t%d\t%d\n", chrom, pos, pos+l)
		}
	}
	return sb.String()
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	sort.Strings(lines)
	return lines
}
