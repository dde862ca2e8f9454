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
	"strings"
	"testing"
)

// traceOp records the driver's callback sequence.
type traceOp struct {
	events []string
	depths []int
}

func (op *traceOp) ChromStart(chrom []byte) error {
	op.events = append(op.events, "start "+string(chrom))
	return nil
}

func (op *traceOp) Step(a *Record, f *Flow) error {
	op.events = append(op.events, "step")
	op.depths = append(op.depths, f.Set.Len())
	return nil
}

func (op *traceOp) ChromEnd() error {
	op.events = append(op.events, "end")
	return nil
}

func (op *traceOp) Finish() error {
	op.events = append(op.events, "finish")
	return nil
}

func TestSweepLifecycle(t *testing.T) {
	op := &traceOp{}
	a := "chr1\t10\t20\nchr1\t30\t40\nchr2\t5\t6\n"
	err := Sweep(testCursor(a, false), EmptyCursor(), op, SweepOptions{})
	if err != nil {
		t.Fatalf("sweep: %s", err)
	}
	want := "start chr1,step,step,end,start chr2,step,end,finish"
	if got := strings.Join(op.events, ","); got != want {
		t.Errorf("lifecycle %q, want %q", got, want)
	}
}

func TestSweepEmptyInput(t *testing.T) {
	op := &traceOp{}
	err := Sweep(testCursor("", false), testCursor("chr1\t1\t2\n", false), op, SweepOptions{})
	if err != nil {
		t.Fatalf("sweep: %s", err)
	}
	if got := strings.Join(op.events, ","); got != "finish" {
		t.Errorf("empty A lifecycle %q", got)
	}
}

func TestSweepRejectsUnsorted(t *testing.T) {
	op := &traceOp{}
	err := Sweep(testCursor("chr1\t10\t20\nchr1\t5\t8\n", false), EmptyCursor(), op, SweepOptions{})
	if _, ok := err.(*UnsortedError); !ok {
		t.Errorf("expected UnsortedError, got %v", err)
	}

	// B side is validated too
	err = Sweep(testCursor("chr1\t10\t20\n", false),
		testCursor("chr1\t10\t20\nchr1\t5\t8\n", false),
		&Intersector{W: NewWriter(&strings.Builder{}), Qual: overlapQual{Fraction: -1}},
		SweepOptions{})
	if _, ok := err.(*UnsortedError); !ok {
		t.Errorf("expected UnsortedError on B, got %v", err)
	}
}

func TestSweepAssumeSortedSkipsValidation(t *testing.T) {
	op := &traceOp{}
	err := Sweep(testCursor("chr1\t10\t20\nchr1\t5\t8\n", false), EmptyCursor(), op,
		SweepOptions{AssumeSorted: true})
	if err != nil {
		t.Errorf("assume-sorted still validated: %s", err)
	}
}

func TestSweepActiveSetBound(t *testing.T) {
	// B depth is at most 3 anywhere
	a := "chr1\t0\t10\nchr1\t50\t60\nchr1\t100\t110\n"
	b := "chr1\t0\t200\nchr1\t5\t105\nchr1\t50\t55\nchr1\t101\t109\n"
	op := &traceOp{}
	var stats RunStats
	err := Sweep(testCursor(a, false), testCursor(b, false), op, SweepOptions{Stats: &stats})
	if err != nil {
		t.Fatalf("sweep: %s", err)
	}
	if stats.MaxActive > 3 {
		t.Errorf("active set grew to %d, overlap depth is 3", stats.MaxActive)
	}
	if stats.ARecords != 3 || stats.BRecords != 4 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestSweepBCatchUp(t *testing.T) {
	// B has a chromosome A never visits, between A's chromosomes
	a := "chr1\t10\t20\nchr3\t10\t20\n"
	b := "chr1\t15\t25\nchr2\t0\t100\nchr3\t12\t14\n"
	got := sweepString(t, func(w *Writer) Operator {
		return NewIntersector(w, IntersectOverlap)
	}, a, b, SweepOptions{})
	if got != "chr1\t15\t20\nchr3\t12\t14\n" {
		t.Errorf("got %q", got)
	}
}

func TestSweepGenomeOrdering(t *testing.T) {
	g := testGenome(t, "chr1", uint64(1000), "chr2", uint64(1000), "chr3", uint64(1000))
	a := "chr2\t10\t20\n"
	b := "chr1\t0\t100\nchr2\t15\t25\n"
	got := sweepString(t, func(w *Writer) Operator {
		return NewIntersector(w, IntersectOverlap)
	}, a, b, SweepOptions{Genome: g})
	if got != "chr2\t15\t20\n" {
		t.Errorf("got %q", got)
	}
}
