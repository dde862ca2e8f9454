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
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func intersectString(t *testing.T, mode IntersectMode, a, b string, opt SweepOptions) string {
	t.Helper()
	return sweepString(t, func(w *Writer) Operator {
		return NewIntersector(w, mode)
	}, a, b, opt)
}

func TestIntersectOverlapRegion(t *testing.T) {
	got := intersectString(t, IntersectOverlap,
		"chr1\t100\t200\n", "chr1\t150\t250\n", SweepOptions{})
	if got != "chr1\t150\t200\n" {
		t.Errorf("got %q", got)
	}
}

func TestIntersectModes(t *testing.T) {
	a := "chr1\t100\t200\tA1\nchr1\t300\t400\tA2\n"
	b := "chr1\t150\t250\tB1\nchr1\t160\t170\tB2\n"

	for _, tt := range []struct {
		mode IntersectMode
		want string
	}{
		{IntersectOverlap, "chr1\t150\t200\tA1\nchr1\t160\t170\tA1\n"},
		{IntersectWriteA, "chr1\t100\t200\tA1\nchr1\t100\t200\tA1\n"},
		{IntersectWriteB, "chr1\t150\t250\tB1\nchr1\t160\t170\tB2\n"},
		{IntersectWriteBoth, "chr1\t100\t200\tA1\tchr1\t150\t250\tB1\nchr1\t100\t200\tA1\tchr1\t160\t170\tB2\n"},
		{IntersectUniqueA, "chr1\t100\t200\tA1\n"},
		{IntersectNoOverlapA, "chr1\t300\t400\tA2\n"},
		{IntersectCountA, "chr1\t100\t200\tA1\t2\nchr1\t300\t400\tA2\t0\n"},
	} {
		if got := intersectString(t, tt.mode, a, b, SweepOptions{}); got != tt.want {
			t.Errorf("mode %d:\n%q\nwant\n%q", tt.mode, got, tt.want)
		}
	}
}

func TestIntersectFraction(t *testing.T) {
	a := "chr1\t100\t200\n"
	b := "chr1\t150\t250\n" // 50 of 100 bases of A

	op := func(frac float64, recip bool) string {
		return sweepString(t, func(w *Writer) Operator {
			o := NewIntersector(w, IntersectOverlap)
			o.Qual.Fraction = frac
			o.Qual.Reciprocal = recip
			return o
		}, a, b, SweepOptions{})
	}

	if got := op(0.5, false); got != "chr1\t150\t200\n" {
		t.Errorf("fraction 0.5 rejected: %q", got)
	}
	if got := op(0.51, false); got != "" {
		t.Errorf("fraction 0.51 accepted: %q", got)
	}
	// reciprocal: 50 of B's 100 bases too
	if got := op(0.5, true); got != "chr1\t150\t200\n" {
		t.Errorf("reciprocal 0.5 rejected: %q", got)
	}
}

func TestIntersectAdjacent(t *testing.T) {
	got := intersectString(t, IntersectOverlap,
		"chr1\t100\t200\n", "chr1\t200\t300\n", SweepOptions{})
	if got != "" {
		t.Errorf("adjacent intervals intersected: %q", got)
	}
}

func TestIntersectZeroLengthPoint(t *testing.T) {
	// strict mode: the point qualifies only when B contains it (start <= p < end)
	got := intersectString(t, IntersectOverlap,
		"chr1\t150\t150\n", "chr1\t100\t200\n", SweepOptions{})
	if got != "chr1\t150\t150\n" {
		t.Errorf("contained point missed: %q", got)
	}

	got = intersectString(t, IntersectOverlap,
		"chr1\t200\t200\n", "chr1\t100\t200\n", SweepOptions{})
	if got != "" {
		t.Errorf("point at the end boundary intersected: %q", got)
	}

	// a positive fraction never passes for a zero-length A
	got = sweepString(t, func(w *Writer) Operator {
		o := NewIntersector(w, IntersectOverlap)
		o.Qual.Fraction = 0.1
		return o
	}, "chr1\t150\t150\n", "chr1\t100\t200\n", SweepOptions{})
	if got != "" {
		t.Errorf("fraction passed for a point: %q", got)
	}

	// the point starting exactly at a B start is still contained
	got = intersectString(t, IntersectOverlap,
		"chr1\t100\t100\n", "chr1\t100\t200\n", SweepOptions{})
	if got != "chr1\t100\t100\n" {
		t.Errorf("point at B start missed: %q", got)
	}
}

func TestIntersectCompatNormalizesPoints(t *testing.T) {
	got := intersectString(t, IntersectOverlap,
		"chr1\t200\t200\n", "chr1\t200\t300\n", SweepOptions{Compat: true})
	if got != "chr1\t200\t201\n" {
		t.Errorf("compat point did not overlap the adjacent block: %q", got)
	}
}

func TestIntersectEmptyInputs(t *testing.T) {
	if got := intersectString(t, IntersectOverlap, "", "chr1\t1\t2\n", SweepOptions{}); got != "" {
		t.Errorf("empty A produced output: %q", got)
	}
	if got := intersectString(t, IntersectOverlap, "chr1\t1\t2\n", "", SweepOptions{}); got != "" {
		t.Errorf("empty B produced output: %q", got)
	}
	if got := intersectString(t, IntersectNoOverlapA, "chr1\t1\t2\n", "", SweepOptions{}); got != "chr1\t1\t2\n" {
		t.Errorf("empty B with -v: %q", got)
	}
}

// naiveIntersect checks every pair from A x B.
func naiveIntersect(a, b []Record) []string {
	var out []string
	for i := range a {
		for j := range b {
			if string(a[i].Chrom) != string(b[j].Chrom) {
				continue
			}
			if !b[j].Overlaps(a[i].Start, a[i].End) {
				continue
			}
			s, e := a[i].Start, a[i].End
			if b[j].Start > s {
				s = b[j].Start
			}
			if b[j].End < e {
				e = b[j].End
			}
			out = append(out, fmt.Sprintf("%s\t%d\t%d", a[i].Chrom, s, e))
		}
	}
	return out
}

func TestIntersectMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	chroms := []string{"chr1", "chr2", "chr3"}
	for trial := 0; trial < 20; trial++ {
		a := randomSortedBed(rng, chroms, 40, 60)
		b := randomSortedBed(rng, chroms, 40, 60)

		got := sortedLines(intersectString(t, IntersectOverlap, a, b, SweepOptions{}))
		want := naiveIntersect(parseAll(t, a, false), parseAll(t, b, false))
		wantSorted := sortedLines(strings.Join(want, "\n") + "\n")
		if len(want) == 0 {
			wantSorted = []string{""}
		}
		if !reflect.DeepEqual(got, wantSorted) {
			t.Fatalf("trial %d: streaming disagrees with naive\ngot  %d rows\nwant %d rows",
				trial, len(got), len(want))
		}
	}
}

func TestIntersectDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomSortedBed(rng, []string{"chr1", "chr2"}, 100, 80)
	b := randomSortedBed(rng, []string{"chr1", "chr2"}, 100, 80)
	first := intersectString(t, IntersectOverlap, a, b, SweepOptions{})
	second := intersectString(t, IntersectOverlap, a, b, SweepOptions{})
	if first != second {
		t.Error("two runs over the same input differ")
	}
}
