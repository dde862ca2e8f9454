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

import "testing"

func windowString(t *testing.T, a, b string, left, right uint64, mode WindowMode) string {
	t.Helper()
	return sweepString(t, func(w *Writer) Operator {
		return &Windower{W: w, Left: left, Right: right, Mode: mode}
	}, a, b, SweepOptions{})
}

func TestWindowSymmetric(t *testing.T) {
	a := "chr1\t1000\t2000\n"
	b := "chr1\t500\t900\nchr1\t2100\t2200\nchr1\t5000\t6000\n"
	got := windowString(t, a, b, 200, 200, WindowWriteBoth)
	want := "chr1\t1000\t2000\tchr1\t500\t900\nchr1\t1000\t2000\tchr1\t2100\t2200\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestWindowAsymmetric(t *testing.T) {
	a := "chr1\t1000\t2000\n"
	b := "chr1\t500\t900\nchr1\t2100\t2200\n"
	// only leftward reach
	got := windowString(t, a, b, 200, 0, WindowWriteBoth)
	if got != "chr1\t1000\t2000\tchr1\t500\t900\n" {
		t.Errorf("got %q", got)
	}
	// only rightward reach
	got = windowString(t, a, b, 0, 200, WindowWriteBoth)
	if got != "chr1\t1000\t2000\tchr1\t2100\t2200\n" {
		t.Errorf("got %q", got)
	}
}

func TestWindowClampsAtZero(t *testing.T) {
	got := windowString(t, "chr1\t50\t100\n", "chr1\t0\t10\n", 1000, 0, WindowWriteBoth)
	if got != "chr1\t50\t100\tchr1\t0\t10\n" {
		t.Errorf("left clamp failed: %q", got)
	}
}

func TestWindowCountAndNoOverlap(t *testing.T) {
	a := "chr1\t1000\t2000\nchr1\t9000\t9100\n"
	b := "chr1\t500\t900\nchr1\t2100\t2200\n"
	got := windowString(t, a, b, 200, 200, WindowCountA)
	if got != "chr1\t1000\t2000\t2\nchr1\t9000\t9100\t0\n" {
		t.Errorf("count: %q", got)
	}
	got = windowString(t, a, b, 200, 200, WindowNoOverlapA)
	if got != "chr1\t9000\t9100\n" {
		t.Errorf("no-overlap: %q", got)
	}
	got = windowString(t, a, b, 200, 200, WindowUniqueA)
	if got != "chr1\t1000\t2000\n" {
		t.Errorf("unique: %q", got)
	}
}

func TestWindowKeepsOriginalCoordinates(t *testing.T) {
	got := windowString(t, "chr1\t1000\t2000\tname\n", "chr1\t500\t900\n", 200, 200, WindowWriteBoth)
	if got != "chr1\t1000\t2000\tname\tchr1\t500\t900\n" {
		t.Errorf("A coordinates changed: %q", got)
	}
}
