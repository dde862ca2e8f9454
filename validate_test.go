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

func checkAll(c *SortChecker, recs []Record) error {
	for i := range recs {
		if err := c.Check(&recs[i]); err != nil {
			return err
		}
	}
	return nil
}

func TestSortCheckerAccepts(t *testing.T) {
	recs := parseAll(t, "chr1\t10\t20\nchr1\t10\t30\nchr1\t15\t16\nchr2\t0\t5\n", false)
	if err := checkAll(NewSortChecker(nil), recs); err != nil {
		t.Errorf("sorted input rejected: %s", err)
	}
}

func TestSortCheckerPosition(t *testing.T) {
	recs := parseAll(t, "chr1\t10\t20\nchr1\t5\t30\n", false)
	err := checkAll(NewSortChecker(nil), recs)
	ue, ok := err.(*UnsortedError)
	if !ok {
		t.Fatalf("expected UnsortedError, got %v", err)
	}
	if ue.Kind != UnsortedPosition || ue.PrevStart != 10 || ue.ThisStart != 5 || ue.Line != 2 {
		t.Errorf("wrong error detail: %+v", ue)
	}
	if !strings.Contains(ue.Error(), "grit sort") {
		t.Errorf("error lacks the remediation hint: %s", ue)
	}
}

func TestSortCheckerRevisit(t *testing.T) {
	recs := parseAll(t, "chr1\t10\t20\nchr2\t0\t5\nchr1\t30\t40\n", false)
	err := checkAll(NewSortChecker(nil), recs)
	ue, ok := err.(*UnsortedError)
	if !ok || ue.Kind != ChromosomeRevisited || ue.Chrom != "chr1" {
		t.Errorf("expected revisit error, got %v", err)
	}
}

func TestSortCheckerGenomeOrder(t *testing.T) {
	g := testGenome(t, "chr1", uint64(1000), "chr2", uint64(1000))

	recs := parseAll(t, "chr2\t0\t5\nchr1\t10\t20\n", false)
	err := checkAll(NewSortChecker(g), recs)
	if ue, ok := err.(*UnsortedError); !ok || ue.Kind != ChromosomeOrder {
		t.Errorf("expected order error, got %v", err)
	}

	recs = parseAll(t, "chrM\t0\t5\n", false)
	err = checkAll(NewSortChecker(g), recs)
	if ue, ok := err.(*UnsortedError); !ok || ue.Kind != ChromosomeNotInGenome {
		t.Errorf("expected missing-chromosome error, got %v", err)
	}
}

func TestSortCheckerReset(t *testing.T) {
	c := NewSortChecker(nil)
	recs := parseAll(t, "chr1\t10\t20\n", false)
	if err := checkAll(c, recs); err != nil {
		t.Fatalf("check: %s", err)
	}
	c.Reset()
	if err := checkAll(c, recs); err != nil {
		t.Errorf("reset did not clear state: %s", err)
	}
}
