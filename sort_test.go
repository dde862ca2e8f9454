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
	"math/rand"
	"testing"
)

func formatAll(recs []Record) string {
	var buf []byte
	for i := range recs {
		buf = AppendRecord(buf, &recs[i])
	}
	return string(buf)
}

func TestSortRecords(t *testing.T) {
	recs := parseAll(t, ""+
		"chr2\t5\t10\n"+
		"chr1\t100\t200\tsecond\n"+
		"chr1\t100\t150\tfirst\n"+
		"chr2\t0\t3\n"+
		"chr1\t50\t60\n", false)
	out, err := SortRecords(recs, nil)
	if err != nil {
		t.Fatalf("sort: %s", err)
	}
	want := "" +
		"chr2\t0\t3\n" +
		"chr2\t5\t10\n" +
		"chr1\t50\t60\n" +
		"chr1\t100\t150\tfirst\n" +
		"chr1\t100\t200\tsecond\n"
	if got := formatAll(out); got != want {
		t.Errorf("first-seen order sort:\n%s\nwant:\n%s", got, want)
	}
}

func TestSortRecordsGenomeOrder(t *testing.T) {
	g := testGenome(t, "chr1", uint64(1000), "chr2", uint64(1000))
	recs := parseAll(t, "chr2\t5\t10\nchr1\t100\t200\n", false)
	out, err := SortRecords(recs, g)
	if err != nil {
		t.Fatalf("sort: %s", err)
	}
	if got := formatAll(out); got != "chr1\t100\t200\nchr2\t5\t10\n" {
		t.Errorf("genome order sort:\n%s", got)
	}

	recs = parseAll(t, "chrM\t0\t5\n", false)
	if _, err = SortRecords(recs, g); err == nil {
		t.Error("unknown chromosome accepted")
	}
}

func TestSortRecordsStable(t *testing.T) {
	recs := parseAll(t, ""+
		"chr1\t10\t20\ta\n"+
		"chr1\t10\t20\tb\n"+
		"chr1\t10\t20\tc\n", false)
	out, err := SortRecords(recs, nil)
	if err != nil {
		t.Fatalf("sort: %s", err)
	}
	if got := formatAll(out); got != "chr1\t10\t20\ta\nchr1\t10\t20\tb\nchr1\t10\t20\tc\n" {
		t.Errorf("identical records reordered:\n%s", got)
	}
}

func TestSortRecordsPassesChecker(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	recs := make([]Record, 0, 300)
	chroms := []string{"chr1", "chr2", "chr3"}
	for i := 0; i < 300; i++ {
		s := uint64(rng.Intn(10000))
		recs = append(recs, Record{
			Chrom: []byte(chroms[rng.Intn(len(chroms))]),
			Start: s,
			End:   s + uint64(rng.Intn(100)) + 1,
			Line:  i + 1,
		})
	}
	out, err := SortRecords(recs, nil)
	if err != nil {
		t.Fatalf("sort: %s", err)
	}
	if err := checkAll(NewSortChecker(nil), out); err != nil {
		t.Errorf("sorted output fails the validator: %s", err)
	}
}
