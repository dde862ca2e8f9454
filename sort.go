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
	"io"

	"github.com/twotwotwo/sorts"
)

// ReadAll drains a cursor into owned records, the buffering half of the
// unsorted-input fallback.
func ReadAll(c Cursor) ([]Record, error) {
	recs := make([]Record, 0, 4096)
	for {
		r, err := c.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, r.Clone(nil))
	}
}

type sortRec struct {
	rec Record
	ord int
}

// startSorter radix-sorts one chromosome bucket by start, breaking ties
// by end and then input order so the result is stable.
type startSorter []sortRec

func (s startSorter) Len() int         { return len(s) }
func (s startSorter) Key(i int) uint64 { return s[i].rec.Start }
func (s startSorter) Swap(i, j int)    { s[i], s[j] = s[j], s[i] }
func (s startSorter) Less(i, j int) bool {
	if s[i].rec.Start != s[j].rec.Start {
		return s[i].rec.Start < s[j].rec.Start
	}
	if s[i].rec.End != s[j].rec.End {
		return s[i].rec.End < s[j].rec.End
	}
	return s[i].ord < s[j].ord
}

// SortRecords orders records by (chromosome rank, start, end), stably.
// Rank comes from the genome when given, else from first appearance in
// the input. Records must own their bytes (ReadAll guarantees it). With
// a genome, unknown chromosomes are rejected.
func SortRecords(recs []Record, genome *Genome) ([]Record, error) {
	type bucket struct {
		name string
		recs []sortRec
	}
	var order []int
	buckets := make(map[string]int, 64)
	var all []bucket

	for i := range recs {
		r := &recs[i]
		k := string(r.Chrom)
		bi, ok := buckets[k]
		if !ok {
			if genome != nil {
				if _, known := genome.Rank(r.Chrom); !known {
					return nil, &UnsortedError{Kind: ChromosomeNotInGenome,
						Chrom: k, Line: r.Line}
				}
			}
			bi = len(all)
			buckets[k] = bi
			all = append(all, bucket{name: k})
			order = append(order, bi)
		}
		all[bi].recs = append(all[bi].recs, sortRec{rec: *r, ord: i})
	}

	if genome != nil {
		// genome rank replaces first-seen order
		order = order[:0]
		for i := 0; i < genome.Len(); i++ {
			if bi, ok := buckets[genome.At(i).Name]; ok {
				order = append(order, bi)
			}
		}
	}

	out := make([]Record, 0, len(recs))
	for _, bi := range order {
		b := all[bi].recs
		sorts.ByUint64(startSorter(b))
		for i := range b {
			out = append(out, b[i].rec)
		}
	}
	return out, nil
}
