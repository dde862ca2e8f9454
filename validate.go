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

import "bytes"

// SortChecker enforces the sorted-input contract on one stream: within a
// chromosome, starts never decrease; chromosome blocks are contiguous;
// with a genome attached, blocks follow genome order and unknown
// chromosomes are rejected. The first violation is fatal to the run.
type SortChecker struct {
	genome    *Genome
	lastChrom []byte
	lastStart uint64
	lastRank  int
	seen      map[string]struct{}
	started   bool
}

// NewSortChecker returns a checker; genome may be nil.
func NewSortChecker(genome *Genome) *SortChecker {
	return &SortChecker{
		genome:   genome,
		lastRank: -1,
		seen:     make(map[string]struct{}, 64),
	}
}

// Reset forgets all state, for reuse across files.
func (c *SortChecker) Reset() {
	c.lastChrom = c.lastChrom[:0]
	c.lastStart = 0
	c.lastRank = -1
	c.started = false
	for k := range c.seen {
		delete(c.seen, k)
	}
}

// Check validates one record against the stream so far.
func (c *SortChecker) Check(r *Record) error {
	if c.started && bytes.Equal(r.Chrom, c.lastChrom) {
		if r.Start < c.lastStart {
			return &UnsortedError{
				Kind:      UnsortedPosition,
				Chrom:     string(r.Chrom),
				PrevStart: c.lastStart,
				ThisStart: r.Start,
				Line:      r.Line,
			}
		}
		c.lastStart = r.Start
		return nil
	}

	if _, ok := c.seen[string(r.Chrom)]; ok {
		return &UnsortedError{Kind: ChromosomeRevisited, Chrom: string(r.Chrom), Line: r.Line}
	}
	c.seen[string(r.Chrom)] = struct{}{}

	if c.genome != nil {
		rank, ok := c.genome.Rank(r.Chrom)
		if !ok {
			return &UnsortedError{Kind: ChromosomeNotInGenome, Chrom: string(r.Chrom), Line: r.Line}
		}
		if rank <= c.lastRank {
			return &UnsortedError{Kind: ChromosomeOrder, Chrom: string(r.Chrom), Line: r.Line}
		}
		c.lastRank = rank
	}

	c.lastChrom = append(c.lastChrom[:0], r.Chrom...)
	c.lastStart = r.Start
	c.started = true
	return nil
}
