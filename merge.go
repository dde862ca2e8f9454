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

import "sort"

type mergeRun struct {
	open   bool
	lo, hi uint64
	n      uint64
}

type mergeRow struct {
	lo, hi uint64
	n      uint64
	strand byte
}

// Merger folds overlapping, bookended, or near (within Distance)
// intervals of a single sorted input into their union. With ByStrand,
// strands merge independently and the chromosome's rows are emitted in
// start order at the chromosome boundary; without it rows stream out as
// each run closes.
type Merger struct {
	W        *Writer
	Distance uint64
	ByStrand bool
	Count    bool

	chrom   []byte
	run     mergeRun
	strands [3]mergeRun // +, -, .
	rows    []mergeRow
}

func strandIdx(s byte) int {
	switch s {
	case '+':
		return 0
	case '-':
		return 1
	}
	return 2
}

func strandChar(i int) byte {
	return [3]byte{'+', '-', '.'}[i]
}

// ChromStart implements Operator.
func (op *Merger) ChromStart(chrom []byte) error {
	op.chrom = append(op.chrom[:0], chrom...)
	return nil
}

func (op *Merger) extend(run *mergeRun, a *Record) (closed mergeRow, ok bool) {
	if run.open && a.Start <= run.hi+op.Distance {
		if a.End > run.hi {
			run.hi = a.End
		}
		run.n++
		return mergeRow{}, false
	}
	closed = mergeRow{lo: run.lo, hi: run.hi, n: run.n}
	ok = run.open
	run.open = true
	run.lo = a.Start
	run.hi = a.End
	run.n = 1
	return closed, ok
}

func (op *Merger) emit(row mergeRow) {
	op.W.Field(op.chrom)
	op.W.FieldUint(row.lo)
	op.W.FieldUint(row.hi)
	if op.Count {
		op.W.FieldUint(row.n)
	}
	if op.ByStrand {
		op.W.FieldByte(row.strand)
	}
	op.W.End()
}

// Step implements Operator. Merge is single-input; the active set stays
// empty.
func (op *Merger) Step(a *Record, f *Flow) error {
	if op.ByStrand {
		i := strandIdx(a.Strand())
		if row, ok := op.extend(&op.strands[i], a); ok {
			row.strand = strandChar(i)
			op.rows = append(op.rows, row)
		}
		return nil
	}
	if row, ok := op.extend(&op.run, a); ok {
		op.emit(row)
	}
	return op.W.Err()
}

// ChromEnd implements Operator.
func (op *Merger) ChromEnd() error {
	if op.ByStrand {
		for i := range op.strands {
			if op.strands[i].open {
				op.rows = append(op.rows, mergeRow{
					lo: op.strands[i].lo, hi: op.strands[i].hi,
					n: op.strands[i].n, strand: strandChar(i),
				})
				op.strands[i] = mergeRun{}
			}
		}
		sort.SliceStable(op.rows, func(i, j int) bool {
			if op.rows[i].lo != op.rows[j].lo {
				return op.rows[i].lo < op.rows[j].lo
			}
			return op.rows[i].hi < op.rows[j].hi
		})
		for _, row := range op.rows {
			op.emit(row)
		}
		op.rows = op.rows[:0]
		return op.W.Err()
	}
	if op.run.open {
		op.emit(mergeRow{lo: op.run.lo, hi: op.run.hi, n: op.run.n})
		op.run = mergeRun{}
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Merger) Finish() error { return op.W.Err() }
