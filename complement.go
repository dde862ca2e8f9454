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

// Complementer emits the gaps the input leaves uncovered, walking the
// genome in its own order. Chromosomes the input never touches come out
// whole. A genome is mandatory: it provides both the order and the right
// edge. Input chromosome order is enforced against the genome by the
// driver's validator.
type Complementer struct {
	W *Writer
	G *Genome

	nextRank int
	rank     int
	cursor   uint64
	size     uint64
	name     string
}

func (op *Complementer) emitWhole(rank int) {
	c := op.G.At(rank)
	if c.Size > 0 {
		op.W.FieldStr(c.Name)
		op.W.FieldUint(0)
		op.W.FieldUint(c.Size)
		op.W.End()
	}
}

// ChromStart implements Operator.
func (op *Complementer) ChromStart(chrom []byte) error {
	rank, ok := op.G.Rank(chrom)
	if !ok {
		return &UnsortedError{Kind: ChromosomeNotInGenome, Chrom: string(chrom)}
	}
	for r := op.nextRank; r < rank; r++ {
		op.emitWhole(r)
	}
	op.rank = rank
	op.nextRank = rank + 1
	op.cursor = 0
	c := op.G.At(rank)
	op.size = c.Size
	op.name = c.Name
	return op.W.Err()
}

// Step implements Operator. The running cursor merges the input
// implicitly: only gaps beyond the furthest end seen are emitted.
func (op *Complementer) Step(a *Record, f *Flow) error {
	s := a.Start
	if s > op.size {
		s = op.size
	}
	if s > op.cursor {
		op.W.FieldStr(op.name)
		op.W.FieldUint(op.cursor)
		op.W.FieldUint(s)
		op.W.End()
	}
	e := a.End
	if e > op.size {
		e = op.size
	}
	if e > op.cursor {
		op.cursor = e
	}
	return op.W.Err()
}

// ChromEnd implements Operator.
func (op *Complementer) ChromEnd() error {
	if op.cursor < op.size {
		op.W.FieldStr(op.name)
		op.W.FieldUint(op.cursor)
		op.W.FieldUint(op.size)
		op.W.End()
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Complementer) Finish() error {
	for r := op.nextRank; r < op.G.Len(); r++ {
		op.emitWhole(r)
	}
	return op.W.Err()
}
