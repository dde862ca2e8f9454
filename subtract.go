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

type span struct {
	s, e uint64
}

// Subtractor removes B-covered bases from each A record, emitting the
// surviving pieces left to right with A's tail. With RemoveEntire, any
// qualifying overlap drops the whole record instead.
type Subtractor struct {
	W            *Writer
	RemoveEntire bool
	Qual         overlapQual

	pieces []span
	next   []span
}

// NewSubtractor returns a subtract operator with no fraction filter.
func NewSubtractor(w *Writer) *Subtractor {
	return &Subtractor{W: w, Qual: overlapQual{Fraction: -1}}
}

// ChromStart implements Operator.
func (op *Subtractor) ChromStart(chrom []byte) error { return nil }

// ChromEnd implements Operator.
func (op *Subtractor) ChromEnd() error { return nil }

// Step implements Operator.
func (op *Subtractor) Step(a *Record, f *Flow) error {
	if a.Len() == 0 {
		// a point is either removed whole or survives whole
		live := f.Set.Live()
		for i := range live {
			if _, _, ok := op.Qual.qualify(a.Start, a.End, 0, &live[i]); ok {
				return nil
			}
		}
		op.W.WriteRecord(a)
		return op.W.Err()
	}

	op.pieces = append(op.pieces[:0], span{a.Start, a.End})
	any := false

	live := f.Set.Live()
	for i := range live {
		b := &live[i]
		_, _, ok := op.Qual.qualify(a.Start, a.End, a.Len(), b)
		if !ok {
			continue
		}
		any = true
		if op.RemoveEntire {
			return nil
		}
		op.next = op.next[:0]
		for _, p := range op.pieces {
			if b.End <= p.s || p.e <= b.Start {
				op.next = append(op.next, p)
				continue
			}
			if p.s < b.Start {
				op.next = append(op.next, span{p.s, b.Start})
			}
			if b.End < p.e {
				op.next = append(op.next, span{b.End, p.e})
			}
		}
		op.pieces, op.next = op.next, op.pieces
		if len(op.pieces) == 0 {
			return nil
		}
	}

	if !any {
		op.W.WriteRecord(a)
		return op.W.Err()
	}
	for _, p := range op.pieces {
		op.W.WriteInterval(a.Chrom, p.s, p.e, a.Tail)
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Subtractor) Finish() error { return op.W.Err() }
