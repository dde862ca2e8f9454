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

// IntersectMode selects what intersect emits per qualifying overlap.
type IntersectMode int

const (
	// IntersectOverlap writes the shared region, carrying A's tail.
	IntersectOverlap IntersectMode = iota
	// IntersectWriteA writes the original A record per overlap.
	IntersectWriteA
	// IntersectWriteB writes the overlapping B record.
	IntersectWriteB
	// IntersectWriteBoth writes A's and B's fields on one row.
	IntersectWriteBoth
	// IntersectUniqueA writes A once if anything qualifies.
	IntersectUniqueA
	// IntersectNoOverlapA writes A only if nothing qualifies.
	IntersectNoOverlapA
	// IntersectCountA writes A with the qualifying-overlap count.
	IntersectCountA
)

// overlapQual holds the shared fraction/reciprocal qualification used by
// intersect, window and subtract. Fraction < 0 means unset.
type overlapQual struct {
	Fraction   float64
	Reciprocal bool
}

// qualify tests b against the query span [qs, qe) whose owner has alen
// bases. It returns the overlap and whether it qualifies. A zero-length
// query is a point: it qualifies only against a B that contains it
// (b.Start <= point < b.End), and only with no fraction set.
func (q *overlapQual) qualify(qs, qe uint64, alen uint64, b *Record) (s, e uint64, ok bool) {
	if qs == qe {
		if q.Fraction >= 0 {
			return 0, 0, false
		}
		return qs, qs, b.ContainsPoint(qs)
	}
	if !b.Overlaps(qs, qe) {
		return 0, 0, false
	}
	s = qs
	if b.Start > s {
		s = b.Start
	}
	e = qe
	if b.End < e {
		e = b.End
	}
	if q.Fraction >= 0 {
		l := float64(e - s)
		if l < q.Fraction*float64(alen) {
			return s, e, false
		}
		if q.Reciprocal && l < q.Fraction*float64(b.Len()) {
			return s, e, false
		}
	}
	return s, e, true
}

// Intersector reports overlaps between A and B records.
type Intersector struct {
	W    *Writer
	Mode IntersectMode
	Qual overlapQual
}

// NewIntersector returns an intersect operator with no fraction filter.
func NewIntersector(w *Writer, mode IntersectMode) *Intersector {
	return &Intersector{W: w, Mode: mode, Qual: overlapQual{Fraction: -1}}
}

// ChromStart implements Operator.
func (op *Intersector) ChromStart(chrom []byte) error { return nil }

// ChromEnd implements Operator.
func (op *Intersector) ChromEnd() error { return nil }

// Step implements Operator.
func (op *Intersector) Step(a *Record, f *Flow) error {
	var count uint64
	live := f.Set.Live()
	for i := range live {
		b := &live[i]
		s, e, ok := op.Qual.qualify(a.Start, a.End, a.Len(), b)
		if !ok {
			continue
		}
		count++
		switch op.Mode {
		case IntersectOverlap:
			op.W.WriteInterval(a.Chrom, s, e, a.Tail)
		case IntersectWriteA:
			op.W.WriteRecord(a)
		case IntersectWriteB:
			op.W.WriteRecord(b)
		case IntersectWriteBoth:
			op.W.FieldRecord(a)
			op.W.FieldRecord(b)
			op.W.End()
		case IntersectUniqueA:
			op.W.WriteRecord(a)
			return op.W.Err()
		case IntersectNoOverlapA, IntersectCountA:
			// counted below
		}
	}
	switch op.Mode {
	case IntersectNoOverlapA:
		if count == 0 {
			op.W.WriteRecord(a)
		}
	case IntersectCountA:
		op.W.FieldRecord(a)
		op.W.FieldUint(count)
		op.W.End()
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Intersector) Finish() error { return op.W.Err() }
