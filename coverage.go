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

// CoverageMode selects the coverage report shape.
type CoverageMode int

const (
	// CoverageDefault appends count, covered bases, length and fraction
	// to each A record.
	CoverageDefault CoverageMode = iota
	// CoverageHist reports per-depth base counts per chromosome plus a
	// genome aggregate.
	CoverageHist
	// CoveragePerBase reports chrom/pos/depth for every base of A.
	CoveragePerBase
	// CoverageMean appends the mean B depth across each A record.
	CoverageMean
)

type depthEvent struct {
	pos   uint64
	delta int
}

type chromHist struct {
	name  string
	depth map[uint64]uint64
	total uint64
}

// Coverer summarizes how deeply B covers each A record.
type Coverer struct {
	W    *Writer
	Mode CoverageMode

	events []depthEvent
	hists  []chromHist
	cur    *chromHist
}

// ChromStart implements Operator.
func (op *Coverer) ChromStart(chrom []byte) error {
	if op.Mode == CoverageHist {
		op.hists = append(op.hists, chromHist{
			name:  string(chrom),
			depth: make(map[uint64]uint64, 16),
		})
		op.cur = &op.hists[len(op.hists)-1]
	}
	return nil
}

// ChromEnd implements Operator.
func (op *Coverer) ChromEnd() error { return nil }

// gatherEvents turns the B overlaps of a, clipped to a, into depth events
// sorted by position, and returns how many B overlap a.
func (op *Coverer) gatherEvents(a *Record, f *Flow) (count uint64) {
	op.events = op.events[:0]
	live := f.Set.Live()
	for i := range live {
		b := &live[i]
		if !b.Overlaps(a.Start, a.End) {
			continue
		}
		count++
		s, e := b.Start, b.End
		if s < a.Start {
			s = a.Start
		}
		if e > a.End {
			e = a.End
		}
		op.events = append(op.events, depthEvent{s, +1}, depthEvent{e, -1})
	}
	sort.Slice(op.events, func(i, j int) bool {
		return op.events[i].pos < op.events[j].pos
	})
	return count
}

// runDepths walks the event list across [a.Start, a.End), calling fn for
// each maximal constant-depth run, zero-depth runs included.
func (op *Coverer) runDepths(a *Record, fn func(s, e uint64, depth uint64)) {
	pos := a.Start
	depth := uint64(0)
	for i := 0; i < len(op.events); {
		p := op.events[i].pos
		if p > pos {
			fn(pos, p, depth)
			pos = p
		}
		for i < len(op.events) && op.events[i].pos == p {
			if op.events[i].delta > 0 {
				depth++
			} else {
				depth--
			}
			i++
		}
	}
	if pos < a.End {
		fn(pos, a.End, depth)
	}
}

// Step implements Operator.
func (op *Coverer) Step(a *Record, f *Flow) error {
	count := op.gatherEvents(a, f)

	switch op.Mode {
	case CoverageDefault:
		var covered uint64
		op.runDepths(a, func(s, e, depth uint64) {
			if depth > 0 {
				covered += e - s
			}
		})
		frac := 0.0
		if a.Len() > 0 {
			frac = float64(covered) / float64(a.Len())
		}
		op.W.FieldRecord(a)
		op.W.FieldUint(count)
		op.W.FieldUint(covered)
		op.W.FieldUint(a.Len())
		op.W.FieldFloat(frac)
		op.W.End()

	case CoverageHist:
		op.cur.total += a.Len()
		op.runDepths(a, func(s, e, depth uint64) {
			op.cur.depth[depth] += e - s
		})

	case CoveragePerBase:
		op.runDepths(a, func(s, e, depth uint64) {
			for p := s; p < e; p++ {
				op.W.Field(a.Chrom)
				op.W.FieldUint(p)
				op.W.FieldUint(depth)
				op.W.End()
			}
		})

	case CoverageMean:
		var sum uint64
		op.runDepths(a, func(s, e, depth uint64) {
			sum += (e - s) * depth
		})
		mean := 0.0
		if a.Len() > 0 {
			mean = float64(sum) / float64(a.Len())
		}
		op.W.FieldRecord(a)
		op.W.FieldFloat(mean)
		op.W.End()
	}
	return op.W.Err()
}

func (op *Coverer) emitHist(name string, depth map[uint64]uint64, total uint64) {
	keys := make([]uint64, 0, len(depth))
	for d := range depth {
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, d := range keys {
		frac := 0.0
		if total > 0 {
			frac = float64(depth[d]) / float64(total)
		}
		op.W.FieldStr(name)
		op.W.FieldUint(d)
		op.W.FieldUint(depth[d])
		op.W.FieldFloat(frac)
		op.W.End()
	}
}

// Finish implements Operator.
func (op *Coverer) Finish() error {
	if op.Mode != CoverageHist {
		return op.W.Err()
	}
	agg := make(map[uint64]uint64, 16)
	var total uint64
	for i := range op.hists {
		h := &op.hists[i]
		op.emitHist(h.name, h.depth, h.total)
		for d, n := range h.depth {
			agg[d] += n
		}
		total += h.total
	}
	op.emitHist("genome", agg, total)
	return op.W.Err()
}
