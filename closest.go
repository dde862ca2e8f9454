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

// TiePolicy says which of several equally close B records to report.
type TiePolicy int

const (
	// TieAll reports every tied record, in B start order.
	TieAll TiePolicy = iota
	// TieFirst reports the first in B start order.
	TieFirst
	// TieLast reports the last in B start order.
	TieLast
)

type closestCand struct {
	rec  Record
	dist int64
}

// Closest reports, for each A record, the nearest B record by signed
// genomic distance: 0 on overlap, positive downstream (b.start - a.end),
// negative upstream (b.end - a.start). Upstream candidates come from the
// active set's eviction trail; downstream ones from bounded look-ahead
// into the unadmitted B stream. A records with no candidate emit the
// sentinel row.
type Closest struct {
	W              *Writer
	MaxDistance    int64 // < 0 means unlimited
	Tie            TiePolicy
	IgnoreOverlap  bool
	IgnoreUpstream bool
	IgnoreDown     bool
	ReportDistance bool

	cands []closestCand
}

// NewClosest returns a closest operator with no distance cap.
func NewClosest(w *Writer) *Closest {
	return &Closest{W: w, MaxDistance: -1}
}

// ChromStart implements Operator.
func (op *Closest) ChromStart(chrom []byte) error { return nil }

// ChromEnd implements Operator.
func (op *Closest) ChromEnd() error { return nil }

func (op *Closest) within(d int64) bool {
	if op.MaxDistance < 0 {
		return true
	}
	if d < 0 {
		d = -d
	}
	return d <= op.MaxDistance
}

// Step implements Operator.
func (op *Closest) Step(a *Record, f *Flow) error {
	op.cands = op.cands[:0]

	if !op.IgnoreOverlap {
		live := f.Set.Live()
		for i := range live {
			b := &live[i]
			over := b.Overlaps(a.Start, a.End)
			if a.Len() == 0 {
				over = b.ContainsPoint(a.Start)
			}
			if over {
				op.cands = append(op.cands, closestCand{rec: *b, dist: 0})
			}
		}
	}

	if len(op.cands) == 0 {
		best := int64(-1)

		if !op.IgnoreUpstream {
			addUpstream := func(b Record) {
				if b.End > a.Start {
					return
				}
				d := int64(a.Start - b.End)
				if !op.within(d) {
					return
				}
				if best < 0 || d < best {
					best = d
					op.cands = op.cands[:0]
				}
				if d == best {
					op.cands = append(op.cands, closestCand{rec: b, dist: -d})
				}
			}
			for _, b := range f.Set.Upstream() {
				addUpstream(b)
			}
			// compat-mode eviction keeps bookended members live
			live := f.Set.Live()
			for i := range live {
				if live[i].End <= a.Start {
					addUpstream(live[i])
				}
			}
		}

		if !op.IgnoreDown {
			for i := 0; ; i++ {
				b := f.PeekB(i)
				if b == nil {
					break
				}
				if b.Start < a.End {
					continue // admitted late by a zero-length span corner
				}
				d := int64(b.Start - a.End)
				if best >= 0 && d > best {
					break
				}
				if !op.within(d) {
					break
				}
				if best < 0 || d < best {
					best = d
					op.cands = op.cands[:0]
				}
				op.cands = append(op.cands, closestCand{rec: *b, dist: d})
			}
		}

		// the downstream scan may have undercut surviving upstream ties
		w := 0
		for _, c := range op.cands {
			d := c.dist
			if d < 0 {
				d = -d
			}
			if d == best {
				op.cands[w] = c
				w++
			}
		}
		op.cands = op.cands[:w]
	}

	if len(op.cands) == 0 {
		op.W.FieldRecord(a)
		op.W.FieldStr(".")
		op.W.FieldInt(-1)
		op.W.FieldInt(-1)
		if op.ReportDistance {
			op.W.FieldInt(-1)
		}
		op.W.End()
		return op.W.Err()
	}

	sort.SliceStable(op.cands, func(i, j int) bool {
		if op.cands[i].rec.Start != op.cands[j].rec.Start {
			return op.cands[i].rec.Start < op.cands[j].rec.Start
		}
		return op.cands[i].rec.End < op.cands[j].rec.End
	})

	switch op.Tie {
	case TieFirst:
		op.cands = op.cands[:1]
	case TieLast:
		op.cands = op.cands[len(op.cands)-1:]
	}
	for i := range op.cands {
		c := &op.cands[i]
		op.W.FieldRecord(a)
		op.W.FieldRecord(&c.rec)
		if op.ReportDistance {
			op.W.FieldInt(c.dist)
		}
		op.W.End()
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Closest) Finish() error { return op.W.Err() }
