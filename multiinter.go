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
	"bytes"
	"container/heap"
	"strconv"
)

// miSource is one input of the N-way intersection: a validated peeking
// cursor plus the running depth state for the current chromosome.
type miSource struct {
	p     *peeker
	ends  endHeap
	depth uint64
}

// nextEvent returns this source's next event position on chrom: the
// smaller of its next record start and its earliest outstanding end.
func (s *miSource) nextEvent(chrom []byte) (uint64, bool, error) {
	pos := ^uint64(0)
	ok := false
	if len(s.ends) > 0 {
		pos = s.ends[0]
		ok = true
	}
	r, err := s.p.peek(0)
	if err != nil {
		return 0, false, err
	}
	if r != nil && bytes.Equal(r.Chrom, chrom) && r.Start < pos {
		pos = r.Start
		ok = true
	}
	return pos, ok, nil
}

// applyEvents consumes every event of this source at pos.
func (s *miSource) applyEvents(chrom []byte, pos uint64) error {
	for len(s.ends) > 0 && s.ends[0] == pos {
		heap.Pop(&s.ends)
		s.depth--
	}
	for {
		r, err := s.p.peek(0)
		if err != nil {
			return err
		}
		if r == nil || !bytes.Equal(r.Chrom, chrom) || r.Start != pos {
			return nil
		}
		if r.End > r.Start {
			heap.Push(&s.ends, r.End)
			s.depth++
		}
		s.p.drop()
	}
}

// MultiIntersect partitions the genome into the maximal half-open runs
// over which the set of covering inputs is constant, emitting each run
// with its cover count and the 1-based indices of the covering inputs.
// With cluster set, only runs covered by every input are emitted. Memory
// is bounded by N plus the per-chromosome active counts.
func MultiIntersect(cursors []Cursor, w *Writer, opt SweepOptions, cluster bool) error {
	n := len(cursors)
	srcs := make([]*miSource, n)
	for i, c := range cursors {
		var check *SortChecker
		if !opt.AssumeSorted {
			check = NewSortChecker(opt.Genome)
		}
		srcs[i] = &miSource{p: newPeeker(c, check)}
	}
	ranker := newChromRanker(opt.Genome)
	var list []byte

	// pending run, so adjacent runs with identical membership coalesce
	var pendS, pendE, pendN uint64
	var pendList []byte
	pendOpen := false
	flush := func(chrom []byte) {
		if !pendOpen {
			return
		}
		w.Field(chrom)
		w.FieldUint(pendS)
		w.FieldUint(pendE)
		w.FieldUint(pendN)
		w.Field(pendList)
		w.End()
		pendOpen = false
	}

	for {
		// pick the lowest-ranked chromosome still pending on any input
		var chrom []byte
		best := -1
		for _, s := range srcs {
			r, err := s.p.peek(0)
			if err != nil {
				return err
			}
			if r == nil {
				continue
			}
			if rank := ranker.rank(r.Chrom); best < 0 || rank < best {
				best = rank
				chrom = r.Chrom
			}
		}
		if best < 0 {
			break
		}
		chrom = append([]byte(nil), chrom...)

		prev := uint64(0)
		started := false
		var count uint64
		for {
			pos := ^uint64(0)
			any := false
			for _, s := range srcs {
				p, ok, err := s.nextEvent(chrom)
				if err != nil {
					return err
				}
				if ok && p < pos {
					pos = p
					any = true
				} else if ok {
					any = true
				}
			}
			if !any {
				break
			}

			if started && pos > prev && count > 0 && (!cluster || count == uint64(n)) {
				list = list[:0]
				for i, s := range srcs {
					if s.depth > 0 {
						if len(list) > 0 {
							list = append(list, ',')
						}
						list = strconv.AppendInt(list, int64(i+1), 10)
					}
				}
				if pendOpen && pendE == prev && bytes.Equal(pendList, list) {
					pendE = pos
				} else {
					flush(chrom)
					pendS, pendE, pendN = prev, pos, count
					pendList = append(pendList[:0], list...)
					pendOpen = true
				}
			}

			count = 0
			for _, s := range srcs {
				if err := s.applyEvents(chrom, pos); err != nil {
					return err
				}
				if s.depth > 0 {
					count++
				}
			}
			prev = pos
			started = true
		}
		flush(chrom)

		if w.Err() != nil {
			return w.Err()
		}
	}

	if opt.Stats != nil {
		for _, s := range srcs {
			opt.Stats.ARecords += s.p.n
		}
	}
	return w.Err()
}
