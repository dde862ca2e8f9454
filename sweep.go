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
	"io"
)

// Cursor is a pull source of sorted records. Read returns io.EOF at end;
// the record is valid until the next Read.
type Cursor interface {
	Read() (*Record, error)
}

// SliceCursor replays an in-memory record slice, the sorted-input
// fallback's hand-off into the streaming core.
type SliceCursor struct {
	recs []Record
	i    int
}

// NewSliceCursor wraps recs, which must already be sorted.
func NewSliceCursor(recs []Record) *SliceCursor {
	return &SliceCursor{recs: recs}
}

// Read implements Cursor.
func (c *SliceCursor) Read() (*Record, error) {
	if c.i >= len(c.recs) {
		return nil, io.EOF
	}
	r := &c.recs[c.i]
	c.i++
	return r, nil
}

// emptyCursor backs single-input operators on the B side.
type emptyCursor struct{}

func (emptyCursor) Read() (*Record, error) {
	return nil, io.EOF
}

// EmptyCursor returns a cursor that is immediately exhausted.
func EmptyCursor() Cursor {
	return emptyCursor{}
}

// peeker wraps a cursor with validation and a bounded owned look-ahead
// queue. Records surfaced by peek stay queued until dropped; this is the
// one place the core relaxes strict O(k) memory (closest's look-ahead).
type peeker struct {
	c     Cursor
	check *SortChecker
	q     []Record
	qhead int
	free  [][]byte
	done  bool
	n     uint64
}

func newPeeker(c Cursor, check *SortChecker) *peeker {
	return &peeker{c: c, check: check}
}

func (p *peeker) grab(n int) []byte {
	if k := len(p.free); k > 0 {
		buf := p.free[k-1]
		p.free = p.free[:k-1]
		return buf
	}
	return make([]byte, 0, n)
}

func (p *peeker) pull() error {
	r, err := p.c.Read()
	if err == io.EOF {
		p.done = true
		return nil
	}
	if err != nil {
		return err
	}
	p.n++
	if p.check != nil {
		if err := p.check.Check(r); err != nil {
			return err
		}
	}
	if p.qhead == len(p.q) {
		p.q = p.q[:0]
		p.qhead = 0
	}
	p.q = append(p.q, r.Clone(p.grab(len(r.Chrom)+len(r.Tail))))
	return nil
}

// peek returns the i-th unconsumed record (0-based), or nil at end.
func (p *peeker) peek(i int) (*Record, error) {
	for len(p.q)-p.qhead <= i {
		if p.done {
			return nil, nil
		}
		if err := p.pull(); err != nil {
			return nil, err
		}
	}
	return &p.q[p.qhead+i], nil
}

// drop consumes the head record, recycling its buffer.
func (p *peeker) drop() {
	r := &p.q[p.qhead]
	if cap(r.Chrom) > 0 {
		p.free = append(p.free, r.Chrom[:0])
	}
	p.qhead++
}

// Flow is the per-step view the driver hands to an operator: the active
// set plus bounded look-ahead into the unadmitted B stream.
type Flow struct {
	Set   *ActiveSet
	b     *peeker
	chrom []byte
	err   error
}

// PeekB returns the i-th unadmitted B record if it is on the current
// chromosome, else nil. Records seen this way stay buffered until the
// driver admits or skips them.
func (f *Flow) PeekB(i int) *Record {
	if f.err != nil {
		return nil
	}
	r, err := f.b.peek(i)
	if err != nil {
		f.err = err
		return nil
	}
	if r == nil || !bytes.Equal(r.Chrom, f.chrom) {
		return nil
	}
	return r
}

// Operator is the capability the sweep driver is generic over. The
// driver calls ChromStart on A's first record of each chromosome, Step
// once per A record after admission and eviction, ChromEnd at every
// chromosome boundary, and Finish once at end of input.
type Operator interface {
	ChromStart(chrom []byte) error
	Step(a *Record, f *Flow) error
	ChromEnd() error
	Finish() error
}

// Spanner widens the admission/eviction span around an A record; window
// uses it to pull in B records near, not just inside, A.
type Spanner interface {
	Span(a *Record) (start, end uint64)
}

// RunStats accumulates per-invocation counters for --stats reporting.
type RunStats struct {
	ARecords  uint64
	BRecords  uint64
	MaxActive int
}

// SweepOptions configures one driver invocation.
type SweepOptions struct {
	// Genome supplies chromosome ordering to the validators; may be nil.
	Genome *Genome
	// AssumeSorted skips the validators entirely.
	AssumeSorted bool
	// Compat is the process-wide zero-length-point mode, threaded by
	// value; it selects the active set's eviction rule. Parsing-side
	// normalization already happened in the readers.
	Compat bool
	// Stats, when non-nil, receives run counters.
	Stats *RunStats
}

// chromRanker resolves relative chromosome order during B catch-up. With
// a genome the ranks are fixed; otherwise chromosomes are ranked in the
// order the sweep first encounters them, which is consistent whenever
// both inputs follow one global order (the sorted-input contract).
type chromRanker struct {
	genome *Genome
	ranks  map[string]int
}

func newChromRanker(g *Genome) *chromRanker {
	return &chromRanker{genome: g, ranks: make(map[string]int, 64)}
}

func (cr *chromRanker) rank(chrom []byte) int {
	if cr.genome != nil {
		if r, ok := cr.genome.Rank(chrom); ok {
			return r
		}
		return cr.genome.Len() // unknown sorts last; validators reject it anyway
	}
	if r, ok := cr.ranks[string(chrom)]; ok {
		return r
	}
	r := len(cr.ranks)
	cr.ranks[string(chrom)] = r
	return r
}

// catchUpB advances the B cursor to the current A chromosome. Blocks of
// chromosomes the sweep has passed are dropped outright (by rank with a
// genome, by A's history without one). A block for a chromosome A never
// started is dropped only once the look-ahead shows the current
// chromosome beyond it, so inputs with unequal chromosome sets stay
// correct; the records scanned over live in the peeker queue, never the
// active set.
func catchUpB(bp *peeker, curChrom []byte, aPassed map[string]struct{}, genome *Genome) error {
	var curRank int
	if genome != nil {
		curRank, _ = genome.Rank(curChrom)
	}
	for {
		p, err := bp.peek(0)
		if err != nil {
			return err
		}
		if p == nil || bytes.Equal(p.Chrom, curChrom) {
			return nil
		}
		if genome != nil {
			if r, ok := genome.Rank(p.Chrom); ok && r < curRank {
				bp.drop()
				continue
			}
			return nil
		}
		if _, ok := aPassed[string(p.Chrom)]; ok {
			bp.drop()
			continue
		}
		// a chromosome A never visited: skip its block only if B shows
		// the current chromosome further on
		found := -1
		for i := 1; ; i++ {
			q, err := bp.peek(i)
			if err != nil {
				return err
			}
			if q == nil {
				break
			}
			if bytes.Equal(q.Chrom, curChrom) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil
		}
		for ; found > 0; found-- {
			bp.drop()
		}
		return nil
	}
}

// Sweep runs the operator over sorted cursors a and b. Output order is a
// total function of input order: A order preserved, per-A emissions in B
// admission order.
func Sweep(a, b Cursor, op Operator, opt SweepOptions) error {
	var checkA, checkB *SortChecker
	if !opt.AssumeSorted {
		checkA = NewSortChecker(opt.Genome)
		checkB = NewSortChecker(opt.Genome)
	}

	set := NewActiveSet(opt.Compat)
	bp := newPeeker(b, checkB)
	f := &Flow{Set: set, b: bp}

	var curChrom []byte
	var aCount uint64
	started := false
	aPassed := make(map[string]struct{}, 64)

	for {
		rec, err := a.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		aCount++
		if checkA != nil {
			if err = checkA.Check(rec); err != nil {
				return err
			}
		}

		if !started || !bytes.Equal(rec.Chrom, curChrom) {
			if started {
				if err = op.ChromEnd(); err != nil {
					return err
				}
			}
			set.Reset()
			if started {
				aPassed[string(curChrom)] = struct{}{}
			}
			curChrom = append(curChrom[:0], rec.Chrom...)
			f.chrom = curChrom
			if err = catchUpB(bp, curChrom, aPassed, opt.Genome); err != nil {
				return err
			}

			if err = op.ChromStart(curChrom); err != nil {
				return err
			}
			started = true
		}

		qs, qe := rec.Start, rec.End
		if sp, ok := op.(Spanner); ok {
			qs, qe = sp.Span(rec)
		}

		for {
			p, err := bp.peek(0)
			if err != nil {
				return err
			}
			if p == nil || !bytes.Equal(p.Chrom, curChrom) {
				break
			}
			// a zero-length span still admits the B starting exactly on it,
			// so the point-containment rule can see its candidates
			if p.Start < qe || (qs == qe && p.Start == qs) {
				set.Admit(p)
				bp.drop()
				continue
			}
			break
		}
		set.Advance(qs)

		if err = op.Step(rec, f); err != nil {
			return err
		}
		if f.err != nil {
			return f.err
		}
	}

	if started {
		if err := op.ChromEnd(); err != nil {
			return err
		}
	}
	if err := op.Finish(); err != nil {
		return err
	}

	if opt.Stats != nil {
		opt.Stats.ARecords = aCount
		opt.Stats.BRecords = bp.n
		opt.Stats.MaxActive = set.MaxLen()
	}
	return nil
}
