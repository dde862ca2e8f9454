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

// JaccardResult is the single row jaccard reports.
type JaccardResult struct {
	Intersection   uint64
	Union          uint64
	Ratio          float64
	NIntersections uint64
}

// unionBlocks streams the merged union of one sorted cursor: maximal
// blocks of overlapping or bookended intervals, one chromosome at a
// time.
type unionBlocks struct {
	c     Cursor
	check *SortChecker
	n     uint64

	chrom []byte
	out   []byte // returned chrom, detached from the running buffer
	lo    uint64
	hi    uint64
	open  bool
	done  bool
}

func newUnionBlocks(c Cursor, check *SortChecker) *unionBlocks {
	return &unionBlocks{c: c, check: check}
}

// next returns the next merged block, or ok=false at end of input.
func (u *unionBlocks) next() (chrom []byte, lo, hi uint64, ok bool, err error) {
	for {
		if u.done {
			if u.open {
				u.open = false
				return u.chrom, u.lo, u.hi, true, nil
			}
			return nil, 0, 0, false, nil
		}
		r, err := u.c.Read()
		if err == io.EOF {
			u.done = true
			continue
		}
		if err != nil {
			return nil, 0, 0, false, err
		}
		u.n++
		if u.check != nil {
			if err := u.check.Check(r); err != nil {
				return nil, 0, 0, false, err
			}
		}
		if u.open && bytes.Equal(r.Chrom, u.chrom) && r.Start <= u.hi {
			if r.End > u.hi {
				u.hi = r.End
			}
			continue
		}
		u.out = append(u.out[:0], u.chrom...)
		chrom, lo, hi = u.out, u.lo, u.hi
		ok = u.open
		u.chrom = append(u.chrom[:0], r.Chrom...)
		u.lo = r.Start
		u.hi = r.End
		u.open = true
		if ok {
			return chrom, lo, hi, true, nil
		}
	}
}

// Jaccard computes the base-wise similarity of the merged unions of two
// sorted inputs. The pair count counts intersecting (A-block, B-block)
// pairs, each pair once. It is a symmetric statistic, so it owns its
// sweep instead of riding the A-driven driver.
func Jaccard(a, b Cursor, opt SweepOptions) (JaccardResult, error) {
	var res JaccardResult
	var checkA, checkB *SortChecker
	if !opt.AssumeSorted {
		checkA = NewSortChecker(opt.Genome)
		checkB = NewSortChecker(opt.Genome)
	}
	ua := newUnionBlocks(a, checkA)
	ub := newUnionBlocks(b, checkB)
	ranker := newChromRanker(opt.Genome)

	var sumA, sumB uint64

	ca, loA, hiA, okA, err := ua.next()
	if err != nil {
		return res, err
	}
	cb, loB, hiB, okB, err := ub.next()
	if err != nil {
		return res, err
	}

	advanceA := func() error {
		sumA += hiA - loA
		ca, loA, hiA, okA, err = ua.next()
		return err
	}
	advanceB := func() error {
		sumB += hiB - loB
		cb, loB, hiB, okB, err = ub.next()
		return err
	}

	for okA && okB {
		if !bytes.Equal(ca, cb) {
			if ranker.rank(ca) < ranker.rank(cb) {
				if err = advanceA(); err != nil {
					return res, err
				}
			} else {
				if err = advanceB(); err != nil {
					return res, err
				}
			}
			continue
		}
		s, e := loA, loB
		if e > s {
			s = e
		}
		e = hiA
		if hiB < e {
			e = hiB
		}
		if e > s {
			res.Intersection += e - s
			res.NIntersections++
		}
		if hiA <= hiB {
			if err = advanceA(); err != nil {
				return res, err
			}
		} else {
			if err = advanceB(); err != nil {
				return res, err
			}
		}
	}
	for okA {
		if err = advanceA(); err != nil {
			return res, err
		}
	}
	for okB {
		if err = advanceB(); err != nil {
			return res, err
		}
	}

	res.Union = sumA + sumB - res.Intersection
	if res.Union > 0 {
		res.Ratio = float64(res.Intersection) / float64(res.Union)
	}
	if opt.Stats != nil {
		opt.Stats.ARecords = ua.n
		opt.Stats.BRecords = ub.n
	}
	return res, nil
}

// WriteJaccard emits the result row: intersection, union, ratio, pairs.
func WriteJaccard(w *Writer, res JaccardResult) error {
	w.FieldUint(res.Intersection)
	w.FieldUint(res.Union)
	w.FieldFloat(res.Ratio)
	w.FieldUint(res.NIntersections)
	w.End()
	return w.Err()
}
