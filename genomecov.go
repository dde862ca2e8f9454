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
	"container/heap"
	"sort"
)

// endHeap is a min-heap of interval end positions, the running sweep's
// outstanding -1 events.
type endHeap []uint64

func (h endHeap) Len() int            { return len(h) }
func (h endHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h endHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *endHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// GenomeCovMode selects the genomecov output format.
type GenomeCovMode int

const (
	// GenomeCovHist reports per-depth base counts per chromosome plus a
	// genome aggregate; every genome chromosome appears.
	GenomeCovHist GenomeCovMode = iota
	// GenomeCovBedGraph reports nonzero-depth runs in BedGraph form.
	GenomeCovBedGraph
	// GenomeCovBedGraphAll reports every run, zero-depth included.
	GenomeCovBedGraphAll
)

// GenomeCover computes per-base depth over the whole genome from a
// single sorted input. Starts are +1 events in input order; ends sit in
// a min-heap. A genome is mandatory for the right edge and for the
// chromosomes the input never touches.
type GenomeCover struct {
	W     *Writer
	G     *Genome
	Mode  GenomeCovMode
	Scale float64 // 1 means unscaled

	ends  endHeap
	pos   uint64
	depth uint64

	// pending BedGraph run, so equal-depth neighbors coalesce
	runS, runE, runD uint64
	runOpen          bool

	nextRank int
	size     uint64
	name     string

	hists []chromHist
	cur   *chromHist
}

// NewGenomeCover returns a genomecov operator in histogram mode.
func NewGenomeCover(w *Writer, g *Genome) *GenomeCover {
	return &GenomeCover{W: w, G: g, Scale: 1}
}

func (op *GenomeCover) emitValue(depth uint64) {
	if op.Scale == 1 {
		op.W.FieldUint(depth)
		return
	}
	op.W.FieldFloat(float64(depth) * op.Scale)
}

func (op *GenomeCover) flushRun() {
	if !op.runOpen {
		return
	}
	op.W.FieldStr(op.name)
	op.W.FieldUint(op.runS)
	op.W.FieldUint(op.runE)
	op.emitValue(op.runD)
	op.W.End()
	op.runOpen = false
}

func (op *GenomeCover) run(s, e, depth uint64) {
	switch op.Mode {
	case GenomeCovHist:
		op.cur.depth[depth] += e - s
	case GenomeCovBedGraph:
		if depth == 0 {
			return
		}
		fallthrough
	case GenomeCovBedGraphAll:
		if op.runOpen && op.runD == depth && op.runS < e && op.runE == s {
			op.runE = e
			return
		}
		op.flushRun()
		op.runS, op.runE, op.runD = s, e, depth
		op.runOpen = true
	}
}

func (op *GenomeCover) advanceTo(p uint64) {
	if p > op.size {
		p = op.size
	}
	for len(op.ends) > 0 && op.ends[0] <= p {
		e := op.ends[0]
		if e > op.pos {
			op.run(op.pos, e, op.depth)
			op.pos = e
		}
		heap.Pop(&op.ends)
		op.depth--
	}
	if p > op.pos {
		op.run(op.pos, p, op.depth)
		op.pos = p
	}
}

// skipped chromosomes still contribute their zero-depth span
func (op *GenomeCover) accountWhole(rank int) {
	c := op.G.At(rank)
	switch op.Mode {
	case GenomeCovHist:
		op.hists = append(op.hists, chromHist{
			name:  c.Name,
			depth: map[uint64]uint64{0: c.Size},
			total: c.Size,
		})
	case GenomeCovBedGraphAll:
		op.W.FieldStr(c.Name)
		op.W.FieldUint(0)
		op.W.FieldUint(c.Size)
		op.emitValue(0)
		op.W.End()
	}
}

// ChromStart implements Operator.
func (op *GenomeCover) ChromStart(chrom []byte) error {
	rank, ok := op.G.Rank(chrom)
	if !ok {
		return &UnsortedError{Kind: ChromosomeNotInGenome, Chrom: string(chrom)}
	}
	for r := op.nextRank; r < rank; r++ {
		op.accountWhole(r)
	}
	op.nextRank = rank + 1
	c := op.G.At(rank)
	op.name = c.Name
	op.size = c.Size
	op.pos = 0
	op.depth = 0
	op.ends = op.ends[:0]
	if op.Mode == GenomeCovHist {
		op.hists = append(op.hists, chromHist{
			name:  c.Name,
			depth: make(map[uint64]uint64, 16),
			total: c.Size,
		})
		op.cur = &op.hists[len(op.hists)-1]
	}
	return op.W.Err()
}

// Step implements Operator.
func (op *GenomeCover) Step(a *Record, f *Flow) error {
	s, e := a.Start, a.End
	if s > op.size {
		s = op.size
	}
	if e > op.size {
		e = op.size
	}
	op.advanceTo(s)
	if e > s {
		heap.Push(&op.ends, e)
		op.depth++
	}
	return op.W.Err()
}

// ChromEnd implements Operator.
func (op *GenomeCover) ChromEnd() error {
	op.advanceTo(op.size)
	op.flushRun()
	return op.W.Err()
}

// Finish implements Operator.
func (op *GenomeCover) Finish() error {
	for r := op.nextRank; r < op.G.Len(); r++ {
		op.accountWhole(r)
	}
	if op.Mode != GenomeCovHist {
		return op.W.Err()
	}
	agg := make(map[uint64]uint64, 16)
	var total uint64
	for i := range op.hists {
		h := &op.hists[i]
		op.emitHistRows(h.name, h.depth, h.total)
		for d, n := range h.depth {
			agg[d] += n
		}
		total += h.total
	}
	op.emitHistRows("genome", agg, total)
	return op.W.Err()
}

func (op *GenomeCover) emitHistRows(name string, depth map[uint64]uint64, total uint64) {
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
