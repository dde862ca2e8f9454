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
	"testing"

	"github.com/stretchr/testify/assert"
)

func genomecovString(t *testing.T, in string, g *Genome, mode GenomeCovMode, scale float64) string {
	t.Helper()
	return sweepString(t, func(w *Writer) Operator {
		op := NewGenomeCover(w, g)
		op.Mode = mode
		op.Scale = scale
		return op
	}, in, "", SweepOptions{Genome: g})
}

func TestGenomeCovBedGraph(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100))
	got := genomecovString(t, "chr1\t10\t30\nchr1\t20\t50\n", g, GenomeCovBedGraph, 1)
	want := "chr1\t10\t20\t1\n" +
		"chr1\t20\t30\t2\n" +
		"chr1\t30\t50\t1\n"
	assert.Equal(t, want, got)
}

func TestGenomeCovBedGraphAll(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100), "chr2", uint64(50))
	got := genomecovString(t, "chr1\t10\t30\n", g, GenomeCovBedGraphAll, 1)
	want := "chr1\t0\t10\t0\n" +
		"chr1\t10\t30\t1\n" +
		"chr1\t30\t100\t0\n" +
		"chr2\t0\t50\t0\n"
	assert.Equal(t, want, got)
}

func TestGenomeCovHist(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100), "chr2", uint64(50))
	got := genomecovString(t, "chr1\t10\t30\nchr1\t20\t50\n", g, GenomeCovHist, 1)
	want := "chr1\t0\t60\t0.6\n" +
		"chr1\t1\t30\t0.3\n" +
		"chr1\t2\t10\t0.1\n" +
		"chr2\t0\t50\t1\n" +
		"genome\t0\t110\t" + "0.7333333333333333" + "\n" +
		"genome\t1\t30\t0.2\n" +
		"genome\t2\t10\t" + "0.06666666666666667" + "\n"
	assert.Equal(t, want, got)
}

func TestGenomeCovScale(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100))
	got := genomecovString(t, "chr1\t10\t30\n", g, GenomeCovBedGraph, 0.5)
	assert.Equal(t, "chr1\t10\t30\t0.5\n", got)
}

func TestGenomeCovClipsToChromosomeSize(t *testing.T) {
	g := testGenome(t, "chr1", uint64(40))
	got := genomecovString(t, "chr1\t10\t60\n", g, GenomeCovBedGraph, 1)
	assert.Equal(t, "chr1\t10\t40\t1\n", got)
}

func TestGenomeCovAdjacentRuns(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100))
	// bookended equal-depth inputs coalesce into one BedGraph run
	got := genomecovString(t, "chr1\t10\t20\nchr1\t20\t30\n", g, GenomeCovBedGraph, 1)
	assert.Equal(t, "chr1\t10\t30\t1\n", got)
}

func TestGenomeCovEmptyInput(t *testing.T) {
	g := testGenome(t, "chr1", uint64(100))
	assert.Equal(t, "", genomecovString(t, "", g, GenomeCovBedGraph, 1))
	assert.Equal(t, "chr1\t0\t100\t0\n", genomecovString(t, "", g, GenomeCovBedGraphAll, 1))
	assert.Equal(t, "chr1\t0\t100\t1\ngenome\t0\t100\t1\n",
		genomecovString(t, "", g, GenomeCovHist, 1))
}
