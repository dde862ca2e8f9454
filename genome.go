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
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/breader"
)

// GenomeChrom is one (chromosome, size) pair of a genome file.
type GenomeChrom struct {
	Name string
	Size uint64
}

// Genome is the ordered chromosome table loaded from a genome file. The
// order of entries defines chromosome rank; sizes bound the right edge
// for operators that need one.
type Genome struct {
	chroms []GenomeChrom
	index  map[string]int
}

// NewGenome returns an empty genome table.
func NewGenome() *Genome {
	return &Genome{index: make(map[string]int, 64)}
}

// Add appends one chromosome. Duplicate names and zero sizes are errors.
func (g *Genome) Add(name string, size uint64) error {
	if name == "" {
		return &GenomeError{Msg: "empty chromosome name"}
	}
	if size == 0 {
		return &GenomeError{Msg: fmt.Sprintf("chromosome %s: size must be positive", name)}
	}
	if _, ok := g.index[name]; ok {
		return &GenomeError{Msg: fmt.Sprintf("duplicate chromosome: %s", name)}
	}
	g.index[name] = len(g.chroms)
	g.chroms = append(g.chroms, GenomeChrom{Name: name, Size: size})
	return nil
}

// Len returns the number of chromosomes.
func (g *Genome) Len() int {
	return len(g.chroms)
}

// At returns the i-th chromosome in genome order.
func (g *Genome) At(i int) GenomeChrom {
	return g.chroms[i]
}

// TotalSize returns the summed chromosome sizes.
func (g *Genome) TotalSize() uint64 {
	var n uint64
	for _, c := range g.chroms {
		n += c.Size
	}
	return n
}

// Rank returns the chromosome's position in genome order.
func (g *Genome) Rank(chrom []byte) (int, bool) {
	i, ok := g.index[string(chrom)]
	return i, ok
}

// Size returns the chromosome's length bound.
func (g *Genome) Size(chrom []byte) (uint64, bool) {
	i, ok := g.index[string(chrom)]
	if !ok {
		return 0, false
	}
	return g.chroms[i].Size, true
}

type genomeEntry struct {
	name string
	size uint64
	line int
}

// ReadGenome loads a genome file: tab-separated chromosome and size, one
// per line, order significant. Plain or gzipped files both work.
func ReadGenome(file string) (*Genome, error) {
	var line int
	fn := func(l string) (interface{}, bool, error) {
		line++
		l = strings.TrimRight(l, "\r\n")
		if l == "" || l[0] == '#' {
			return nil, false, nil
		}
		items := strings.Fields(l)
		if len(items) < 2 {
			return nil, false, &GenomeError{File: file, Line: line, Msg: "fewer than 2 fields"}
		}
		size, err := strconv.ParseUint(items[1], 10, 64)
		if err != nil {
			return nil, false, &GenomeError{File: file, Line: line,
				Msg: fmt.Sprintf("invalid size: %s", items[1])}
		}
		return genomeEntry{name: items[0], size: size, line: line}, true, nil
	}

	// single worker keeps line numbering and order deterministic
	reader, err := breader.NewBufferedReader(file, 1, 64, fn)
	if err != nil {
		return nil, err
	}

	g := NewGenome()
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		for _, data := range chunk.Data {
			e := data.(genomeEntry)
			if err := g.Add(e.name, e.size); err != nil {
				if ge, ok := err.(*GenomeError); ok {
					ge.File = file
					ge.Line = e.line
				}
				return nil, err
			}
		}
	}
	if g.Len() == 0 {
		return nil, &GenomeError{File: file, Msg: "no chromosomes"}
	}
	return g, nil
}
