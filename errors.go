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
	"errors"
	"fmt"
)

// ErrEmptyLine reports an empty line. The reader skips empty lines itself
// and does not return it.
var ErrEmptyLine = errors.New("grit: empty line")

// ErrGenomeRequired means an operator that needs a chromosome bound was
// invoked without a genome file.
var ErrGenomeRequired = errors.New("grit: a genome file (-g/--genome) is required for this operation")

// ParseError means a malformed BED line: too few fields, a non-numeric
// coordinate, or start > end. It locates the line and the offending field.
type ParseError struct {
	Line  int
	Field string
	Text  []byte
	Msg   string
}

func (e *ParseError) Error() string {
	if len(e.Text) == 0 {
		return fmt.Sprintf("grit: line %d: %s field: %s", e.Line, e.Field, e.Msg)
	}
	return fmt.Sprintf("grit: line %d: %s field: %s: %q", e.Line, e.Field, e.Msg, e.Text)
}

// UnsortedKind tags the way an input violated the sort contract.
type UnsortedKind int

const (
	// UnsortedPosition: start went backwards within a chromosome.
	UnsortedPosition UnsortedKind = iota
	// ChromosomeRevisited: a chromosome block appeared twice.
	ChromosomeRevisited
	// ChromosomeNotInGenome: a chromosome is absent from the genome file.
	ChromosomeNotInGenome
	// ChromosomeOrder: chromosome blocks disagree with the genome order.
	ChromosomeOrder
)

const sortHint = `input must be sorted; run "grit sort" on the file first, or pass --allow-unsorted where supported`

// UnsortedError means the sorted-input contract was violated. All
// operators treat it as fatal; the message names the fix.
type UnsortedError struct {
	Kind      UnsortedKind
	Chrom     string
	PrevStart uint64
	ThisStart uint64
	Line      int
}

func (e *UnsortedError) Error() string {
	switch e.Kind {
	case ChromosomeRevisited:
		return fmt.Sprintf("grit: line %d: chromosome %s revisited (%s)",
			e.Line, e.Chrom, sortHint)
	case ChromosomeNotInGenome:
		return fmt.Sprintf("grit: line %d: chromosome %s not in genome file (%s)",
			e.Line, e.Chrom, sortHint)
	case ChromosomeOrder:
		return fmt.Sprintf("grit: line %d: chromosome %s out of genome order (%s)",
			e.Line, e.Chrom, sortHint)
	}
	return fmt.Sprintf("grit: line %d: %s: position %d after %d (%s)",
		e.Line, e.Chrom, e.ThisStart, e.PrevStart, sortHint)
}

// GenomeError means a malformed genome file: duplicate chromosome,
// missing or non-positive size.
type GenomeError struct {
	File string
	Line int
	Msg  string
}

func (e *GenomeError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("grit: genome: %s", e.Msg)
	}
	return fmt.Sprintf("grit: genome file %s, line %d: %s", e.File, e.Line, e.Msg)
}

// InvariantError signals a programmer error inside an operator. It is
// never expected at runtime.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("grit: %s: internal invariant violated: %s", e.Op, e.Msg)
}
