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
	"strconv"
)

// Record is one BED interval. Coordinates are 0-based half-open, so
// [Start, End) contains End-Start bases. Tail holds every byte after the
// third field's separator, verbatim, so that operators which re-emit the
// input record produce identical bytes. Chrom and Tail may point into a
// reader-owned line buffer; they are only valid until the next Read
// unless the record is cloned.
type Record struct {
	Chrom []byte
	Start uint64
	End   uint64
	Tail  []byte
	Line  int
}

// Len returns the number of bases the interval contains.
func (r *Record) Len() uint64 {
	return r.End - r.Start
}

// Overlaps reports whether [r.Start, r.End) intersects [s, e) under the
// half-open rule. Zero-length intervals overlap nothing, themselves
// included.
func (r *Record) Overlaps(s, e uint64) bool {
	return r.Start < e && s < r.End && s < e && r.Start < r.End
}

// ContainsPoint reports whether position p lies inside the interval.
func (r *Record) ContainsPoint(p uint64) bool {
	return r.Start <= p && p < r.End
}

// Clone returns a record owning its bytes. Chrom and Tail are copied into
// a single backing buffer, optionally recycled from buf.
func (r *Record) Clone(buf []byte) Record {
	n := len(r.Chrom) + len(r.Tail)
	if cap(buf) < n {
		buf = make([]byte, 0, n)
	}
	buf = buf[:0]
	buf = append(buf, r.Chrom...)
	buf = append(buf, r.Tail...)
	c := *r
	c.Chrom = buf[:len(r.Chrom):len(r.Chrom)]
	c.Tail = buf[len(r.Chrom):n:n]
	return c
}

func isSep(b byte) bool {
	return b == '\t' || b == ' '
}

// skipLine reports whether the reader should silently drop the line:
// blank lines, comments, and track/browser headers.
func skipLine(line []byte) bool {
	if len(line) == 0 {
		return true
	}
	if line[0] == '#' {
		return true
	}
	return bytes.HasPrefix(line, []byte("track")) || bytes.HasPrefix(line, []byte("browser"))
}

// nextField returns the field starting at line[i] and the position just
// past it. The first three fields split on a tab or a run of blanks.
func nextField(line []byte, i int) (field []byte, next int) {
	j := i
	for j < len(line) && !isSep(line[j]) {
		j++
	}
	return line[i:j], j
}

func skipSeps(line []byte, i int) int {
	for i < len(line) && isSep(line[i]) {
		i++
	}
	return i
}

func parseCoord(field []byte) (uint64, bool) {
	if len(field) == 0 {
		return 0, false
	}
	var v uint64
	for _, b := range field {
		if b < '0' || b > '9' {
			return 0, false
		}
		d := uint64(b - '0')
		if v > (^uint64(0)-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// ParseRecord parses one BED line, already stripped of its terminator.
// The returned record borrows line's bytes. With compat set, a
// zero-length interval is widened to one base at parse time; this is the
// only transformation applied.
func ParseRecord(line []byte, lineNo int, compat bool) (Record, error) {
	rec := Record{Line: lineNo}

	chrom, i := nextField(line, 0)
	if len(chrom) == 0 {
		return rec, &ParseError{Line: lineNo, Field: "chrom", Text: line, Msg: "missing"}
	}
	if i == len(line) {
		return rec, &ParseError{Line: lineNo, Field: "start", Text: line, Msg: "fewer than 3 fields"}
	}

	i = skipSeps(line, i)
	sf, i := nextField(line, i)
	start, ok := parseCoord(sf)
	if !ok {
		return rec, &ParseError{Line: lineNo, Field: "start", Text: sf, Msg: "invalid coordinate"}
	}
	if i == len(line) {
		return rec, &ParseError{Line: lineNo, Field: "end", Text: line, Msg: "fewer than 3 fields"}
	}

	i = skipSeps(line, i)
	ef, i := nextField(line, i)
	end, ok := parseCoord(ef)
	if !ok {
		return rec, &ParseError{Line: lineNo, Field: "end", Text: ef, Msg: "invalid coordinate"}
	}
	if start > end {
		return rec, &ParseError{Line: lineNo, Field: "end", Text: line, Msg: "start greater than end"}
	}

	if compat && start == end {
		end = start + 1
	}

	rec.Chrom = chrom
	rec.Start = start
	rec.End = end
	if i < len(line) {
		// everything past one separator byte is the opaque tail
		rec.Tail = line[i+1:]
	}
	return rec, nil
}

// AppendRecord formats the record in its canonical byte form:
// chrom \t start \t end, then \t tail iff the tail is nonempty, then \n.
func AppendRecord(buf []byte, r *Record) []byte {
	buf = append(buf, r.Chrom...)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, r.Start, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, r.End, 10)
	if len(r.Tail) > 0 {
		buf = append(buf, '\t')
		buf = append(buf, r.Tail...)
	}
	return append(buf, '\n')
}

// tailField returns the i-th field (0-based) of a record tail, split on
// single tabs. BED column n lives at tail field n-4.
func tailField(tail []byte, i int) []byte {
	for ; i > 0; i-- {
		j := bytes.IndexByte(tail, '\t')
		if j < 0 {
			return nil
		}
		tail = tail[j+1:]
	}
	if j := bytes.IndexByte(tail, '\t'); j >= 0 {
		tail = tail[:j]
	}
	if len(tail) == 0 {
		return nil
	}
	return tail
}

// Strand reads the BED strand column (column 6) from the tail. Records
// without one count as '.'.
func (r *Record) Strand() byte {
	f := tailField(r.Tail, 2)
	if len(f) != 1 {
		return '.'
	}
	switch f[0] {
	case '+', '-':
		return f[0]
	}
	return '.'
}
