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
	"io"
	"strconv"
)

// Writer emits result rows. Numeric fields use the shortest decimal that
// round-trips: integers without leading zeros or signs, floats via
// strconv 'g' with precision -1 so 0.4 prints as "0.4" and 1 as "1".
// Errors are sticky; check Err once per flush boundary.
type Writer struct {
	w     io.Writer
	buf   []byte
	inRow bool
	rows  uint64
	err   error
}

// NewWriter wraps w, which is usually an outer bufio.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, 4096)}
}

// Rows returns the number of rows ended so far.
func (w *Writer) Rows() uint64 {
	return w.rows
}

// Err returns the first underlying write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) sep() {
	if w.inRow {
		w.buf = append(w.buf, '\t')
	}
	w.inRow = true
}

// Field appends one raw byte field.
func (w *Writer) Field(p []byte) {
	w.sep()
	w.buf = append(w.buf, p...)
}

// FieldStr appends one string field.
func (w *Writer) FieldStr(s string) {
	w.sep()
	w.buf = append(w.buf, s...)
}

// FieldByte appends a single-character field.
func (w *Writer) FieldByte(b byte) {
	w.sep()
	w.buf = append(w.buf, b)
}

// FieldUint appends an unsigned decimal field.
func (w *Writer) FieldUint(v uint64) {
	w.sep()
	w.buf = strconv.AppendUint(w.buf, v, 10)
}

// FieldInt appends a signed decimal field.
func (w *Writer) FieldInt(v int64) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, v, 10)
}

// FieldFloat appends a float in shortest round-trip form.
func (w *Writer) FieldFloat(v float64) {
	w.sep()
	w.buf = strconv.AppendFloat(w.buf, v, 'g', -1, 64)
}

// FieldRecord appends a record as its chrom, start, end and (when
// nonempty) tail fields.
func (w *Writer) FieldRecord(r *Record) {
	w.Field(r.Chrom)
	w.FieldUint(r.Start)
	w.FieldUint(r.End)
	if len(r.Tail) > 0 {
		w.Field(r.Tail)
	}
}

// End terminates the current row.
func (w *Writer) End() {
	w.buf = append(w.buf, '\n')
	w.inRow = false
	w.rows++
	if len(w.buf) >= 32768 {
		w.flushBuf()
	}
}

// WriteRecord emits a record as one row, byte-identical to its canonical
// form.
func (w *Writer) WriteRecord(r *Record) {
	w.buf = AppendRecord(w.buf, r)
	w.rows++
	if len(w.buf) >= 32768 {
		w.flushBuf()
	}
}

// WriteInterval emits a bare chrom/start/end row with an optional tail.
func (w *Writer) WriteInterval(chrom []byte, start, end uint64, tail []byte) {
	r := Record{Chrom: chrom, Start: start, End: end, Tail: tail}
	w.WriteRecord(&r)
}

func (w *Writer) flushBuf() {
	if w.err != nil || len(w.buf) == 0 {
		w.buf = w.buf[:0]
		return
	}
	_, err := w.w.Write(w.buf)
	if err != nil {
		w.err = err
	}
	w.buf = w.buf[:0]
}

// Flush pushes buffered bytes to the underlying writer and returns the
// sticky error.
func (w *Writer) Flush() error {
	w.flushBuf()
	return w.err
}
