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
	"bufio"
	"io"
)

// Reader yields BED records from a line-oriented stream. The record
// returned by Read borrows the reader's line buffer and is valid only
// until the next call; clone it to keep it. Comment, track, browser and
// blank lines are skipped, trailing \r is stripped, and with compat set
// zero-length intervals are widened to one base at parse time.
type Reader struct {
	br     *bufio.Reader
	long   []byte // spill for lines longer than the bufio buffer
	line   int
	compat bool
	rec    Record
}

// NewReader wraps r. Decompression is the caller's concern; hand it an
// already-transparent stream.
func NewReader(r io.Reader, compat bool) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 65536), compat: compat}
}

// Line returns the number of the last line read, counting skipped lines.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadSlice('\n')
	if err == nil || err == io.EOF {
		return line, err
	}
	if err != bufio.ErrBufferFull {
		return nil, err
	}
	r.long = append(r.long[:0], line...)
	for err == bufio.ErrBufferFull {
		line, err = r.br.ReadSlice('\n')
		r.long = append(r.long, line...)
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return r.long, err
}

// Read returns the next record, or io.EOF at end of input.
func (r *Reader) Read() (*Record, error) {
	for {
		line, err := r.readLine()
		if err != nil && err != io.EOF {
			return nil, err
		}
		atEOF := err == io.EOF
		if atEOF && len(line) == 0 {
			return nil, io.EOF
		}
		r.line++

		if n := len(line); n > 0 && line[n-1] == '\n' {
			line = line[:n-1]
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if skipLine(line) {
			if atEOF {
				return nil, io.EOF
			}
			continue
		}

		rec, err := ParseRecord(line, r.line, r.compat)
		if err != nil {
			return nil, err
		}
		r.rec = rec
		return &r.rec, nil
	}
}
