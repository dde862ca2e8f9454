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

// WindowMode selects what window emits.
type WindowMode int

const (
	// WindowWriteBoth writes A's and B's fields per hit.
	WindowWriteBoth WindowMode = iota
	// WindowUniqueA writes A once if anything is within the window.
	WindowUniqueA
	// WindowNoOverlapA writes A only when the window is empty.
	WindowNoOverlapA
	// WindowCountA writes A with the hit count.
	WindowCountA
)

// Windower reports B records near each A record: A is virtually extended
// Left bases leftward (clamped at zero) and Right bases rightward, but
// output always carries A's original coordinates.
type Windower struct {
	W     *Writer
	Left  uint64
	Right uint64
	Mode  WindowMode
}

// Span implements Spanner; the driver admits and evicts on the widened
// interval.
func (op *Windower) Span(a *Record) (uint64, uint64) {
	qs := a.Start
	if qs > op.Left {
		qs -= op.Left
	} else {
		qs = 0
	}
	return qs, a.End + op.Right
}

// ChromStart implements Operator.
func (op *Windower) ChromStart(chrom []byte) error { return nil }

// ChromEnd implements Operator.
func (op *Windower) ChromEnd() error { return nil }

// Step implements Operator.
func (op *Windower) Step(a *Record, f *Flow) error {
	qs, qe := op.Span(a)
	qual := overlapQual{Fraction: -1}
	var count uint64
	live := f.Set.Live()
	for i := range live {
		b := &live[i]
		if _, _, ok := qual.qualify(qs, qe, qe-qs, b); !ok {
			continue
		}
		count++
		switch op.Mode {
		case WindowWriteBoth:
			op.W.FieldRecord(a)
			op.W.FieldRecord(b)
			op.W.End()
		case WindowUniqueA:
			op.W.WriteRecord(a)
			return op.W.Err()
		}
	}
	switch op.Mode {
	case WindowNoOverlapA:
		if count == 0 {
			op.W.WriteRecord(a)
		}
	case WindowCountA:
		op.W.FieldRecord(a)
		op.W.FieldUint(count)
		op.W.End()
	}
	return op.W.Err()
}

// Finish implements Operator.
func (op *Windower) Finish() error { return op.W.Err() }
