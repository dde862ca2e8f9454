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

import "testing"

func admit(s *ActiveSet, start, end uint64) {
	s.Admit(&Record{Chrom: []byte("chr1"), Start: start, End: end})
}

func TestActiveSetAdvance(t *testing.T) {
	s := NewActiveSet(false)
	admit(s, 10, 50)
	admit(s, 20, 30)
	admit(s, 25, 100)

	s.Advance(30)
	if s.Len() != 2 {
		t.Fatalf("live count %d, want 2", s.Len())
	}
	live := s.Live()
	if live[0].Start != 10 || live[1].Start != 25 {
		t.Errorf("survivors out of order: %d %d", live[0].Start, live[1].Start)
	}

	// [20,30) expired behind the still-live [10,50)
	up := s.Upstream()
	if len(up) != 1 || up[0].End != 30 {
		t.Errorf("upstream trail wrong: %+v", up)
	}

	s.Advance(100)
	if s.Len() != 0 {
		t.Errorf("live count %d after full eviction", s.Len())
	}
	up = s.Upstream()
	if len(up) != 1 || up[0].End != 100 {
		t.Errorf("upstream trail not updated: %+v", up)
	}
}

func TestActiveSetAdvanceCompat(t *testing.T) {
	s := NewActiveSet(true)
	admit(s, 10, 20)
	s.Advance(20)
	if s.Len() != 1 {
		t.Errorf("compat mode evicted at end == pos")
	}
	s.Advance(21)
	if s.Len() != 0 {
		t.Errorf("compat mode kept end < pos")
	}
}

func TestActiveSetUpstreamTies(t *testing.T) {
	s := NewActiveSet(false)
	admit(s, 10, 40)
	admit(s, 20, 40)
	admit(s, 30, 35)
	s.Advance(50)
	up := s.Upstream()
	if len(up) != 2 {
		t.Fatalf("tie count %d, want 2", len(up))
	}
	if up[0].Start != 10 || up[1].Start != 20 {
		t.Errorf("ties out of order: %d %d", up[0].Start, up[1].Start)
	}
}

func TestActiveSetReset(t *testing.T) {
	s := NewActiveSet(false)
	admit(s, 10, 50)
	s.Advance(60)
	s.Reset()
	if s.Len() != 0 || s.Upstream() != nil {
		t.Error("reset left state behind")
	}
}

func TestActiveSetOwnsBytes(t *testing.T) {
	s := NewActiveSet(false)
	line := []byte("chr1\t10\t20\ttail")
	rec, err := ParseRecord(line, 1, false)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	s.Admit(&rec)
	copy(line, []byte("chrZ\t99\t99\tZZZZ"))
	if string(s.Live()[0].Chrom) != "chr1" || string(s.Live()[0].Tail) != "tail" {
		t.Error("active set borrowed the line buffer")
	}
}

// the size bound: after Advance(pos), Len equals the number of members
// containing pos or later starts already admitted
func TestActiveSetBoundedByDepth(t *testing.T) {
	s := NewActiveSet(false)
	for i := uint64(0); i < 100; i++ {
		admit(s, i, i+10)
		s.Advance(i)
		if s.Len() > 10 {
			t.Fatalf("live count %d exceeds depth 10 at %d", s.Len(), i)
		}
	}
}
