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

// ActiveSet holds the live B-side records of the current chromosome. The
// driver admits B in start order, so the backing deque is naturally
// sorted by start. After Advance(pos) it holds the members that reach past
// pos, plus any admitted ahead of pos. Members own their bytes; backing buffers
// are pooled across admissions.
type ActiveSet struct {
	recs    []Record
	head    int
	free    [][]byte
	compat  bool
	maxSize int

	// the most recently evicted records sharing the maximum end seen so
	// far on this chromosome; closest reads these as its upstream
	// candidates, ties included
	upstream []Record
	upEnd    uint64
	hasUp    bool
}

// NewActiveSet returns an empty set. compat selects the eviction rule
// that keeps point-vs-adjacent behavior consistent with the
// normalization mode.
func NewActiveSet(compat bool) *ActiveSet {
	return &ActiveSet{compat: compat}
}

// Len returns the live member count.
func (s *ActiveSet) Len() int {
	return len(s.recs) - s.head
}

// MaxLen returns the largest live count observed after an Advance. Reset
// does not clear it, so it covers the whole run.
func (s *ActiveSet) MaxLen() int {
	return s.maxSize
}

// Live returns the live members in admission (start) order. The slice is
// valid until the next Admit, Advance or Reset.
func (s *ActiveSet) Live() []Record {
	return s.recs[s.head:]
}

// Upstream returns the evicted records with the maximum end seen so far,
// or nil when nothing has been evicted on this chromosome.
func (s *ActiveSet) Upstream() []Record {
	if !s.hasUp {
		return nil
	}
	return s.upstream
}

func (s *ActiveSet) grab(n int) []byte {
	if k := len(s.free); k > 0 {
		buf := s.free[k-1]
		s.free = s.free[:k-1]
		return buf
	}
	return make([]byte, 0, n)
}

func (s *ActiveSet) recycle(r *Record) {
	if cap(r.Chrom) > 0 {
		s.free = append(s.free, r.Chrom[:0])
	}
}

// Admit copies the record into the set. Admission order must be start
// order; the driver guarantees it.
func (s *ActiveSet) Admit(r *Record) {
	if s.head == len(s.recs) {
		s.recs = s.recs[:0]
		s.head = 0
	}
	s.recs = append(s.recs, r.Clone(s.grab(len(r.Chrom)+len(r.Tail))))
}

func (s *ActiveSet) expired(r *Record, pos uint64) bool {
	if s.compat {
		return r.End < pos
	}
	return r.End <= pos
}

// Advance evicts every member that cannot overlap any interval at or
// after pos: end <= pos normally, end < pos in compat mode. Members are
// start-ordered, not end-ordered, so the whole live range is scanned;
// survivors keep their admission order.
func (s *ActiveSet) Advance(pos uint64) {
	for s.head < len(s.recs) && s.expired(&s.recs[s.head], pos) {
		s.evict(&s.recs[s.head])
		s.head++
	}
	live := s.recs[s.head:]
	w := 0
	for j := range live {
		if s.expired(&live[j], pos) {
			s.evict(&live[j])
			continue
		}
		if w != j {
			live[w] = live[j]
		}
		w++
	}
	s.recs = s.recs[:s.head+w]
	if s.head > 1024 && s.head > len(s.recs)/2 {
		n := copy(s.recs, s.recs[s.head:])
		s.recs = s.recs[:n]
		s.head = 0
	}
	if n := s.Len(); n > s.maxSize {
		s.maxSize = n
	}
}

func (s *ActiveSet) evict(r *Record) {
	switch {
	case !s.hasUp || r.End > s.upEnd:
		for i := range s.upstream {
			s.recycle(&s.upstream[i])
		}
		s.upstream = s.upstream[:0]
		s.upstream = append(s.upstream, *r)
		s.upEnd = r.End
		s.hasUp = true
	case r.End == s.upEnd:
		s.upstream = append(s.upstream, *r)
	default:
		s.recycle(r)
	}
}

// Reset drops everything, buffers included, at a chromosome switch.
func (s *ActiveSet) Reset() {
	for i := s.head; i < len(s.recs); i++ {
		s.recycle(&s.recs[i])
	}
	for i := range s.upstream {
		s.recycle(&s.upstream[i])
	}
	s.recs = s.recs[:0]
	s.upstream = s.upstream[:0]
	s.head = 0
	s.upEnd = 0
	s.hasUp = false
}
