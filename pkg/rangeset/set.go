package rangeset

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Set is a set of int64 values stored as ranges. The zero value is an empty
// set ready to use. A Set is not safe for concurrent use.
type Set struct {
	// rr is normalized after every mutation: sorted ascending by Start, no
	// empty ranges, no overlapping ranges and no contiguous ranges. The
	// binary searches below rely on this property.
	rr []Interval
}

// New returns a set covering the union of rr.
func New(rr ...Interval) *Set {
	s := &Set{}
	for _, r := range rr {
		s.AddRange(r)
	}
	return s
}

// Add adds all integers in [start, end) to the set. An empty range is a
// no-op.
func (r *Set) Add(start, end int64) {
	if start >= end {
		return
	}
	// rr[i:j] is the run of ranges that overlap or touch [start, end).
	//
	//      rr[i]        rr[j-1]
	//   s-------e    s---------e
	//        start------------------end
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End >= start })
	j := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].Start > end })

	merged := Interval{Start: start, End: end}
	if i < j {
		merged.Start = min(merged.Start, r.rr[i].Start)
		merged.End = max(merged.End, r.rr[j-1].End)
	}
	r.rr = slices.Replace(r.rr, i, j, merged)
}

// AddRange adds all integers in iv to the set.
func (r *Set) AddRange(iv Interval) {
	r.Add(iv.Start, iv.End)
}

// AddString parses s with ParseInterval and adds the result.
func (r *Set) AddString(s string) error {
	iv, err := ParseInterval(s)
	if err != nil {
		return err
	}
	r.AddRange(iv)
	return nil
}

// AddSet adds all integers in b to the set.
func (r *Set) AddSet(b *Set) {
	if b == nil {
		return
	}
	for _, iv := range b.rr {
		r.AddRange(iv)
	}
}

// Remove removes all integers in [start, end) from the set. An empty range
// is a no-op.
func (r *Set) Remove(start, end int64) {
	if start >= end {
		return
	}
	// rr[i:j] is the run of ranges overlapping out = [start, end). Only the
	// first one can keep a part before out and only the last one a part
	// after it, all others are covered by out and disappear.
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End > start })
	j := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].Start >= end })
	if i >= j {
		return
	}

	remainders := make([]Interval, 0, 2)
	if first := r.rr[i]; first.Start < start {
		// "out" overlaps end of first, or sits in the middle of it.
		//
		//      first
		//   s--------e
		//       s--------e
		//          out
		remainders = append(remainders, Interval{Start: first.Start, End: start})
	}
	if last := r.rr[j-1]; last.End > end {
		// "out" overlaps start of last, or sits in the middle of it.
		//
		//          last
		//       s--------e
		//   s--------e
		//      out
		remainders = append(remainders, Interval{Start: end, End: last.End})
	}
	r.rr = slices.Replace(r.rr, i, j, remainders...)
}

// RemoveRange removes all integers in iv from the set.
func (r *Set) RemoveRange(iv Interval) {
	r.Remove(iv.Start, iv.End)
}

// RemoveString parses s with ParseInterval and removes the result.
func (r *Set) RemoveString(s string) error {
	iv, err := ParseInterval(s)
	if err != nil {
		return err
	}
	r.RemoveRange(iv)
	return nil
}

// RemoveSet removes all integers in b from the set.
func (r *Set) RemoveSet(b *Set) {
	if b == nil {
		return
	}
	for _, iv := range b.rr {
		if len(r.rr) == 0 {
			return
		}
		r.RemoveRange(iv)
	}
}

// Ranges returns the minimum and sorted set of ranges that covers the set.
// The returned slice is a copy.
func (r *Set) Ranges() []Interval {
	return append([]Interval{}, r.rr...)
}

// Len returns the number of stored ranges.
func (r *Set) Len() int { return len(r.rr) }

func (r *Set) IsEmpty() bool { return len(r.rr) == 0 }

// Size returns the number of integers covered by the set.
func (r *Set) Size() uint64 {
	var n uint64
	for _, iv := range r.rr {
		n += iv.Len()
	}
	return n
}

// Contains returns whether v belongs to the set.
func (r *Set) Contains(v int64) bool {
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End > v })
	return i < len(r.rr) && r.rr[i].Contains(v)
}

// ContainsRange returns whether all integers in [start, end) belong to the
// set. An empty range is always contained.
func (r *Set) ContainsRange(start, end int64) bool {
	if start >= end {
		return true
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End > start })
	return i < len(r.rr) && Interval{Start: start, End: end}.coveredBy(r.rr[i])
}

// Overlaps returns whether some integers in [start, end) belong to the set.
func (r *Set) Overlaps(start, end int64) bool {
	if start >= end {
		return false
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End > start })
	return i < len(r.rr) && r.rr[i].overlaps(Interval{Start: start, End: end})
}

// Intersection returns the parts of the set that lie within [start, end).
func (r *Set) Intersection(start, end int64) []Interval {
	out := []Interval{}
	if start >= end {
		return out
	}
	i := sort.Search(len(r.rr), func(k int) bool { return r.rr[k].End > start })
	for ; i < len(r.rr) && r.rr[i].Start < end; i++ {
		out = append(out, Interval{
			Start: max(start, r.rr[i].Start),
			End:   min(end, r.rr[i].End),
		})
	}
	return out
}

// FindFree returns the first run of size integers inside [lo, hi) that does
// not belong to the set.
func (r *Set) FindFree(size, lo, hi int64) (Interval, bool) {
	if size <= 0 || lo >= hi {
		return Interval{}, false
	}
	want := uint64(size)
	cursor := lo
	for _, iv := range r.rr {
		if iv.End <= cursor {
			continue
		}
		if iv.Start >= hi {
			break
		}
		if (Interval{Start: cursor, End: iv.Start}).Len() >= want {
			return Interval{Start: cursor, End: cursor + size}, true
		}
		cursor = iv.End
		if cursor >= hi {
			return Interval{}, false
		}
	}
	if (Interval{Start: cursor, End: hi}).Len() >= want {
		return Interval{Start: cursor, End: cursor + size}, true
	}
	return Interval{}, false
}

// Clone returns a copy of the set.
func (r *Set) Clone() *Set {
	return &Set{rr: r.Ranges()}
}

// Clear removes every range from the set.
func (r *Set) Clear() {
	r.rr = nil
}

// Equal returns whether r and b cover the same integers.
func (r *Set) Equal(b *Set) bool {
	if b == nil {
		return len(r.rr) == 0
	}
	return slices.Equal(r.rr, b.rr)
}

// Verify checks the set for internal consistency and returns every
// violation found.
func (r *Set) Verify() error {
	var errs error
	for i, iv := range r.rr {
		if iv.IsEmpty() {
			errs = errors.Join(errs, fmt.Errorf("range %d [%d, %d) is empty", i, iv.Start, iv.End))
		}
		if i == 0 {
			continue
		}
		prev := r.rr[i-1]
		switch {
		case prev.Start >= iv.Start:
			errs = errors.Join(errs, fmt.Errorf("range %d [%d, %d) not sorted after [%d, %d)", i, iv.Start, iv.End, prev.Start, prev.End))
		case prev.overlaps(iv):
			errs = errors.Join(errs, fmt.Errorf("range %d [%d, %d) overlaps [%d, %d)", i, iv.Start, iv.End, prev.Start, prev.End))
		case prev.touches(iv):
			errs = errors.Join(errs, fmt.Errorf("range %d [%d, %d) is adjacent to [%d, %d)", i, iv.Start, iv.End, prev.Start, prev.End))
		}
	}
	return errs
}
