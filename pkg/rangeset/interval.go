package rangeset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start int64
	End   int64
}

func NewInterval(start, end int64) Interval {
	return Interval{Start: start, End: end}
}

// ParseInterval parses "[a, b)", "[a,b)", "a b" or "a,b" into an Interval.
// An empty or inverted pair is returned as is, callers treat it as a no-op.
func ParseInterval(s string) (Interval, error) {
	body := strings.TrimSpace(s)
	if strings.HasPrefix(body, "[") {
		if !strings.HasSuffix(body, ")") {
			return Interval{}, &InvalidRangeError{Input: s, Reason: "missing closing ')'"}
		}
		body = body[1 : len(body)-1]
	}
	fields := strings.FieldsFunc(body, func(c rune) bool {
		return c == ',' || unicode.IsSpace(c)
	})
	if len(fields) != 2 {
		return Interval{}, &InvalidRangeError{
			Input:  s,
			Reason: fmt.Sprintf("expected 2 endpoints, got %d", len(fields)),
		}
	}
	start, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Interval{}, &InvalidRangeError{Input: s, Reason: fmt.Sprintf("invalid start %q", fields[0]), Err: err}
	}
	end, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Interval{}, &InvalidRangeError{Input: s, Reason: fmt.Sprintf("invalid end %q", fields[1]), Err: err}
	}
	return Interval{Start: start, End: end}, nil
}

// IsEmpty reports whether r covers no integers.
func (r Interval) IsEmpty() bool { return r.Start >= r.End }

// Len returns the number of integers in r. The subtraction is done on
// uint64 so that [math.MinInt64, math.MaxInt64) does not overflow.
func (r Interval) Len() uint64 {
	if r.IsEmpty() {
		return 0
	}
	return uint64(r.End) - uint64(r.Start)
}

// Contains returns whether v lies in r.
func (r Interval) Contains(v int64) bool {
	return r.Start <= v && v < r.End
}

// overlaps returns whether r and other share at least one integer.
func (r Interval) overlaps(other Interval) bool {
	return r.Start < other.End && other.Start < r.End
}

// touches returns whether r and other overlap or are adjacent, i.e. whether
// their union is a single interval.
//
//	   r      other
//	s------es------e
func (r Interval) touches(other Interval) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// coveredBy returns whether r is entirely contained within other.
func (r Interval) coveredBy(other Interval) bool {
	return other.Start <= r.Start && r.End <= other.End
}
