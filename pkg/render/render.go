// Package render formats range sets as "[start, end)" boundary pairs joined
// by single spaces. Only the two boundaries of a range are ever written, the
// integers inside a range are never enumerated.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

// AppendInterval appends "[start, end)" to dst.
func AppendInterval(dst []byte, iv rangeset.Interval) []byte {
	dst = append(dst, '[')
	dst = strconv.AppendInt(dst, iv.Start, 10)
	dst = append(dst, ", "...)
	dst = strconv.AppendInt(dst, iv.End, 10)
	return append(dst, ')')
}

func Interval(iv rangeset.Interval) string {
	return string(AppendInterval(nil, iv))
}

// Ranges returns the textual form of rr, e.g. "[1, 5) [10, 20)". An empty
// slice renders as the empty string.
func Ranges(rr []rangeset.Interval) string {
	var sb strings.Builder
	for i, iv := range rr {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(AppendInterval(nil, iv))
	}
	return sb.String()
}

// Set renders the current ranges of s.
func Set(s *rangeset.Set) string {
	return Ranges(s.Ranges())
}

// Write writes the textual form of rr followed by a newline to w.
func Write(w io.Writer, rr []rangeset.Interval) error {
	buf := make([]byte, 0, 24*len(rr)+1)
	for i, iv := range rr {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = AppendInterval(buf, iv)
	}
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
