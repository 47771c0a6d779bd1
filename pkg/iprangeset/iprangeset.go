// Package iprangeset keeps a set of IPv4 addresses as merged address
// ranges. Addresses map onto their 32 bit value, so a range From-To is
// stored as [From, To+1).
package iprangeset

import (
	"encoding/binary"
	"net/netip"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

type Set struct {
	set rangeset.Set
}

func (r *Set) AddRange(ipr netipx.IPRange) error {
	iv, err := toInterval(ipr)
	if err != nil {
		return err
	}
	r.set.AddRange(iv)
	return nil
}

func (r *Set) RemoveRange(ipr netipx.IPRange) error {
	iv, err := toInterval(ipr)
	if err != nil {
		return err
	}
	r.set.RemoveRange(iv)
	return nil
}

func (r *Set) AddPrefix(p netip.Prefix) error {
	return r.AddRange(netipx.RangeOfPrefix(p))
}

func (r *Set) RemovePrefix(p netip.Prefix) error {
	return r.RemoveRange(netipx.RangeOfPrefix(p))
}

// AddString adds an address, a prefix ("10.0.0.0/24") or a range
// ("10.0.0.1-10.0.0.9").
func (r *Set) AddString(s string) error {
	ipr, err := ParseRange(s)
	if err != nil {
		return err
	}
	return r.AddRange(ipr)
}

func (r *Set) RemoveString(s string) error {
	ipr, err := ParseRange(s)
	if err != nil {
		return err
	}
	return r.RemoveRange(ipr)
}

func (r *Set) Contains(addr netip.Addr) bool {
	if !addr.Is4() {
		return false
	}
	return r.set.Contains(addrToInt(addr))
}

func (r *Set) ContainsRange(ipr netipx.IPRange) bool {
	iv, err := toInterval(ipr)
	if err != nil {
		return false
	}
	return r.set.ContainsRange(iv.Start, iv.End)
}

// Size returns the number of addresses in the set.
func (r *Set) Size() uint64 { return r.set.Size() }

// Ranges returns the minimum and sorted set of address ranges that covers
// the set.
func (r *Set) Ranges() []netipx.IPRange {
	rr := r.set.Ranges()
	out := make([]netipx.IPRange, 0, len(rr))
	for _, iv := range rr {
		out = append(out, netipx.IPRangeFrom(intToAddr(iv.Start), intToAddr(iv.End-1)))
	}
	return out
}

// Prefixes returns the minimum and sorted set of prefixes that covers the
// set.
func (r *Set) Prefixes() []netip.Prefix {
	var out []netip.Prefix
	for _, ipr := range r.Ranges() {
		out = ipr.AppendPrefixes(out)
	}
	return out
}

// FindFree returns the first block of size addresses inside within that is
// not in the set.
func (r *Set) FindFree(size int64, within netipx.IPRange) (netipx.IPRange, bool) {
	bounds, err := toInterval(within)
	if err != nil {
		return netipx.IPRange{}, false
	}
	iv, ok := r.set.FindFree(size, bounds.Start, bounds.End)
	if !ok {
		return netipx.IPRange{}, false
	}
	return netipx.IPRangeFrom(intToAddr(iv.Start), intToAddr(iv.End-1)), true
}

// IPSet converts the set into a netipx.IPSet.
func (r *Set) IPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, ipr := range r.Ranges() {
		b.AddRange(ipr)
	}
	return b.IPSet()
}

func (r *Set) String() string {
	rr := r.Ranges()
	parts := make([]string, 0, len(rr))
	for _, ipr := range rr {
		parts = append(parts, ipr.String())
	}
	return strings.Join(parts, " ")
}

// ParseRange parses an IPv4 address, prefix or range.
func ParseRange(s string) (netipx.IPRange, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "/"):
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netipx.IPRange{}, &rangeset.InvalidRangeError{Input: s, Reason: "invalid prefix", Err: err}
		}
		return netipx.RangeOfPrefix(p.Masked()), nil
	case strings.Contains(s, "-"):
		ipr, err := netipx.ParseIPRange(s)
		if err != nil {
			return netipx.IPRange{}, &rangeset.InvalidRangeError{Input: s, Reason: "invalid address range", Err: err}
		}
		return ipr, nil
	default:
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netipx.IPRange{}, &rangeset.InvalidRangeError{Input: s, Reason: "invalid address", Err: err}
		}
		return netipx.IPRangeFrom(addr, addr), nil
	}
}

func toInterval(ipr netipx.IPRange) (rangeset.Interval, error) {
	if !ipr.IsValid() {
		return rangeset.Interval{}, &rangeset.InvalidRangeError{Input: ipr.String(), Reason: "invalid address range"}
	}
	if !ipr.From().Is4() {
		return rangeset.Interval{}, &rangeset.InvalidRangeError{Input: ipr.String(), Reason: "only IPv4 ranges are supported"}
	}
	return rangeset.Interval{
		Start: addrToInt(ipr.From()),
		End:   addrToInt(ipr.To()) + 1,
	}, nil
}

func addrToInt(addr netip.Addr) int64 {
	a4 := addr.As4()
	return int64(binary.BigEndian.Uint32(a4[:]))
}

func intToAddr(v int64) netip.Addr {
	var a4 [4]byte
	binary.BigEndian.PutUint32(a4[:], uint32(v))
	return netip.AddrFrom4(a4)
}
