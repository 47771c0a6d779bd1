package iprangeset

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/tj/assert"
	"go4.org/netipx"
)

type ipOp struct {
	remove bool
	s      string
}

func TestOps(t *testing.T) {
	cases := map[string]struct {
		ops  []ipOp
		want string
	}{
		"AdjacentMerge": {
			ops: []ipOp{
				{s: "10.0.0.0/25"},
				{s: "10.0.0.128/25"},
			},
			want: "10.0.0.0-10.0.0.255",
		},
		"Split": {
			ops: []ipOp{
				{s: "10.0.0.0/24"},
				{remove: true, s: "10.0.0.10-10.0.0.19"},
			},
			want: "10.0.0.0-10.0.0.9 10.0.0.20-10.0.0.255",
		},
		"SingleAddresses": {
			ops: []ipOp{
				{s: "192.168.1.1"},
				{s: "192.168.1.2"},
				{s: "192.168.1.4"},
			},
			want: "192.168.1.1-192.168.1.2 192.168.1.4-192.168.1.4",
		},
		"WholeSpace": {
			ops: []ipOp{
				{s: "0.0.0.0/0"},
				{remove: true, s: "0.0.0.0"},
				{remove: true, s: "255.255.255.255"},
			},
			want: "0.0.0.1-255.255.255.254",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var s Set
			for _, op := range tc.ops {
				var err error
				if op.remove {
					err = s.RemoveString(op.s)
				} else {
					err = s.AddString(op.s)
				}
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, s.String())
		})
	}
}

func TestMatchesNetipxIPSet(t *testing.T) {
	var s Set
	var b netipx.IPSetBuilder

	adds := []string{"10.0.0.0/16", "10.2.0.0/24", "10.1.255.0/24", "172.16.0.1-172.16.0.77"}
	removes := []string{"10.0.128.0/20", "10.2.0.0/25", "172.16.0.5"}
	for _, a := range adds {
		assert.NoError(t, s.AddString(a))
		ipr, err := ParseRange(a)
		assert.NoError(t, err)
		b.AddRange(ipr)
	}
	for _, rm := range removes {
		assert.NoError(t, s.RemoveString(rm))
		ipr, err := ParseRange(rm)
		assert.NoError(t, err)
		b.RemoveRange(ipr)
	}
	want, err := b.IPSet()
	assert.NoError(t, err)

	got, err := s.IPSet()
	assert.NoError(t, err)

	if diff := cmp.Diff(want.Ranges(), s.Ranges(), cmp.Comparer(func(a, b netipx.IPRange) bool { return a == b })); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	assert.True(t, want.Equal(got))
	if diff := cmp.Diff(want.Prefixes(), s.Prefixes(), cmp.Comparer(func(a, b netip.Prefix) bool { return a == b })); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestInvalid(t *testing.T) {
	cases := map[string]struct {
		input string
	}{
		"Garbage":     {input: "not-an-ip"},
		"BadPrefix":   {input: "10.0.0.0/40"},
		"IPv6":        {input: "2001:db8::/64"},
		"IPv6Address": {input: "::1"},
		"Inverted":    {input: "10.0.0.9-10.0.0.1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var s Set
			err := s.AddString(tc.input)
			assert.Error(t, err)
			assert.True(t, rangeset.IsInvalidRange(err))
			assert.Equal(t, uint64(0), s.Size())
		})
	}
}

func TestQueries(t *testing.T) {
	var s Set
	assert.NoError(t, s.AddPrefix(netip.MustParsePrefix("10.0.0.0/24")))
	assert.NoError(t, s.RemovePrefix(netip.MustParsePrefix("10.0.0.0/30")))

	assert.True(t, s.Contains(netip.MustParseAddr("10.0.0.4")))
	assert.False(t, s.Contains(netip.MustParseAddr("10.0.0.3")))
	assert.False(t, s.Contains(netip.MustParseAddr("::1")))
	assert.True(t, s.ContainsRange(netipx.MustParseIPRange("10.0.0.10-10.0.0.20")))
	assert.False(t, s.ContainsRange(netipx.MustParseIPRange("10.0.0.0-10.0.0.20")))
	assert.Equal(t, uint64(252), s.Size())

	free, ok := s.FindFree(4, netipx.MustParseIPRange("10.0.0.0-10.0.1.255"))
	assert.True(t, ok)
	assert.Equal(t, netipx.MustParseIPRange("10.0.0.0-10.0.0.3"), free)

	free, ok = s.FindFree(8, netipx.MustParseIPRange("10.0.0.0-10.0.1.255"))
	assert.True(t, ok)
	assert.Equal(t, netipx.MustParseIPRange("10.0.1.0-10.0.1.7"), free)

	_, ok = s.FindFree(8, netipx.MustParseIPRange("10.0.0.0-10.0.0.255"))
	assert.False(t, ok)
}
