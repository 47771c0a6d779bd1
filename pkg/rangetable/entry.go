package rangetable

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/render"
	"k8s.io/apimachinery/pkg/labels"
)

type Entry interface {
	Name() string
	Ranges() []rangeset.Interval
	Labels() labels.Set
	Size() uint64
	String() string
}

// InitEntry is claimed when the table is created, bypassing the table's
// validation function. It is typically used for reserved ranges.
type InitEntry struct {
	Ranges []rangeset.Interval
	Labels labels.Set
}

type entry struct {
	name   string
	ranges []rangeset.Interval
	labels labels.Set
}

type Entries []Entry

func (r entry) Name() string                { return r.name }
func (r entry) Ranges() []rangeset.Interval { return r.ranges }
func (r entry) Labels() labels.Set          { return r.labels }
func (r entry) String() string {
	return fmt.Sprintf("name: %s, ranges: %s, labels: %s", r.name, render.Ranges(r.ranges), r.labels.String())
}
func (r entry) Size() uint64 {
	var n uint64
	for _, iv := range r.ranges {
		n += iv.Len()
	}
	return n
}

// claim is the mutable state the table keeps per name.
type claim struct {
	set    *rangeset.Set
	labels labels.Set
}

func (r *claim) snapshot(name string) Entry {
	return entry{
		name:   name,
		ranges: r.set.Ranges(),
		labels: copyLabels(r.labels),
	}
}

func copyLabels(l labels.Set) labels.Set {
	if l == nil {
		return nil
	}
	out := make(labels.Set, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
