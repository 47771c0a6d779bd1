package rangetable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/labels"
)

// Table hands out disjoint ranges of [min, max) to named owners. All
// methods are safe for concurrent use.
type Table interface {
	Get(name string) (Entry, error)
	Claim(name string, start, end int64, labels labels.Set) error
	ClaimFree(name string, size int64, labels labels.Set) (rangeset.Interval, error)
	Release(name string, start, end int64) error
	Delete(name string) error
	Update(name string, labels labels.Set) error

	Iterate() *Iterator

	Count() int
	Has(name string) bool

	IsFree(id int64) bool
	Owner(id int64) (string, bool)
	Free() []rangeset.Interval

	GetAll() map[string]Entry
	GetByLabel(selector labels.Selector) map[string]Entry
}

type ValidationFn func(start, end int64) error

type Option func(*table)

func WithLogger(log *zap.Logger) Option {
	return func(r *table) {
		if log != nil {
			r.log = log
		}
	}
}

func New(min, max int64, initEntries map[string]InitEntry, v ValidationFn, opts ...Option) (Table, error) {
	if min >= max {
		return nil, fmt.Errorf("invalid table bounds [%d, %d)", min, max)
	}
	r := &table{
		m:          new(sync.RWMutex),
		claims:     map[string]*claim{},
		claimed:    &rangeset.Set{},
		bounds:     rangeset.NewInterval(min, max),
		validateFn: v,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}

	var errm error
	for name, e := range initEntries {
		for _, iv := range e.Ranges {
			if err := r.add(name, iv.Start, iv.End, e.Labels, true); err != nil {
				errm = errors.Join(errm, err)
			}
		}
	}

	return r, errm
}

type table struct {
	m      *sync.RWMutex
	claims map[string]*claim
	// claimed is the union of all claims, used to find free space and to
	// detect overlap between owners.
	claimed    *rangeset.Set
	bounds     rangeset.Interval
	validateFn ValidationFn
	log        *zap.Logger
}

func (r *table) validate(start, end int64, init bool) error {
	if start >= end {
		return fmt.Errorf("range [%d, %d) is empty", start, end)
	}
	if start < r.bounds.Start || end > r.bounds.End {
		return fmt.Errorf("range [%d, %d) does not fit in the table range [%d, %d)", start, end, r.bounds.Start, r.bounds.End)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(start, end); err != nil {
			return err
		}
	}
	return nil
}

func (r *table) Get(name string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	c, ok := r.claims[name]
	if !ok {
		return nil, fmt.Errorf("no match found for: %s", name)
	}
	return c.snapshot(name), nil
}

func (r *table) Claim(name string, start, end int64, labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(name, start, end, labels, false)
}

func (r *table) ClaimFree(name string, size int64, labels labels.Set) (rangeset.Interval, error) {
	r.m.Lock()
	defer r.m.Unlock()

	iv, ok := r.claimed.FindFree(size, r.bounds.Start, r.bounds.End)
	if !ok {
		return rangeset.Interval{}, fmt.Errorf("no free range of size %d found", size)
	}
	if err := r.add(name, iv.Start, iv.End, labels, false); err != nil {
		return rangeset.Interval{}, err
	}
	return iv, nil
}

func (r *table) Release(name string, start, end int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.release(name, start, end)
}

func (r *table) Delete(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	c, ok := r.claims[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	r.claimed.RemoveSet(c.set)
	delete(r.claims, name)
	r.log.Debug("delete", zap.String("name", name))
	return nil
}

func (r *table) Update(name string, labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	c, ok := r.claims[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	c.labels = copyLabels(labels)
	return nil
}

func (r *table) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table) iterate() *Iterator {
	keys := make([]string, 0, len(r.claims))
	entries := make(map[string]Entry, len(r.claims))
	for name, c := range r.claims {
		keys = append(keys, name)
		entries[name] = c.snapshot(name)
	}
	sort.Strings(keys)

	return &Iterator{current: -1, keys: keys, table: entries}
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claims)
}

func (r *table) Has(name string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.claims[name]
	return ok
}

func (r *table) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.bounds.Contains(id) && !r.claimed.Contains(id)
}

func (r *table) Owner(id int64) (string, bool) {
	r.m.RLock()
	defer r.m.RUnlock()

	if !r.claimed.Contains(id) {
		return "", false
	}
	for name, c := range r.claims {
		if c.set.Contains(id) {
			return name, true
		}
	}
	return "", false
}

// Free returns the ranges of the table that nobody claimed.
func (r *table) Free() []rangeset.Interval {
	r.m.RLock()
	defer r.m.RUnlock()

	free := rangeset.New(r.bounds)
	free.RemoveSet(r.claimed)
	return free.Ranges()
}

func (r *table) GetAll() map[string]Entry {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[string]Entry, len(r.claims))
	iter := r.iterate()
	for iter.Next() {
		entries[iter.Name()] = iter.Value()
	}
	return entries
}

func (r *table) GetByLabel(selector labels.Selector) map[string]Entry {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[string]Entry{}
	iter := r.iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels()) {
			entries[iter.Name()] = iter.Value()
		}
	}
	return entries
}

func (r *table) add(name string, start, end int64, labels labels.Set, init bool) error {
	if err := r.validate(start, end, init); err != nil {
		return err
	}
	for other, c := range r.claims {
		if other == name {
			continue
		}
		if c.set.Overlaps(start, end) {
			return fmt.Errorf("range [%d, %d) overlaps with entry %s", start, end, other)
		}
	}
	c, ok := r.claims[name]
	if !ok {
		c = &claim{set: &rangeset.Set{}}
		r.claims[name] = c
	}
	if labels != nil {
		c.labels = copyLabels(labels)
	}
	c.set.Add(start, end)
	r.claimed.Add(start, end)
	r.log.Debug("claim", zap.String("name", name), zap.Int64("start", start), zap.Int64("end", end))
	return nil
}

func (r *table) release(name string, start, end int64) error {
	if err := r.validate(start, end, false); err != nil {
		return err
	}
	c, ok := r.claims[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	// only give back what name owns, the rest of [start, end) may belong to
	// other entries
	for _, iv := range c.set.Intersection(start, end) {
		r.claimed.RemoveRange(iv)
	}
	c.set.Remove(start, end)
	if c.set.IsEmpty() {
		delete(r.claims, name)
	}
	r.log.Debug("release", zap.String("name", name), zap.Int64("start", start), zap.Int64("end", end))
	return nil
}
