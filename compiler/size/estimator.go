package size

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Telenav/smithy-sub007/schema"
)

// DefaultCacheSize is the number of estimates an Estimator remembers.
const DefaultCacheSize = 1024

// Option configures an Estimator.
type Option func(*Estimator) error

// WithSizes sets the layout assumptions. The default is CompressedOops.
func WithSizes(s Sizes) Option {
	return func(e *Estimator) error {
		if s.Header <= 0 || s.Reference <= 0 {
			return fmt.Errorf("size: header and reference sizes must be positive, got %d and %d", s.Header, s.Reference)
		}
		e.sizes = s
		return nil
	}
}

// WithCacheSize sets the cache capacity. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(e *Estimator) error {
		if n < 0 {
			return fmt.Errorf("size: negative cache size %d", n)
		}
		e.cacheSize = n
		return nil
	}
}

// Estimator computes estimates over one graph. Its cache is keyed by shape
// and by the constraints of the member through which the shape was reached,
// so one Estimator should be scoped to a single generation run.
type Estimator struct {
	graph     *schema.Graph
	sizes     Sizes
	cacheSize int
	cache     *lru.Cache[cacheKey, Estimate]
}

type cacheKey struct {
	id      schema.ShapeID
	context uint64
}

// New returns an Estimator over g.
func New(g *schema.Graph, opts ...Option) (*Estimator, error) {
	e := &Estimator{graph: g, sizes: CompressedOops, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.cacheSize > 0 {
		c, err := lru.New[cacheKey, Estimate](e.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("size: create cache: %w", err)
		}
		e.cache = c
	}
	return e, nil
}

// Sizes returns the layout assumptions in use.
func (e *Estimator) Sizes() Sizes {
	return e.sizes
}

// Of estimates a standalone occurrence of the shape.
func (e *Estimator) Of(id schema.ShapeID) (Estimate, error) {
	s, err := e.graph.Expect(id)
	if err != nil {
		return Estimate{}, err
	}
	est, _, err := e.newWalk().estimate(nil, s)
	return est, err
}

// OfMember estimates the member's target as reached through the member, so
// that the member's own constraints apply.
func (e *Estimator) OfMember(m *schema.Member) (Estimate, error) {
	s, err := e.graph.Target(m)
	if err != nil {
		return Estimate{}, err
	}
	est, _, err := e.newWalk().estimate(m, s)
	return est, err
}

// Shallow returns the shallow size of a standalone occurrence of the shape.
func (e *Estimator) Shallow(id schema.ShapeID) (int64, error) {
	s, err := e.graph.Expect(id)
	if err != nil {
		return 0, err
	}
	return e.shallow(nil, s)
}

// Operation returns the combined footprint of an input and output pair. A
// zero id means the side is absent.
func (e *Estimator) Operation(input, output schema.ShapeID) (Estimate, error) {
	var total Estimate
	total.Reliable = true
	for _, id := range []schema.ShapeID{input, output} {
		if id.IsZero() {
			continue
		}
		est, err := e.Of(id)
		if err != nil {
			return Estimate{}, err
		}
		total = Combine(total, est)
	}
	return total, nil
}

func (e *Estimator) newWalk() *walk {
	return &walk{e: e, visiting: make(map[schema.ShapeID]bool)}
}

// walk is the state of one top-level estimate.
type walk struct {
	e        *Estimator
	visiting map[schema.ShapeID]bool
}

// estimate returns the estimate of s reached through m (nil for a standalone
// occurrence). The tainted result reports that a cycle was cut somewhere
// below, in which case the estimate depends on the path and is not cached.
func (w *walk) estimate(m *schema.Member, s *schema.Shape) (est Estimate, tainted bool, err error) {
	key := cacheKey{id: s.ID, context: xxhash.Sum64String(fingerprint(m))}
	if w.e.cache != nil {
		if cached, ok := w.e.cache.Get(key); ok {
			return cached, false, nil
		}
	}
	if s.Kind.IsAggregate() {
		if w.visiting[s.ID] {
			shallow, err := w.e.shallow(m, s)
			if err != nil {
				return Estimate{}, false, err
			}
			unresolved := Fixed(shallow)
			unresolved.Reliable = false
			return unresolved, true, nil
		}
		w.visiting[s.ID] = true
		defer delete(w.visiting, s.ID)
	}
	est, tainted, err = w.compute(m, s)
	if err != nil {
		return Estimate{}, false, err
	}
	if w.e.cache != nil && !tainted {
		w.e.cache.Add(key, est)
	}
	return est, tainted, nil
}

func (w *walk) compute(m *schema.Member, s *schema.Shape) (Estimate, bool, error) {
	shallow, err := w.e.shallow(m, s)
	if err != nil {
		return Estimate{}, false, err
	}
	est := Fixed(shallow)
	switch s.Kind {
	case schema.Structure:
		var tainted bool
		for _, mem := range s.Members {
			target, err := w.e.graph.Target(mem)
			if err != nil {
				return Estimate{}, false, err
			}
			if w.e.inline(mem, target) {
				continue
			}
			child, t, err := w.estimate(mem, target)
			if err != nil {
				return Estimate{}, false, err
			}
			tainted = tainted || t
			est = est.plus(child)
		}
		return est, tainted, nil
	case schema.Union:
		var (
			best     Estimate
			found    bool
			reliable = true
			tainted  bool
		)
		for _, mem := range s.Members {
			target, err := w.e.graph.Target(mem)
			if err != nil {
				return Estimate{}, false, err
			}
			alt, t, err := w.estimate(mem, target)
			if err != nil {
				return Estimate{}, false, err
			}
			tainted = tainted || t
			reliable = reliable && alt.Reliable
			if !found || alt.Compare(best) > 0 {
				best, found = alt, true
			}
		}
		if found {
			est = est.plus(best)
		}
		est.Reliable = reliable
		return est, tainted, nil
	case schema.String:
		lo, hi, reliable := stringBounds(m, s)
		var c clamp
		est = est.grow(c.mul(lo, BytesPerChar), c.mul(hi, BytesPerChar))
		est.Reliable = est.Reliable && reliable && !c.hit
		return est, false, nil
	case schema.List, schema.Set:
		elem := s.ElementMember()
		return w.repeated(est, m, s, elem)
	case schema.Map:
		return w.repeated(est, m, s, s.KeyMember(), s.ValueMember())
	}
	return est, false, nil
}

// repeated adds the per-entry estimate of the given members, multiplied by
// the collection's count bounds.
func (w *walk) repeated(est Estimate, m *schema.Member, s *schema.Shape, members ...*schema.Member) (Estimate, bool, error) {
	entry := Estimate{Reliable: true}
	var tainted bool
	for _, mem := range members {
		target, err := w.e.graph.Target(mem)
		if err != nil {
			return Estimate{}, false, err
		}
		child, t, err := w.estimate(mem, target)
		if err != nil {
			return Estimate{}, false, err
		}
		tainted = tainted || t
		entry = Combine(entry, child)
	}
	lo, hi, reliable := countBounds(m, s, members[0])
	var c clamp
	est = est.grow(c.mul(entry.MinDeep, lo), c.mul(entry.MaxDeep, hi))
	est.Reliable = est.Reliable && reliable && entry.Reliable && !c.hit
	return est, tainted, nil
}

// inline reports whether mem is stored as a primitive inside its structure.
func (e *Estimator) inline(mem *schema.Member, target *schema.Shape) bool {
	return target.PrimitiveCapable() && mem.Defaulted() && !mem.Boxed && !target.Boxed
}

func (e *Estimator) shallow(m *schema.Member, s *schema.Shape) (int64, error) {
	if w, ok := e.sizes.width(s.Kind); ok {
		if m != nil && e.inline(m, s) {
			return w, nil
		}
		return w + e.sizes.Header, nil
	}
	if s.Kind != schema.Structure {
		return e.sizes.fixed(s.Kind), nil
	}
	total := e.sizes.Header
	for _, mem := range s.Members {
		target, err := e.graph.Target(mem)
		if err != nil {
			return 0, err
		}
		if e.inline(mem, target) {
			w, _ := e.sizes.width(target.Kind)
			total += w
			continue
		}
		total += e.sizes.Reference
	}
	return total, nil
}

// stringBounds returns the character count bounds of a string occurrence.
func stringBounds(m *schema.Member, s *schema.Shape) (lo, hi int64, reliable bool) {
	l := lengthOf(m, s)
	if l == nil {
		return 0, DefaultStringLength, false
	}
	if l.Min != nil {
		lo = *l.Min
	}
	if l.Max == nil {
		return lo, max(lo, DefaultStringLength), false
	}
	return lo, *l.Max, true
}

// countBounds returns the entry count bounds of a collection occurrence. A
// length without a maximum assumes DefaultCollectionSize entries.
func countBounds(m *schema.Member, s *schema.Shape, elem *schema.Member) (lo, hi int64, reliable bool) {
	l := lengthOf(m, s)
	if l == nil && elem != nil {
		l = elem.Length
	}
	if l == nil {
		return 0, DefaultCollectionSize, false
	}
	if l.Min != nil {
		lo = *l.Min
	}
	if l.Max == nil {
		return lo, max(lo, DefaultCollectionSize), false
	}
	return lo, *l.Max, true
}

func lengthOf(m *schema.Member, s *schema.Shape) *schema.Length {
	if m != nil && m.Length != nil {
		return m.Length
	}
	return s.Length
}

// fingerprint renders the member constraints the estimate depends on.
func fingerprint(m *schema.Member) string {
	if m == nil {
		return ""
	}
	l := "-"
	if m.Length != nil {
		l = bound(m.Length.Min) + ".." + bound(m.Length.Max)
	}
	return fmt.Sprintf("len=%s defaulted=%t boxed=%t", l, m.Defaulted(), m.Boxed)
}

func bound(v *int64) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprint(*v)
}
