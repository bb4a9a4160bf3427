package load

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Telenav/smithy-sub007/schema"
)

// Build converts documents to shapes and returns the validated graph.
// Bare target names resolve to a shape of the same namespace first and to
// the prelude second. Mixin members are copied into the shapes using them.
func Build(docs ...*Document) (*schema.Graph, error) {
	b := &builder{
		decls:  make(map[schema.ShapeID]*Shape),
		shapes: make(map[schema.ShapeID]*schema.Shape),
	}
	var errs []error
	for _, d := range docs {
		if d.Namespace == "" {
			errs = append(errs, fmt.Errorf("%s: document has no namespace", d.where()))
			continue
		}
		for i, s := range d.Shapes {
			s.Pos = fmt.Sprintf("%s:shapes[%d]", d.where(), i)
			id := schema.ID(d.Namespace, s.Name)
			if _, dup := b.decls[id]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate shape %s", s.Pos, id))
				continue
			}
			b.decls[id] = s
			b.order = append(b.order, id)
		}
	}
	for _, id := range b.order {
		s, err := b.shape(id, b.decls[id])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.shapes[id] = s
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	done := make(map[schema.ShapeID]bool)
	for _, id := range b.order {
		if err := b.flatten(id, done, nil); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range b.order {
		errs = append(errs, b.normalizeDefaults(b.shapes[id])...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	out := make([]*schema.Shape, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.shapes[id])
	}
	return schema.NewGraph(out...)
}

func (d *Document) where() string {
	if d.File != "" {
		return d.File
	}
	return "<input>"
}

type builder struct {
	decls  map[schema.ShapeID]*Shape
	shapes map[schema.ShapeID]*schema.Shape
	order  []schema.ShapeID
}

// resolve turns a target reference into a shape id.
func (b *builder) resolve(namespace, ref string) (schema.ShapeID, error) {
	if ref == "" {
		return schema.ShapeID{}, errors.New("empty target")
	}
	if id, err := schema.ParseShapeID(ref); err == nil {
		return id, nil
	}
	local := schema.ID(namespace, ref)
	if _, ok := b.decls[local]; ok {
		return local, nil
	}
	prelude := schema.ID(schema.PreludeNamespace, ref)
	if _, ok := schema.Prelude(prelude); ok {
		return prelude, nil
	}
	return local, nil
}

func (b *builder) shape(id schema.ShapeID, d *Shape) (*schema.Shape, error) {
	kind, ok := schema.ParseKind(d.Type)
	if !ok {
		return nil, fmt.Errorf("%s: %s has unknown type %q", d.Pos, id, d.Type)
	}
	s := &schema.Shape{
		ID:         id,
		Kind:       kind,
		Pattern:    d.Pattern,
		Sparse:     d.Sparse,
		Boxed:      d.Boxed,
		Mixin:      d.Mixin,
		Builder:    d.Builder,
		Doc:        d.Doc,
		EnumValues: d.Values,
	}
	if d.Length != nil {
		s.Length = &schema.Length{Min: d.Length.Min, Max: d.Length.Max}
	}
	r, err := d.Range.rat()
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", d.Pos, id, err)
	}
	s.Range = r
	for _, ref := range d.Mixins {
		mid, err := b.resolve(id.Namespace, ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %s mixin: %w", d.Pos, id, err)
		}
		s.Mixins = append(s.Mixins, mid)
	}
	switch kind {
	case schema.List, schema.Set:
		d.Members = append([]*Member{{Name: "member", Target: d.Member}}, d.Members...)
	case schema.Map:
		d.Members = append([]*Member{{Name: "key", Target: d.Key}, {Name: "value", Target: d.Value}}, d.Members...)
	}
	for _, dm := range d.Members {
		target, err := b.resolve(id.Namespace, dm.Target)
		if err != nil {
			return nil, fmt.Errorf("%s: %s member %s: %w", d.Pos, id, dm.Name, err)
		}
		m := &schema.Member{
			Name:     dm.Name,
			Target:   target,
			Required: dm.Required,
			Default:  dm.Default,
			Identity: dm.Identity,
			Boxed:    dm.Boxed,
			Sparse:   dm.Sparse,
			Pattern:  dm.Pattern,
			Weight:   dm.Weight,
			Doc:      dm.Doc,
		}
		if dm.Length != nil {
			m.Length = &schema.Length{Min: dm.Length.Min, Max: dm.Length.Max}
		}
		if m.Range, err = dm.Range.rat(); err != nil {
			return nil, fmt.Errorf("%s: %s member %s: %w", d.Pos, id, dm.Name, err)
		}
		s.Members = append(s.Members, m)
	}
	return s, nil
}

func (r *Range) rat() (*schema.Range, error) {
	if r == nil {
		return nil, nil
	}
	lo, err := r.Min.Rat()
	if err != nil {
		return nil, err
	}
	hi, err := r.Max.Rat()
	if err != nil {
		return nil, err
	}
	return &schema.Range{Min: lo, Max: hi}, nil
}

// flatten copies the members of a shape's mixins ahead of its own members.
// Members redefined locally keep the local definition.
func (b *builder) flatten(id schema.ShapeID, done map[schema.ShapeID]bool, path []schema.ShapeID) error {
	if done[id] {
		return nil
	}
	for _, p := range path {
		if p == id {
			return fmt.Errorf("%s: mixin cycle through %s", b.decls[path[0]].Pos, id)
		}
	}
	s := b.shapes[id]
	var inherited []*schema.Member
	for _, mid := range s.Mixins {
		mixin, ok := b.shapes[mid]
		if !ok {
			return fmt.Errorf("%s: %s uses unknown mixin %s", b.decls[id].Pos, id, mid)
		}
		if !mixin.Mixin {
			return fmt.Errorf("%s: %s uses %s, which is not a mixin", b.decls[id].Pos, id, mid)
		}
		if mixin.Kind != s.Kind {
			return fmt.Errorf("%s: %s (%s) cannot use mixin %s (%s)", b.decls[id].Pos, id, s.Kind, mid, mixin.Kind)
		}
		if err := b.flatten(mid, done, append(path, id)); err != nil {
			return err
		}
		for _, m := range mixin.Members {
			if _, local := s.Member(m.Name); local || containsMember(inherited, m.Name) {
				continue
			}
			c := *m
			if c.MixedIn == nil {
				c.MixedIn = &mid
			}
			inherited = append(inherited, &c)
		}
	}
	s.Members = append(inherited, s.Members...)
	done[id] = true
	return nil
}

func containsMember(ms []*schema.Member, name string) bool {
	for _, m := range ms {
		if m.Name == name {
			return true
		}
	}
	return false
}

// number is satisfied by the numeric type JSON decoding yields.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// normalizeDefaults converts decoded default values to int64 for integral
// targets and to float64 for floating point targets.
func (b *builder) normalizeDefaults(s *schema.Shape) []error {
	var errs []error
	for _, m := range s.Members {
		if m.Default == nil {
			continue
		}
		kind, ok := b.kindOf(m.Target)
		if !ok {
			continue
		}
		v, err := normalize(kind, m.Default)
		if err != nil {
			errs = append(errs, schema.NewError(s.ID, m.Name, err.Error()))
			continue
		}
		m.Default = v
	}
	return errs
}

func (b *builder) kindOf(id schema.ShapeID) (schema.Kind, bool) {
	if p, ok := schema.Prelude(id); ok {
		return p.Kind, true
	}
	if s, ok := b.shapes[id]; ok {
		return s.Kind, true
	}
	return schema.Invalid, false
}

func normalize(kind schema.Kind, v any) (any, error) {
	switch kind {
	case schema.Byte, schema.Short, schema.Integer, schema.Long, schema.IntEnum, schema.BigInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case uint64:
			if n > math.MaxInt64 {
				return nil, fmt.Errorf("default %d overflows", n)
			}
			return int64(n), nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("default %v is not integral", n)
			}
			return int64(n), nil
		case number:
			i, err := n.Int64()
			if err != nil {
				return nil, fmt.Errorf("default %v is not integral", n)
			}
			return i, nil
		}
	case schema.Float, schema.Double, schema.BigDecimal:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		case number:
			return n.Float64()
		}
	case schema.String, schema.Enum, schema.Timestamp:
		if n, ok := v.(number); ok {
			if s, ok := n.(fmt.Stringer); ok {
				return s.String(), nil
			}
		}
		if i, ok := v.(int); ok {
			return strconv.Itoa(i), nil
		}
	}
	return v, nil
}
