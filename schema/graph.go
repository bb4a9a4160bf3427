package schema

import (
	"errors"
	"fmt"
	"slices"
)

// Graph is a validated, read-only set of shapes. Prelude shapes are always
// resolvable and are not listed by Shapes.
type Graph struct {
	shapes map[ShapeID]*Shape
	ids    []ShapeID
}

// NewGraph validates the shapes and returns a graph over them. All problems
// are reported together.
func NewGraph(shapes ...*Shape) (*Graph, error) {
	g := &Graph{shapes: make(map[ShapeID]*Shape, len(shapes))}
	var errs []error
	for _, s := range shapes {
		switch {
		case s == nil:
			errs = append(errs, NewError(ShapeID{}, "", "nil shape"))
			continue
		case s.ID.Namespace == "" || s.ID.Name == "":
			errs = append(errs, NewError(s.ID, "", "shape id requires a namespace and a name"))
			continue
		case s.ID.InPrelude():
			errs = append(errs, NewError(s.ID, "", "cannot redefine a prelude shape"))
			continue
		}
		if _, dup := g.shapes[s.ID]; dup {
			errs = append(errs, NewError(s.ID, "", "duplicate shape"))
			continue
		}
		g.shapes[s.ID] = s
		g.ids = append(g.ids, s.ID)
	}
	slices.SortFunc(g.ids, ShapeID.Compare)
	for _, id := range g.ids {
		errs = append(errs, g.check(g.shapes[id])...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// MustNewGraph is like NewGraph but panics on error.
func MustNewGraph(shapes ...*Shape) *Graph {
	g, err := NewGraph(shapes...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Graph) check(s *Shape) []error {
	var errs []error
	if !s.Kind.Valid() {
		return []error{NewError(s.ID, "", fmt.Sprintf("unknown kind %d", s.Kind))}
	}
	if !s.Kind.IsAggregate() {
		if len(s.Members) > 0 {
			errs = append(errs, NewError(s.ID, "", s.Kind.String()+" shapes cannot have members"))
		}
		return errs
	}
	seen := make(map[string]bool, len(s.Members))
	for _, m := range s.Members {
		if m == nil || m.Name == "" {
			errs = append(errs, NewError(s.ID, "", "member without a name"))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, NewError(s.ID, m.Name, "duplicate member"))
		}
		seen[m.Name] = true
		if _, ok := g.Shape(m.Target); !ok {
			errs = append(errs, NewError(s.ID, m.Name, "unknown target "+m.Target.String()))
		}
	}
	switch s.Kind {
	case List, Set:
		if len(s.Members) != 1 || !seen["member"] {
			errs = append(errs, NewError(s.ID, "", s.Kind.String()+" shapes need exactly one member named \"member\""))
		}
	case Map:
		if len(s.Members) != 2 || !seen["key"] || !seen["value"] {
			errs = append(errs, NewError(s.ID, "", "map shapes need exactly the members \"key\" and \"value\""))
		}
	}
	return errs
}

// Shape returns the shape with the given id, including prelude shapes.
func (g *Graph) Shape(id ShapeID) (*Shape, bool) {
	if s, ok := prelude[id]; ok {
		return s, true
	}
	s, ok := g.shapes[id]
	return s, ok
}

// Expect returns the shape with the given id or an error naming it.
func (g *Graph) Expect(id ShapeID) (*Shape, error) {
	s, ok := g.Shape(id)
	if !ok {
		return nil, NewError(id, "", "shape not found")
	}
	return s, nil
}

// Target returns the target shape of a member.
func (g *Graph) Target(m *Member) (*Shape, error) {
	return g.Expect(m.Target)
}

// Shapes returns the model-defined shapes ordered by id.
func (g *Graph) Shapes() []*Shape {
	out := make([]*Shape, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.shapes[id])
	}
	return out
}

// Structures returns the structure shapes ordered by id.
func (g *Graph) Structures() []*Shape {
	var out []*Shape
	for _, id := range g.ids {
		if s := g.shapes[id]; s.Kind == Structure {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of model-defined shapes.
func (g *Graph) Len() int {
	return len(g.ids)
}
