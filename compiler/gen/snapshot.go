package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// PlanSnapshot is the serializable form of a plan. Two runs over the same
// graph and providers produce byte-identical snapshots.
type PlanSnapshot struct {
	Shape        string                `msgpack:"shape"`
	Kinds        []string              `msgpack:"kinds"`
	Preferred    string                `msgpack:"preferred"`
	Contributors []ContributorSnapshot `msgpack:"contributors"`
}

// ContributorSnapshot records one contributor.
type ContributorSnapshot struct {
	Phase    string   `msgpack:"phase"`
	Describe string   `msgpack:"describe"`
	Details  []string `msgpack:"details,omitempty"`
}

// Snapshot encodes p with msgpack.
func Snapshot(p *Plan) ([]byte, error) {
	s := &PlanSnapshot{Shape: p.Shape.String(), Preferred: p.Preferred.String()}
	for _, k := range p.Kinds {
		s.Kinds = append(s.Kinds, k.String())
	}
	for _, c := range p.Contributors {
		s.Contributors = append(s.Contributors, ContributorSnapshot{
			Phase:    c.Phase().String(),
			Describe: c.Describe(),
			Details:  details(c),
		})
	}
	return msgpack.Marshal(s)
}

// DecodeSnapshot decodes a snapshot produced by Snapshot.
func DecodeSnapshot(b []byte) (*PlanSnapshot, error) {
	s := &PlanSnapshot{}
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode plan snapshot: %w", err)
	}
	return s, nil
}

func details(c Contributor) []string {
	var out []string
	annotations := func(prefix string, as []*Annotation) {
		for _, a := range as {
			out = append(out, prefix+a.String())
		}
	}
	terms := func(ts []*Term) {
		for _, t := range ts {
			out = append(out, fmt.Sprintf("term %s %s nullable=%t", t.Member, t.Style, t.Nullable))
		}
	}
	switch c := c.(type) {
	case *ClassDoc:
		out = append(out, c.Summary)
	case *DocSection:
		out = append(out, c.Body)
	case *Field:
		annotations("", c.Decorations)
		out = append(out, c.Docs...)
	case *Constructor:
		annotations("", c.Annotations)
		for _, d := range c.Docs {
			out = append(out, "doc "+d.Title)
		}
		for _, a := range c.Args {
			out = append(out, fmt.Sprintf("arg %s %s %s", a.Member, a.Assignment.Mode, a.Assignment.ArgKind))
			annotations("arg "+a.Member+" ", a.Annotations)
			for _, ch := range a.Checks {
				out = append(out, "check "+a.Member+" "+ch.Kind.String())
			}
		}
	case *Getter:
		annotations("", c.Decorations)
		out = append(out, c.Docs...)
	case *Equals:
		terms(c.Terms)
	case *HashCode:
		terms(c.Terms)
	case *ToString:
		terms(c.Terms)
		out = append(out, c.Head...)
		out = append(out, c.Tail...)
	case *DefaultInstance:
		for _, v := range c.Values {
			if !v.Nested.IsZero() {
				out = append(out, v.Member+"=default "+v.Nested.String())
				continue
			}
			out = append(out, fmt.Sprintf("%s=%v", v.Member, v.Value))
		}
	}
	return out
}
