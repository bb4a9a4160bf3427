package gen

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Instance is a sample value of a planned structure, keyed by member name.
// Absent members are missing or nil.
type Instance map[string]any

// Equal evaluates the plan's equality decision on a and b.
func (p *Plan) Equal(a, b Instance) bool {
	eq, ok := p.Equals()
	if !ok {
		return reflect.DeepEqual(a, b)
	}
	for _, t := range termsFor(eq.Members, eq.Terms) {
		if !t.equal(a[t.Member], b[t.Member]) {
			return false
		}
	}
	return true
}

// Hash evaluates the plan's hashing decision on v.
func (p *Plan) Hash(v Instance) uint64 {
	h := xxhash.New()
	hc, ok := p.HashCode()
	if !ok {
		return h.Sum64()
	}
	for _, t := range termsFor(hc.Members, hc.Terms) {
		_, _ = h.WriteString(t.Member)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(t.canonical(v[t.Member]))
		_, _ = h.WriteString(";")
	}
	return h.Sum64()
}

// Format evaluates the plan's string form decision on v.
func (p *Plan) Format(v Instance) string {
	ts, ok := p.ToString()
	if !ok {
		return fmt.Sprint(map[string]any(v))
	}
	var b strings.Builder
	for _, h := range ts.Head {
		b.WriteString(h)
	}
	b.WriteString(p.Shape.Name)
	b.WriteByte('(')
	for i, name := range ts.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, v[name])
	}
	b.WriteByte(')')
	for _, t := range ts.Tail {
		b.WriteString(t)
	}
	return b.String()
}

// termsFor returns one term per member. Members without a collected term
// compare by value.
func termsFor(members []string, terms []*Term) []*Term {
	out := make([]*Term, 0, len(members))
	for _, name := range members {
		t := &Term{Member: name, Style: TermValue, Nullable: true}
		for _, c := range terms {
			if c.Member == name {
				t = c
				break
			}
		}
		out = append(out, t)
	}
	return out
}

func (t *Term) equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if t.Style == TermFloat {
		fa, okA := float64Of(a)
		fb, okB := float64Of(b)
		if okA && okB {
			return math.Float64bits(fa) == math.Float64bits(fb)
		}
	}
	return reflect.DeepEqual(a, b)
}

// canonical returns a stable text form of v. Maps print with sorted keys.
func (t *Term) canonical(v any) string {
	if v == nil {
		return "<nil>"
	}
	if t.Style == TermFloat {
		if f, ok := float64Of(v); ok {
			return fmt.Sprintf("%x", math.Float64bits(f))
		}
	}
	return fmt.Sprintf("%#v", v)
}
