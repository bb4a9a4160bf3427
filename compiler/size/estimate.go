// Package size computes static memory footprints for shapes.
//
// An [Estimate] reports the shallow size of one occurrence of a shape and the
// minimum and maximum size of everything it transitively references. Bounds
// derived from assumed defaults rather than declared constraints are flagged
// unreliable.
package size

import (
	"cmp"
	"fmt"
	"math"
)

// Estimate is the footprint of one shape occurrence, in bytes.
type Estimate struct {
	Shallow  int64
	MinDeep  int64
	MaxDeep  int64
	Reliable bool
}

// Fixed returns a reliable estimate whose deep bounds equal its shallow size.
func Fixed(shallow int64) Estimate {
	return Estimate{Shallow: shallow, MinDeep: shallow, MaxDeep: shallow, Reliable: true}
}

// Combine sums two estimates field by field. The result is reliable only if
// both inputs are.
// Sums saturate at math.MaxInt64, and a saturated estimate is unreliable.
func Combine(a, b Estimate) Estimate {
	var c clamp
	return Estimate{
		Shallow:  c.add(a.Shallow, b.Shallow),
		MinDeep:  c.add(a.MinDeep, b.MinDeep),
		MaxDeep:  c.add(a.MaxDeep, b.MaxDeep),
		Reliable: a.Reliable && b.Reliable && !c.hit,
	}
}

// plus adds o's deep bounds to e, keeping e's shallow size.
func (e Estimate) plus(o Estimate) Estimate {
	var c clamp
	e.MinDeep = c.add(e.MinDeep, o.MinDeep)
	e.MaxDeep = c.add(e.MaxDeep, o.MaxDeep)
	e.Reliable = e.Reliable && o.Reliable && !c.hit
	return e
}

// grow adds lo and hi to e's deep bounds, saturating.
func (e Estimate) grow(lo, hi int64) Estimate {
	var c clamp
	e.MinDeep = c.add(e.MinDeep, lo)
	e.MaxDeep = c.add(e.MaxDeep, hi)
	e.Reliable = e.Reliable && !c.hit
	return e
}

// clamp does non-negative int64 arithmetic that saturates at
// math.MaxInt64 and remembers whether it did.
type clamp struct {
	hit bool
}

func (c *clamp) add(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		c.hit = true
		return math.MaxInt64
	}
	return a + b
}

func (c *clamp) mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		c.hit = true
		return math.MaxInt64
	}
	return a * b
}

// Compare orders estimates by MaxDeep, then MinDeep, then Shallow.
func (e Estimate) Compare(o Estimate) int {
	if c := cmp.Compare(e.MaxDeep, o.MaxDeep); c != 0 {
		return c
	}
	if c := cmp.Compare(e.MinDeep, o.MinDeep); c != 0 {
		return c
	}
	return cmp.Compare(e.Shallow, o.Shallow)
}

// Guessed reports whether the maximum is an assumption rather than a bound.
func (e Estimate) Guessed() bool {
	return !e.Reliable
}

func (e Estimate) String() string {
	return fmt.Sprintf("shallow=%d min=%d max=%d reliable=%t", e.Shallow, e.MinDeep, e.MaxDeep, e.Reliable)
}
