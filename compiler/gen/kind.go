package gen

import "slices"

// ConstructorKind is a supported constructor signature.
type ConstructorKind int

// Constructor kinds, in ordinal order.
const (
	// Deserialization accepts every member in its nullable form. Always
	// available.
	Deserialization ConstructorKind = iota
	// Primitives accepts defaulted primitive members unboxed.
	Primitives
	// Convenience accepts byte and short members as int and float members
	// as double.
	Convenience
)

func (k ConstructorKind) String() string {
	switch k {
	case Deserialization:
		return "deserialization"
	case Primitives:
		return "primitives"
	case Convenience:
		return "convenience"
	}
	return "unknown"
}

// ParseConstructorKind returns the kind with the given name.
func ParseConstructorKind(s string) (ConstructorKind, bool) {
	for _, k := range []ConstructorKind{Deserialization, Primitives, Convenience} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// PreferredKindPolicy selects the preferred kind among the available ones.
// Constructor and argument annotations attach only to the preferred kind.
type PreferredKindPolicy interface {
	Name() string
	Select(available []ConstructorKind) ConstructorKind
}

type deserializationPreferred struct{}

func (deserializationPreferred) Name() string { return "deserialization" }

func (deserializationPreferred) Select([]ConstructorKind) ConstructorKind { return Deserialization }

type rankedPreferred struct{}

func (rankedPreferred) Name() string { return "ranked" }

func (rankedPreferred) Select(available []ConstructorKind) ConstructorKind {
	for _, k := range []ConstructorKind{Convenience, Primitives} {
		if slices.Contains(available, k) {
			return k
		}
	}
	return Deserialization
}

var (
	// DeserializationPreferred always prefers the deserialization
	// constructor. This is the default.
	DeserializationPreferred PreferredKindPolicy = deserializationPreferred{}
	// RankedPreferred prefers convenience, then primitives, then
	// deserialization.
	RankedPreferred PreferredKindPolicy = rankedPreferred{}
)

// PolicyByName returns the named built-in policy.
func PolicyByName(name string) (PreferredKindPolicy, bool) {
	switch name {
	case "", DeserializationPreferred.Name():
		return DeserializationPreferred, true
	case RankedPreferred.Name():
		return RankedPreferred, true
	}
	return nil, false
}

// normalizeKinds returns the distinct kinds in ordinal order. Deserialization
// is always present.
func normalizeKinds(kinds []ConstructorKind) []ConstructorKind {
	out := []ConstructorKind{Deserialization}
	for _, k := range kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
