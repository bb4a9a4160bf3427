package gen

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/Telenav/smithy-sub007/schema"
)

// Constraint marker names.
const (
	MarkerOptionally           = "Optionally"
	MarkerStringPattern        = "StringPattern"
	MarkerCollectionConstraint = "CollectionConstraint"
)

// MaxLength is the upper length bound used when none is declared.
const MaxLength = math.MaxInt32

// ConstraintExtension annotates constructor arguments with the markers a
// runtime validator understands, and adds the matching argument checks.
type ConstraintExtension struct {
	BaseExtension
}

func (ConstraintExtension) Precedence() int { return PrecedenceConstraints }

// ArgumentAnnotations is only consulted for the preferred constructor kind.
func (ConstraintExtension) ArgumentAnnotations(ctx *Context, m *Member, kind ConstructorKind) ([]*Annotation, error) {
	var out []*Annotation
	opt, err := optionallyMarker(ctx, m)
	if err != nil {
		return nil, err
	}
	if opt != nil {
		out = append(out, opt)
	}
	rng, err := rangeMarkers(ctx, m, kind)
	if err != nil {
		return nil, err
	}
	out = append(out, rng...)
	switch {
	case m.Target.Kind == schema.String && (m.Length() != nil || m.Pattern() != ""):
		a, err := stringMarker(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	case m.Target.Kind.IsCollection() && m.Length() != nil:
		a, err := collectionMarker(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (ConstraintExtension) ArgumentChecks(_ *Context, m *Member, kind ConstructorKind) ([]*Check, error) {
	var out []*Check
	primitiveArg := kind != Deserialization && m.Inline()
	if m.Required && !m.HasDefault() && !primitiveArg {
		out = append(out, &Check{Member: m.Name, Kind: CheckNotNull})
	}
	if r := m.Range(); r != nil && m.Target.Kind.IsNumeric() {
		out = append(out, &Check{Member: m.Name, Kind: CheckRange, Min: r.Min, Max: r.Max})
	}
	if l := m.Length(); l != nil && (m.Target.Kind == schema.String || m.Target.Kind.IsCollection()) {
		out = append(out, &Check{Member: m.Name, Kind: CheckLength, MinLen: l.Min, MaxLen: l.Max})
	}
	if p := m.Pattern(); p != "" && m.Target.Kind == schema.String {
		out = append(out, &Check{Member: m.Name, Kind: CheckPattern, Pattern: p})
	}
	return out, nil
}

func (ConstraintExtension) ClassDocSections(ctx *Context) ([]*DocSection, error) {
	var lines []string
	for _, m := range ctx.Structure.Members() {
		if d := describeConstraints(m); d != "" {
			lines = append(lines, "  - "+m.Name+": "+d)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return []*DocSection{{Title: "Constraints", Body: strings.Join(lines, "\n")}}, nil
}

func describeConstraints(m *Member) string {
	var parts []string
	if m.Required {
		parts = append(parts, "required")
	}
	if r := m.Range(); r != nil {
		parts = append(parts, "range "+ratString(r.Min, "-inf")+".."+ratString(r.Max, "+inf"))
	}
	if l := m.Length(); l != nil {
		parts = append(parts, "length "+boundString(l.Min, "0")+".."+boundString(l.Max, "*"))
	}
	if p := m.Pattern(); p != "" {
		parts = append(parts, "pattern "+strconv.Quote(p))
	}
	return strings.Join(parts, ", ")
}

func ratString(r *big.Rat, unset string) string {
	if r == nil {
		return unset
	}
	return r.RatString()
}

func boundString(v *int64, unset string) string {
	if v == nil {
		return unset
	}
	return strconv.FormatInt(*v, 10)
}

// optionallyMarker returns the marker of a member that is not required, or
// nil. The default value, when there is one, becomes part of the marker.
func optionallyMarker(ctx *Context, m *Member) (*Annotation, error) {
	if m.Required {
		return nil, nil
	}
	acceptNull := &Annotation{Name: MarkerOptionally, Params: []Param{{"acceptNull", true}}}
	withDefault := func(name string, v any) *Annotation {
		return &Annotation{Name: MarkerOptionally, Params: []Param{{name, v}}}
	}
	k := m.Target.Kind
	switch {
	case k == schema.Byte || k == schema.Short || k == schema.Integer || k == schema.Long ||
		k == schema.Float || k == schema.Double:
		if !m.HasDefault() {
			return acceptNull, nil
		}
		f, ok := float64Of(m.Default)
		if !ok {
			return nil, badDefault(ctx, m)
		}
		return withDefault("numericDefault", f), nil
	case k == schema.Boolean:
		if !m.HasDefault() {
			return acceptNull, nil
		}
		b, ok := m.Default.(bool)
		if !ok {
			return nil, badDefault(ctx, m)
		}
		return withDefault("booleanDefault", b), nil
	case k == schema.String:
		if !m.HasDefault() {
			return acceptNull, nil
		}
		s, ok := m.Default.(string)
		if !ok {
			return nil, badDefault(ctx, m)
		}
		return withDefault("stringDefault", s), nil
	case k == schema.Enum || k == schema.IntEnum || k.IsBig():
		if !m.HasDefault() {
			return acceptNull, nil
		}
		if s, ok := m.Default.(string); ok {
			return withDefault("stringDefault", s), nil
		}
		f, ok := float64Of(m.Default)
		if !ok {
			return nil, badDefault(ctx, m)
		}
		return withDefault("numericDefault", int64(f)), nil
	case k.IsCollection() || k == schema.Timestamp:
		if m.HasDefault() {
			return nil, NewConfigurationError(ctx.Shape(), m.Name,
				"cannot express a default for a "+k.String()+" member in a marker", nil)
		}
		return acceptNull, nil
	case m.ModelDefined():
		return acceptNull, nil
	}
	return nil, nil
}

func badDefault(ctx *Context, m *Member) error {
	return NewConfigurationError(ctx.Shape(), m.Name,
		fmt.Sprintf("default %v (%T) does not fit a %s member", m.Default, m.Default, m.Target.Kind), nil)
}

func float64Of(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case *big.Rat:
		f, _ := v.Float64()
		return f, true
	}
	return 0, false
}

// rangeMarkerName returns the marker prefix for a range on kind k. The
// convenience constructor widens bytes and shorts to int and floats to
// double.
func rangeMarkerName(k schema.Kind, kind ConstructorKind) string {
	switch k {
	case schema.Byte:
		if kind == Convenience {
			return "Int"
		}
		return "Byte"
	case schema.Short:
		if kind == Convenience {
			return "Int"
		}
		return "Short"
	case schema.Integer:
		return "Int"
	case schema.Long:
		return "Long"
	case schema.Float:
		if kind == Convenience {
			return "Double"
		}
		return "Float"
	case schema.Double:
		return "Double"
	case schema.BigInteger, schema.BigDecimal:
		return "Big"
	}
	return ""
}

func rangeMarkers(ctx *Context, m *Member, kind ConstructorKind) ([]*Annotation, error) {
	r := m.Range()
	if r == nil {
		return nil, nil
	}
	prefix := rangeMarkerName(m.Target.Kind, kind)
	if prefix == "" {
		return nil, NewConfigurationError(ctx.Shape(), m.Name,
			"range is not supported on a "+m.Target.Kind.String()+" member", nil)
	}
	var out []*Annotation
	for _, b := range []struct {
		suffix string
		value  *big.Rat
	}{{"Min", r.Min}, {"Max", r.Max}} {
		if b.value == nil {
			continue
		}
		v, err := rangeValue(b.value, m.Target.Kind, prefix)
		if err != nil {
			return nil, NewConfigurationError(ctx.Shape(), m.Name, "invalid range "+strings.ToLower(b.suffix), err)
		}
		out = append(out, &Annotation{Name: prefix + b.suffix, Params: []Param{{"value", v}}})
	}
	return out, nil
}

var intBounds = map[schema.Kind][2]int64{
	schema.Byte:    {math.MinInt8, math.MaxInt8},
	schema.Short:   {math.MinInt16, math.MaxInt16},
	schema.Integer: {math.MinInt32, math.MaxInt32},
	schema.Long:    {math.MinInt64, math.MaxInt64},
}

// rangeValue converts r to the value type of the marker. Integral bounds
// must be exactly representable in the width of k.
func rangeValue(r *big.Rat, k schema.Kind, prefix string) (any, error) {
	switch k {
	case schema.Byte, schema.Short, schema.Integer, schema.Long:
		bounds := intBounds[k]
		if !r.IsInt() || !r.Num().IsInt64() {
			return nil, fmt.Errorf("%s is not representable as %s", r.RatString(), k)
		}
		v := r.Num().Int64()
		if v < bounds[0] || v > bounds[1] {
			return nil, fmt.Errorf("%d is not representable as %s", v, k)
		}
		switch prefix {
		case "Byte":
			return int8(v), nil
		case "Short":
			return int16(v), nil
		case "Int":
			return int32(v), nil
		}
		return v, nil
	case schema.Float:
		if prefix == "Double" {
			f, _ := r.Float64()
			return f, nil
		}
		f, _ := r.Float32()
		return f, nil
	case schema.Double:
		f, _ := r.Float64()
		return f, nil
	case schema.BigInteger:
		if !r.IsInt() {
			return nil, fmt.Errorf("%s is not an integer", r.RatString())
		}
		return r.Num().String(), nil
	case schema.BigDecimal:
		return decimalString(r), nil
	}
	return nil, fmt.Errorf("range is not supported on %s", k)
}

func stringMarker(ctx *Context, m *Member) (*Annotation, error) {
	a := &Annotation{Name: MarkerStringPattern}
	if p := m.Pattern(); p != "" {
		a.Params = append(a.Params, Param{"value", p})
	}
	lo, hi, err := lengthBounds(ctx, m)
	if err != nil {
		return nil, err
	}
	a.Params = append(a.Params, Param{"minLength", lo}, Param{"maxLength", hi})
	return a, nil
}

func collectionMarker(ctx *Context, m *Member) (*Annotation, error) {
	a := &Annotation{Name: MarkerCollectionConstraint}
	if !m.Sparse() && m.Target.Kind != schema.Map {
		a.Params = append(a.Params, Param{"forbidNullValues", true})
	}
	lo, hi, err := lengthBounds(ctx, m)
	if err != nil {
		return nil, err
	}
	a.Params = append(a.Params, Param{"minSize", lo}, Param{"maxSize", hi})
	return a, nil
}

// lengthBounds returns the declared length bounds, defaulting to 0 and
// MaxLength, capped at MaxLength.
func lengthBounds(ctx *Context, m *Member) (int32, int32, error) {
	lo, hi := int64(0), int64(MaxLength)
	if l := m.Length(); l != nil {
		if l.Min != nil {
			lo = *l.Min
		}
		if l.Max != nil {
			hi = *l.Max
		}
	}
	if lo < 0 || hi < 0 {
		return 0, 0, NewConfigurationError(ctx.Shape(), m.Name, "negative length bound", nil)
	}
	return int32(min(lo, MaxLength)), int32(min(hi, MaxLength)), nil
}

// decimalString renders r exactly. Terminating decimals are written in plain
// notation; anything else falls back to a fraction.
func decimalString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	d := new(big.Int).Set(r.Denom())
	var twos, fives int
	two, five := big.NewInt(2), big.NewInt(5)
	var mod big.Int
	for {
		if q, m := new(big.Int).QuoRem(d, two, &mod); m.Sign() == 0 {
			d, twos = q, twos+1
			continue
		}
		if q, m := new(big.Int).QuoRem(d, five, &mod); m.Sign() == 0 {
			d, fives = q, fives+1
			continue
		}
		break
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return r.RatString()
	}
	return r.FloatString(max(twos, fives))
}
