package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/Telenav/smithy-sub007/schema"
)

const bigPkg = "math/big"

// baseType returns the Go type of values of s.
func (r *Renderer) baseType(s *schema.Shape) jen.Code {
	switch s.Kind {
	case schema.Boolean:
		return jen.Bool()
	case schema.Byte:
		return jen.Int8()
	case schema.Short:
		return jen.Int16()
	case schema.Integer, schema.IntEnum:
		return jen.Int32()
	case schema.Long:
		return jen.Int64()
	case schema.Float:
		return jen.Float32()
	case schema.Double:
		return jen.Float64()
	case schema.BigInteger:
		return jen.Op("*").Qual(bigPkg, "Int")
	case schema.BigDecimal:
		return jen.Op("*").Qual(bigPkg, "Rat")
	case schema.String, schema.Enum:
		return jen.String()
	case schema.Blob:
		return jen.Index().Byte()
	case schema.Timestamp:
		return jen.Qual("time", "Time")
	case schema.Structure:
		return jen.Op("*").Id(Exported(s.ID.Name))
	case schema.List, schema.Set:
		return jen.Index().Add(r.memberType(s.ElementMember()))
	case schema.Map:
		return jen.Map(r.memberType(s.KeyMember())).Add(r.memberType(s.ValueMember()))
	}
	return jen.Any()
}

func (r *Renderer) memberType(m *schema.Member) jen.Code {
	t, err := r.graph.Target(m)
	if err != nil {
		return jen.Any()
	}
	return r.baseType(t)
}

// nillable reports whether the Go type of kind k already has a nil value.
func nillable(k schema.Kind) bool {
	switch k {
	case schema.BigInteger, schema.BigDecimal, schema.Blob, schema.Document,
		schema.Structure, schema.List, schema.Set, schema.Map, schema.Union:
		return true
	}
	return false
}

// nullableType returns the Go type that can represent an absent value of s.
func (r *Renderer) nullableType(s *schema.Shape) jen.Code {
	if nillable(s.Kind) {
		return r.baseType(s)
	}
	return jen.Op("*").Add(r.baseType(s))
}

// kindType returns the Go type of a fixed-width argument kind.
func kindType(k schema.Kind) jen.Code {
	switch k {
	case schema.Integer:
		return jen.Int32()
	case schema.Double:
		return jen.Float64()
	}
	return jen.Any()
}

// literal renders a default value for a member of kind k.
func literal(k schema.Kind, v any) (jen.Code, bool) {
	switch k {
	case schema.Boolean:
		b, ok := v.(bool)
		return jen.Lit(b), ok
	case schema.String, schema.Enum:
		s, ok := v.(string)
		return jen.Lit(s), ok
	case schema.Byte, schema.Short, schema.Integer, schema.Long, schema.IntEnum:
		switch n := v.(type) {
		case int64:
			return jen.Lit(int(n)), true
		case int:
			return jen.Lit(n), true
		case float64:
			return jen.Lit(int(n)), n == float64(int(n))
		}
	case schema.Float, schema.Double:
		switch n := v.(type) {
		case float64:
			return jen.Lit(n), true
		case int64:
			return jen.Lit(float64(n)), true
		}
	case schema.BigInteger:
		if n, ok := v.(int64); ok {
			return jen.Qual(bigPkg, "NewInt").Call(jen.Lit(int(n))), true
		}
	case schema.BigDecimal:
		switch n := v.(type) {
		case float64:
			return jen.New(jen.Qual(bigPkg, "Rat")).Dot("SetFloat64").Call(jen.Lit(n)), true
		case int64:
			return jen.Qual(bigPkg, "NewRat").Call(jen.Lit(int(n)), jen.Lit(1)), true
		}
	}
	return nil, false
}
