package schema

import "strings"

// Kind is the closed set of shape kinds.
type Kind uint8

// Shape kinds.
const (
	Invalid Kind = iota
	Boolean
	Byte
	Short
	Integer
	Long
	Float
	Double
	BigInteger
	BigDecimal
	String
	Blob
	Timestamp
	Enum
	IntEnum
	Document
	Structure
	List
	Set
	Map
	Union
	endKinds
)

var kindNames = [...]string{
	Invalid:    "invalid",
	Boolean:    "boolean",
	Byte:       "byte",
	Short:      "short",
	Integer:    "integer",
	Long:       "long",
	Float:      "float",
	Double:     "double",
	BigInteger: "bigInteger",
	BigDecimal: "bigDecimal",
	String:     "string",
	Blob:       "blob",
	Timestamp:  "timestamp",
	Enum:       "enum",
	IntEnum:    "intEnum",
	Document:   "document",
	Structure:  "structure",
	List:       "list",
	Set:        "set",
	Map:        "map",
	Union:      "union",
}

// String returns the schema name of the kind.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k > Invalid && k < endKinds
}

// ParseKind returns the kind with the given name. Matching is case
// insensitive.
func ParseKind(s string) (Kind, bool) {
	for k := Boolean; k < endKinds; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, true
		}
	}
	return Invalid, false
}

// IsNumeric reports whether k holds a fixed-width or arbitrary-precision number.
func (k Kind) IsNumeric() bool {
	switch k {
	case Byte, Short, Integer, Long, Float, Double, BigInteger, BigDecimal:
		return true
	}
	return false
}

// IsBig reports whether k is an arbitrary-precision number.
func (k Kind) IsBig() bool {
	return k == BigInteger || k == BigDecimal
}

// IsScalarPrimitive reports whether values of k have a fixed-width primitive
// representation.
func (k Kind) IsScalarPrimitive() bool {
	switch k {
	case Boolean, Byte, Short, Integer, Long, Float, Double:
		return true
	}
	return false
}

// IsCollection reports whether k is a list, set or map.
func (k Kind) IsCollection() bool {
	return k == List || k == Set || k == Map
}

// IsAggregate reports whether shapes of kind k own members.
func (k Kind) IsAggregate() bool {
	return k == Structure || k == Union || k.IsCollection()
}
