package size

import "github.com/Telenav/smithy-sub007/schema"

// Assumptions used when a shape carries no length constraint.
const (
	BytesPerChar          = 2
	DefaultStringLength   = 32
	DefaultCollectionSize = 24
	// StringShallow is the fixed footprint of a string object without its
	// character data.
	StringShallow = 22
)

// Sizes describes the runtime layout assumptions.
type Sizes struct {
	Header    int64
	Reference int64
	Boolean   int64
	Byte      int64
	Short     int64
	Char      int64
	Int       int64
	Float     int64
	Long      int64
	Double    int64
}

var (
	// CompressedOops assumes 4-byte references.
	CompressedOops = Sizes{
		Header:    12,
		Reference: 4,
		Boolean:   1,
		Byte:      1,
		Short:     2,
		Char:      2,
		Int:       4,
		Float:     4,
		Long:      8,
		Double:    8,
	}
	// UncompressedOops assumes 8-byte references.
	UncompressedOops = func() Sizes {
		s := CompressedOops
		s.Reference = 8
		return s
	}()
)

// width returns the inline width of a scalar primitive kind.
func (s Sizes) width(k schema.Kind) (int64, bool) {
	switch k {
	case schema.Boolean:
		return s.Boolean, true
	case schema.Byte:
		return s.Byte, true
	case schema.Short:
		return s.Short, true
	case schema.Integer:
		return s.Int, true
	case schema.Float:
		return s.Float, true
	case schema.Long:
		return s.Long, true
	case schema.Double:
		return s.Double, true
	}
	return 0, false
}

// fixed returns the shallow size of kinds with a constant footprint.
func (s Sizes) fixed(k schema.Kind) int64 {
	switch k {
	case schema.Timestamp:
		return 24
	case schema.BigInteger:
		return 36
	case schema.BigDecimal:
		return 40
	case schema.Set:
		return s.Header
	case schema.List:
		return s.Header + s.Int
	case schema.Map:
		return 16
	case schema.Enum, schema.IntEnum:
		return s.Int
	case schema.String:
		return StringShallow
	case schema.Union, schema.Blob, schema.Document:
		return s.Header + s.Reference
	}
	return s.Header
}
