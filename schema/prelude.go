package schema

import "fmt"

var preludeNames = map[Kind]string{
	Boolean:    "Boolean",
	Byte:       "Byte",
	Short:      "Short",
	Integer:    "Integer",
	Long:       "Long",
	Float:      "Float",
	Double:     "Double",
	BigInteger: "BigInteger",
	BigDecimal: "BigDecimal",
	String:     "String",
	Blob:       "Blob",
	Timestamp:  "Timestamp",
	Document:   "Document",
}

// prelude is built once and shared by reference by every graph.
var prelude = func() map[ShapeID]*Shape {
	m := make(map[ShapeID]*Shape, len(preludeNames))
	for k, name := range preludeNames {
		id := ID(PreludeNamespace, name)
		m[id] = &Shape{ID: id, Kind: k}
	}
	return m
}()

// PreludeID returns the id of the prelude shape of kind k. It panics for
// kinds without a prelude shape.
func PreludeID(k Kind) ShapeID {
	name, ok := preludeNames[k]
	if !ok {
		panic(fmt.Sprintf("schema: no prelude shape for kind %s", k))
	}
	return ID(PreludeNamespace, name)
}

// Prelude returns the shared prelude shape with the given id.
func Prelude(id ShapeID) (*Shape, bool) {
	s, ok := prelude[id]
	return s, ok
}
