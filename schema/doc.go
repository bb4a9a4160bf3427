// Package schema holds the shape graph that the generators operate on.
//
// A graph is a read-only set of shapes keyed by [ShapeID]. Aggregate shapes
// (structures, unions, lists, sets and maps) own an ordered list of members;
// a member names its target shape by id and never owns it.
//
// # Shapes
//
// Every shape has a [Kind]. The kind set is closed: scalar kinds carry no
// members, list and set shapes carry exactly one member named "member", and
// map shapes carry the members "key" and "value".
//
//	user := schema.NewStructure(schema.ID("example.users", "User"),
//	    schema.NewMember("id", schema.PreludeID(schema.String)).AsRequired().AsIdentity(),
//	    schema.NewMember("nickname", schema.PreludeID(schema.String)).WithLength(schema.Int64(1), schema.Int64(40)),
//	)
//	g, err := schema.NewGraph(user)
//
// # Prelude
//
// Shapes in the [PreludeNamespace] are shared by every graph. A member that
// targets a prelude scalar may be stored inline as a primitive when it is
// required or defaulted and not boxed; see [Shape.PrimitiveCapable].
//
// # Mixins
//
// A shape flagged as a mixin is a member-composition template. Loaders flatten
// mixin members into the shapes that use them before a graph is built, so
// consumers of a [Graph] only ever see concrete member lists.
package schema
