// Package graphql renders the structures of a schema graph as a GraphQL
// schema document.
//
// Structures become object types, and optionally input types; enums,
// unions and collections map to their GraphQL counterparts. Scalars
// without a built-in equivalent are declared as custom scalars. Member
// constraints are carried as @length, @range and @pattern directives when
// enabled.
//
// The package also provides a generation extension that documents each
// generated type with its GraphQL definition, and helpers that keep a
// gqlgen.yml model binding file in sync:
//
//	ex, err := graphql.NewExtension(graphql.WithInputs(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err := gen.NewConfig(gen.WithExtensions(ex))
//
// The SDL of the whole graph is available through Render:
//
//	sdl, err := graphql.Render(g, graphql.WithConstraintDirectives(true))
package graphql
