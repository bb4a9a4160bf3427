// Package gen decides what the generated value type of a structure shape
// contains.
//
// It does not emit source code. For each structure it produces a Plan: an
// ordered list of contributors (fields, constructors, getters, equality,
// hashing, string form, builder, default instance and extra methods) that a
// back end such as the golang package turns into a file.
//
// # Architecture
//
// The planning flow:
//
//	Shape documents (compiler/load)
//	        ↓
//	   schema.Graph (validated, resolved)
//	        ↓
//	   Structure view (effective optionality, constraints)
//	        ↓
//	   Pipeline.Plan, driven by the composed extension Chain
//	        ↓
//	   Plan (contributors grouped by phase)
//
// # Extensions
//
// Every generation concern is an Extension hook. Override hooks return a
// Maybe and the first extension answering Some wins. Collect hooks return
// slices and the answers of all extensions are concatenated in chain order.
//
//	Chain
//	├── override: ClassDoc, Field, Getter, Assignment, Equals, HashCode,
//	│             ToString, DefaultInstance
//	└── collect:  ConstructorKinds, ConstructorAnnotations, ConstructorDocs,
//	              ArgumentAnnotations, ArgumentChecks, ClassDocSections,
//	              MemberDocs, FieldDecorations, GetterDecorations,
//	              EqualsTerms, HashTerms, ToStringTerms, ToStringWrappers,
//	              Contributors, MemberContributors
//
// Embed BaseExtension to implement only the hooks you need. Compose orders
// the built-in extensions by Precedence and appends the discovered ones.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigurationError: the model asks for something that cannot be
//     generated, such as an unsatisfiable constraint or a builder on a mixin
//   - ConfigError: invalid generator options
//   - GenerationError: an extension misbehaved while planning
//
// Example error handling:
//
//	plan, err := p.Plan(id)
//	if err != nil {
//	    if gen.IsConfigurationError(err) {
//	        // Report against the model
//	    }
//	    return err
//	}
//
// # Configuration
//
// Use functional options:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithFeatures(gen.FeatureMemoryDocs),
//	    gen.WithPreferredKindName("ranked"),
//	    gen.WithWorkers(4),
//	)
//	p, err := gen.NewPipeline(graph, cfg.Compose(), cfg)
package gen
