package gen

var (
	// FeatureIdentity restricts equals and hashCode to identity members.
	FeatureIdentity = Feature{
		Name:        "identity",
		Stage:       Stable,
		Default:     true,
		Description: "Restricts equality and hashing to members flagged as identity members",
		extension:   func() Extension { return IdentityExtension{} },
	}

	// FeatureConstraints emits constraint markers on constructor arguments.
	FeatureConstraints = Feature{
		Name:        "constraints",
		Stage:       Stable,
		Default:     true,
		Description: "Annotates preferred constructor arguments with optionality, range, length and pattern markers",
		extension:   func() Extension { return ConstraintExtension{} },
	}

	// FeatureBuilder honors builder requests on structures.
	FeatureBuilder = Feature{
		Name:        "builder",
		Stage:       Stable,
		Default:     true,
		Description: "Generates a builder entry point for structures that request one",
		extension:   func() Extension { return BuilderExtension{} },
	}

	// FeatureMemoryDocs adds the estimated memory footprint to class docs.
	FeatureMemoryDocs = Feature{
		Name:        "docs/memory",
		Stage:       Beta,
		Default:     false,
		Description: "Documents minimum, typical and maximum instance sizes computed by the size estimator",
		extension:   func() Extension { return MemoryDocsExtension{} },
	}

	// FeatureFootprint adds a footprint helper method to generated types.
	FeatureFootprint = Feature{
		Name:        "footprint",
		Stage:       Experimental,
		Default:     false,
		Description: "Adds a method reporting the estimated maximum instance size when it is reliable",
		extension:   func() Extension { return FootprintExtension{} },
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureIdentity,
		FeatureConstraints,
		FeatureBuilder,
		FeatureMemoryDocs,
		FeatureFootprint,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete but their output may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features have been in use for a while.
	Stable
)

func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	}
	return "unknown"
}

// A Feature is an optional built-in extension.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// extension returns the provider the feature installs.
	extension func() Extension
}

// FeatureByName returns the built-in feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
