package size

import (
	"fmt"
	"strings"

	"github.com/Telenav/smithy-sub007/schema"
)

// MemoryUsage renders a documentation stanza describing the footprint of a
// standalone occurrence of the shape.
func (e *Estimator) MemoryUsage(id schema.ShapeID) (string, error) {
	est, err := e.Of(id)
	if err != nil {
		return "", err
	}
	return FormatMemoryUsage(est, e.sizes), nil
}

// FormatMemoryUsage renders est as a documentation stanza. Unreliable
// estimates report their maximum as typical and the guaranteed maximum as
// unbounded.
func FormatMemoryUsage(est Estimate, s Sizes) string {
	var b strings.Builder
	b.WriteString("# Memory Usage\n\n")
	fmt.Fprintf(&b, "Memory usage per instance, assuming %d-byte references and %d-byte characters.\n", s.Reference, BytesPerChar)
	b.WriteString("Sizes use any length constraints on string, map, list and set members and\n")
	b.WriteString("include object header and reference sizes.\n\n")
	fmt.Fprintf(&b, "  - Minimum instance size: %d bytes\n", est.MinDeep)
	if est.Guessed() {
		fmt.Fprintf(&b, "  - Typical instance size: %d bytes (*)\n", est.MaxDeep)
		b.WriteString("  - Maximum instance size: UNBOUNDED\n\n")
		fmt.Fprintf(&b, "(*) assuming %d elements per collection and %d characters per string.\n",
			DefaultCollectionSize, DefaultStringLength)
		return b.String()
	}
	fmt.Fprintf(&b, "  - Maximum instance size: %d bytes\n", est.MaxDeep)
	return b.String()
}
