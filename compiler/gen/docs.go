package gen

import (
	"fmt"
	"strings"

	"github.com/Telenav/smithy-sub007/compiler/size"
)

// MemoryDocsExtension documents the estimated footprint of each structure.
type MemoryDocsExtension struct {
	BaseExtension
}

func (MemoryDocsExtension) Precedence() int { return PrecedenceDocs }

func (MemoryDocsExtension) ClassDocSections(ctx *Context) ([]*DocSection, error) {
	if ctx.Sizes == nil {
		return nil, nil
	}
	doc, err := ctx.Sizes.MemoryUsage(ctx.Shape())
	if err != nil {
		return nil, err
	}
	title, body, _ := strings.Cut(doc, "\n\n")
	return []*DocSection{{Title: strings.TrimPrefix(title, "# "), Body: strings.TrimSpace(body)}}, nil
}

// FootprintExtension adds a footprint accessor to structures whose maximum
// size is bounded.
type FootprintExtension struct {
	BaseExtension
}

func (FootprintExtension) Precedence() int { return PrecedenceDocs }

func (FootprintExtension) Contributors(ctx *Context, phase Phase) ([]Contributor, error) {
	if phase != PhaseOther || ctx.Sizes == nil {
		return nil, nil
	}
	est, err := ctx.Sizes.Of(ctx.Shape())
	if err != nil {
		return nil, err
	}
	if !est.Reliable {
		return nil, nil
	}
	return []Contributor{&Method{
		In:   PhaseOther,
		Kind: MethodFootprint,
		Name: "Footprint",
		Doc:  footprintDoc(est),
	}}, nil
}

func footprintDoc(est size.Estimate) string {
	return fmt.Sprintf("Footprint returns the maximum instance size in bytes (%d).", est.MaxDeep)
}
