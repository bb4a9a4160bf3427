package gen

import "strings"

// IdentityExtension restricts equality and hashing to identity members when
// a structure declares any. Structures without identity members are left to
// later providers.
type IdentityExtension struct {
	BaseExtension
}

func (IdentityExtension) Precedence() int { return PrecedenceIdentity }

func (IdentityExtension) Equals(ctx *Context) (Maybe[*Equals], error) {
	if !ctx.Structure.HasIdentity() {
		return None[*Equals](), nil
	}
	return Some(&Equals{Members: names(ctx.Structure.IdentityMembers())}), nil
}

func (IdentityExtension) HashCode(ctx *Context) (Maybe[*HashCode], error) {
	if !ctx.Structure.HasIdentity() {
		return None[*HashCode](), nil
	}
	return Some(&HashCode{Members: names(ctx.Structure.IdentityMembers())}), nil
}

func (IdentityExtension) ClassDocSections(ctx *Context) ([]*DocSection, error) {
	ids := ctx.Structure.IdentityMembers()
	if len(ids) == 0 {
		return nil, nil
	}
	return []*DocSection{{
		Title: "Identity",
		Body:  "Equality and hashing consider only " + strings.Join(names(ids), ", ") + ".",
	}}, nil
}
