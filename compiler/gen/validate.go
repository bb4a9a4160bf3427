package gen

import (
	"errors"
	"math/big"
	"regexp"

	"github.com/Telenav/smithy-sub007/schema"
)

// Validate reports every statically detectable problem of s before any hook
// runs. The returned error joins one *ConfigurationError per problem.
func Validate(s *Structure) error {
	var errs []error
	if err := checkBuilder(s); err != nil {
		errs = append(errs, err)
	}
	for _, m := range s.Members() {
		errs = append(errs, validateMember(s.ID(), m)...)
	}
	return errors.Join(errs...)
}

func validateMember(shape schema.ShapeID, m *Member) []error {
	var errs []error
	fail := func(msg string) {
		errs = append(errs, NewConfigurationError(shape, m.Name, msg, nil))
	}
	k := m.Target.Kind
	if m.Identity && !m.Defaulted() {
		fail("identity member must be required or have a default")
	}
	if l := m.Length(); l != nil {
		switch {
		case l.Min != nil && *l.Min < 0, l.Max != nil && *l.Max < 0:
			fail("negative length bound")
		case l.Min != nil && l.Max != nil && *l.Min > *l.Max:
			fail("length minimum exceeds maximum")
		}
		if k != schema.String && k != schema.Blob && !k.IsCollection() {
			fail("length is not supported on a " + k.String() + " member")
		}
	}
	if p := m.Pattern(); p != "" {
		if k != schema.String {
			fail("pattern is not supported on a " + k.String() + " member")
		} else if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, NewConfigurationError(shape, m.Name, "invalid pattern", err))
		}
	}
	if r := m.Range(); r != nil {
		if !k.IsNumeric() {
			fail("range is not supported on a " + k.String() + " member")
			return errs
		}
		if r.Min != nil && r.Max != nil && r.Min.Cmp(r.Max) > 0 {
			fail("range minimum exceeds maximum")
		}
		prefix := rangeMarkerName(k, Deserialization)
		for _, v := range []struct {
			name  string
			value *big.Rat
		}{{"minimum", r.Min}, {"maximum", r.Max}} {
			if v.value == nil {
				continue
			}
			if _, err := rangeValue(v.value, k, prefix); err != nil {
				errs = append(errs, NewConfigurationError(shape, m.Name, "invalid range "+v.name, err))
			}
		}
	}
	return errs
}
