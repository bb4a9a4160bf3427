// Package load reads shape documents written in YAML or JSON and builds a
// validated schema graph from them.
package load

import (
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one file's worth of shapes sharing a namespace.
type Document struct {
	Namespace string   `json:"namespace" yaml:"namespace"`
	Shapes    []*Shape `json:"shapes" yaml:"shapes"`
	// File is the path the document was read from, if any.
	File string `json:"-" yaml:"-"`
}

// Shape is a shape as written in a document.
type Shape struct {
	Name    string    `json:"name" yaml:"name"`
	Type    string    `json:"type" yaml:"type"`
	Doc     string    `json:"doc,omitempty" yaml:"doc,omitempty"`
	Mixin   bool      `json:"mixin,omitempty" yaml:"mixin,omitempty"`
	Mixins  []string  `json:"mixins,omitempty" yaml:"mixins,omitempty"`
	Builder string    `json:"builder,omitempty" yaml:"builder,omitempty"`
	Sparse  bool      `json:"sparse,omitempty" yaml:"sparse,omitempty"`
	Boxed   bool      `json:"boxed,omitempty" yaml:"boxed,omitempty"`
	Members []*Member `json:"members,omitempty" yaml:"members,omitempty"`
	// Member is the element target of lists and sets.
	Member string `json:"member,omitempty" yaml:"member,omitempty"`
	// Key and Value are the targets of maps.
	Key     string   `json:"key,omitempty" yaml:"key,omitempty"`
	Value   string   `json:"value,omitempty" yaml:"value,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Length  *Length  `json:"length,omitempty" yaml:"length,omitempty"`
	Range   *Range   `json:"range,omitempty" yaml:"range,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Pos is the position of the shape in its document.
	Pos string `json:"-" yaml:"-"`
}

// Member is a structure or union member as written in a document.
type Member struct {
	Name     string  `json:"name" yaml:"name"`
	Target   string  `json:"target" yaml:"target"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Identity bool    `json:"identity,omitempty" yaml:"identity,omitempty"`
	Boxed    bool    `json:"boxed,omitempty" yaml:"boxed,omitempty"`
	Sparse   bool    `json:"sparse,omitempty" yaml:"sparse,omitempty"`
	Default  any     `json:"default,omitempty" yaml:"default,omitempty"`
	Length   *Length `json:"length,omitempty" yaml:"length,omitempty"`
	Range    *Range  `json:"range,omitempty" yaml:"range,omitempty"`
	Pattern  string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Weight   int     `json:"weight,omitempty" yaml:"weight,omitempty"`
	Doc      string  `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// Length bounds a string, blob or collection size.
type Length struct {
	Min *int64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *int64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Range bounds a numeric value. Bounds are kept as text so that arbitrary
// precision values survive decoding.
type Range struct {
	Min Number `json:"min,omitempty" yaml:"min,omitempty"`
	Max Number `json:"max,omitempty" yaml:"max,omitempty"`
}

// Number is a numeric literal accepted either as a number or as a string.
type Number string

// UnmarshalJSON accepts both 12.5 and "12.5".
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	*n = Number(strings.Trim(string(b), `"`))
	return nil
}

// UnmarshalYAML accepts any scalar.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range bound must be a scalar", node.Line)
	}
	*n = Number(node.Value)
	return nil
}

// Rat parses the number. An empty number is an open bound.
func (n Number) Rat() (*big.Rat, error) {
	if n == "" {
		return nil, nil
	}
	r, ok := new(big.Rat).SetString(string(n))
	if !ok {
		return nil, fmt.Errorf("invalid number %q", string(n))
	}
	return r, nil
}
