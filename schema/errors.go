package schema

import (
	"errors"
	"strings"
)

// ErrInvalidGraph indicates a graph that cannot be built.
var ErrInvalidGraph = errors.New("schema: invalid graph")

// Error describes a problem with one shape or member of a graph.
type Error struct {
	Shape   ShapeID
	Member  string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("schema: invalid shape")
	if !e.Shape.IsZero() {
		b.WriteString(" ")
		b.WriteString(e.Shape.String())
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidGraph.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidGraph
}

// NewError creates a new Error.
func NewError(shape ShapeID, member, message string) *Error {
	return &Error{Shape: shape, Member: member, Message: message}
}

// IsError reports whether err is or wraps an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
