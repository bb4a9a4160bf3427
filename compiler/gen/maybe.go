package gen

// Maybe holds zero or one value. Override hooks return None to express "no
// opinion".
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some returns a Maybe holding v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}

// OrElse returns the value if present, else v.
func (m Maybe[T]) OrElse(v T) T {
	if m.ok {
		return m.value
	}
	return v
}

// FirstSome evaluates the candidates in order and returns the first present
// value. Later candidates are not evaluated once a value is found or a
// candidate fails.
func FirstSome[T any](candidates ...func() (Maybe[T], error)) (Maybe[T], error) {
	for _, c := range candidates {
		m, err := c()
		if err != nil {
			return None[T](), err
		}
		if m.ok {
			return m, nil
		}
	}
	return None[T](), nil
}
