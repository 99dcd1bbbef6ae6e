package matcher

// Option holds either a parsed value or nothing. Parsers in this package
// return an Option instead of an error so callers pick the neutral default
// explicitly with OrElse.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value, or def when empty.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// ParseOr applies parse to s and falls back to def when nothing was parsed.
func ParseOr[T any](s string, parse func(string) Option[T], def T) T {
	return parse(s).OrElse(def)
}
