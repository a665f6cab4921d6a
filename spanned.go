package dryc

// Spanned carries a raw value together with the 1-based line it was read
// from. A zero Line means the position is unknown.
type Spanned[T any] struct {
	Value T
	Line  int
}

// Span wraps v with its source line.
func Span[T any](v T, line int) Spanned[T] { return Spanned[T]{Value: v, Line: line} }

// SpanLine reports the originating line.
func (s Spanned[T]) SpanLine() int { return s.Line }

// Raw returns the wrapped value as any.
func (s Spanned[T]) Raw() any { return s.Value }

// spanner is implemented by every Spanned instantiation so consumers can
// unwrap values without knowing T.
type spanner interface {
	SpanLine() int
	Raw() any
}

// Unwrap returns the bare value and its line for either a spanned or a bare
// value. Bare values report line 0.
func Unwrap(v any) (any, int) {
	if s, ok := v.(spanner); ok {
		return s.Raw(), s.SpanLine()
	}
	return v, 0
}

// Value returns v without its span wrapper.
func Value(v any) any {
	raw, _ := Unwrap(v)
	return raw
}

// LineOf returns the line recorded on v, or 0.
func LineOf(v any) int {
	_, line := Unwrap(v)
	return line
}

// Strip removes span wrappers from v and, recursively, from any maps and
// slices it contains.
func Strip(v any) any {
	raw := Value(v)
	switch t := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Strip(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Strip(t[i])
		}
		return out
	default:
		return raw
	}
}

// AsString unwraps v and reports whether it holds a string.
func AsString(v any) (string, bool) {
	s, ok := Value(v).(string)
	return s, ok
}
