package params

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ValidationError is the single failure reported by the pipeline. Source names the
// handler or cross-handler rule that rejected the invocation; Field names the flag at
// fault when there is one.
type ValidationError struct {
	Source  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Source == "" {
		return e.Message
	}
	return e.Source + ": " + e.Message
}

// attribute returns err as a ValidationError owned by source.
func attribute(source string, err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		out := *verr
		out.Source = source
		return &out
	}
	return &ValidationError{Source: source, Message: err.Error()}
}

func fieldErrorf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Local rule helpers. Each one passes when its option is absent.

func intRange(v Values, name string, lo, hi int) error {
	n, ok := v.Int(name)
	if ok && (n < lo || n > hi) {
		return fieldErrorf(name, "--%s must be between %d and %d, got %d", name, lo, hi, n)
	}
	return nil
}

// finite reports whether f is neither NaN nor infinite. NaN fails no ordered comparison, so
// the float rules check this first.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func floatRange(v Values, name string, lo, hi float64) error {
	f, ok := v.Float(name)
	if ok && (!finite(f) || f < lo || f > hi) {
		return fieldErrorf(name, "--%s must be between %g and %g, got %g", name, lo, hi, f)
	}
	return nil
}

func intAtLeast(v Values, name string, lo int) error {
	n, ok := v.Int(name)
	if ok && n < lo {
		return fieldErrorf(name, "--%s must be at least %d, got %d", name, lo, n)
	}
	return nil
}

func positiveInt(v Values, name string) error {
	n, ok := v.Int(name)
	if ok && n <= 0 {
		return fieldErrorf(name, "--%s must be positive, got %d", name, n)
	}
	return nil
}

func positiveFloat(v Values, name string) error {
	f, ok := v.Float(name)
	if ok && !finite(f) {
		return fieldErrorf(name, "--%s must be a finite number, got %g", name, f)
	}
	if ok && f <= 0 {
		return fieldErrorf(name, "--%s must be positive, got %g", name, f)
	}
	return nil
}

// nonBlank checks a string option is not blank and, when maxLen > 0, not longer than
// maxLen characters.
func nonBlank(v Values, name string, maxLen int) error {
	s, ok := v.String(name)
	if !ok {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return fieldErrorf(name, "--%s must not be empty", name)
	}
	if n := len([]rune(s)); maxLen > 0 && n > maxLen {
		return fieldErrorf(name, "--%s must be at most %d characters, got %d", name, maxLen, n)
	}
	return nil
}

func oneOf(v Values, name string, allowed ...string) error {
	s, ok := v.String(name)
	if !ok {
		return nil
	}
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return fieldErrorf(name, "--%s must be one of %s, got %q", name, strings.Join(allowed, ", "), s)
}

func requires(v Values, name, dependency string) error {
	if v.Has(name) && !v.Has(dependency) {
		return fieldErrorf(name, "--%s requires --%s", name, dependency)
	}
	return nil
}

func exclusive(v Values, a, b string) error {
	if v.Has(a) && v.Has(b) {
		return fieldErrorf(a, "--%s and --%s are mutually exclusive", a, b)
	}
	return nil
}
