// Package params turns a flat command-line flag surface into validated, per-group option
// maps and a single resolved operation.
//
// The pipeline is built from independent capability handlers (core, plan, context,
// evaluation, database, utility). Each handler owns a slice of the flag schema, extracts
// the values it recognizes from a Namespace and validates them locally. The Orchestrator
// composes the handlers, runs cross-handler rules and resolves the OperationType that
// external engines dispatch on.
package params

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the primitive type of a flag value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStrings
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStrings:
		return "strings"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a present flag value. Absence is never encoded in a Value; an absent flag has no
// entry in its Namespace or Values map.
type Value struct {
	kind Kind
	str  string
	num  int
	flt  float64
	on   bool
	list []string
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(n int) Value { return Value{kind: KindInt, num: n} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, on: b} }

// Strings returns a list value. The slice is copied.
func Strings(ss ...string) Value {
	return Value{kind: KindStrings, list: slices.Clone(ss)}
}

// Kind reports the primitive type held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string held by v, or "" for other kinds.
func (v Value) AsString() string { return v.str }

// AsInt returns the integer held by v, or 0 for other kinds.
func (v Value) AsInt() int { return v.num }

// AsFloat returns the float held by v. Integers are widened.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.num)
	}
	return v.flt
}

// AsBool returns the boolean held by v, or false for other kinds.
func (v Value) AsBool() bool { return v.on }

// AsStrings returns a copy of the list held by v.
func (v Value) AsStrings() []string { return slices.Clone(v.list) }

// Interface returns v as a plain Go value for encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.on
	case KindStrings:
		return v.AsStrings()
	default:
		return v.str
	}
}

// Equal reports whether v and o hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt
	case KindBool:
		return v.on == o.on
	case KindStrings:
		return slices.Equal(v.list, o.list)
	default:
		return v.str == o.str
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.num)
	case KindFloat:
		return fmt.Sprintf("%g", v.flt)
	case KindBool:
		return fmt.Sprintf("%t", v.on)
	case KindStrings:
		return "[" + strings.Join(v.list, ",") + "]"
	default:
		return fmt.Sprintf("%q", v.str)
	}
}

// set reports whether v signals an explicitly requested option. False booleans do not.
func (v Value) set() bool {
	return v.kind != KindBool || v.on
}

// Namespace is the raw flag namespace handed over by the flag-parsing layer: flag name to
// present value. It is read-only input to the pipeline.
type Namespace map[string]Value

// Lookup returns the value of a flag and whether it was present.
func (ns Namespace) Lookup(name string) (Value, bool) {
	v, ok := ns[name]
	return v, ok
}

// IsSet reports whether a flag is present and, for booleans, true.
func (ns Namespace) IsSet(name string) bool {
	v, ok := ns[name]
	return ok && v.set()
}

// AnySet reports whether any of the named flags is set.
func (ns Namespace) AnySet(names ...string) bool {
	for _, name := range names {
		if ns.IsSet(name) {
			return true
		}
	}
	return false
}

// Values is one handler's extracted option map. Keys are flag names.
type Values map[string]Value

// Has reports whether option name was extracted.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// HasAny reports whether any of the named options was extracted.
func (v Values) HasAny(names ...string) bool {
	for _, name := range names {
		if v.Has(name) {
			return true
		}
	}
	return false
}

// String returns a string option and whether it was present.
func (v Values) String(name string) (string, bool) {
	val, ok := v[name]
	return val.AsString(), ok
}

// Int returns an integer option and whether it was present.
func (v Values) Int(name string) (int, bool) {
	val, ok := v[name]
	return val.AsInt(), ok
}

// Float returns a float option and whether it was present.
func (v Values) Float(name string) (float64, bool) {
	val, ok := v[name]
	return val.AsFloat(), ok
}

// Flag reports whether a boolean option was set.
func (v Values) Flag(name string) bool {
	val, ok := v[name]
	return ok && val.AsBool()
}

// Strings returns a list option and whether it was present.
func (v Values) Strings(name string) ([]string, bool) {
	val, ok := v[name]
	return val.AsStrings(), ok
}

// Map converts v into plain Go values keyed by option name.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v))
	for name, val := range v {
		out[name] = val.Interface()
	}
	return out
}

// Extracted is the aggregated extraction result keyed by handler. Handlers that extracted
// nothing have no entry.
type Extracted map[HandlerID]Values
