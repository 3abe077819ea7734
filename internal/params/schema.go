package params

import (
	"github.com/spf13/pflag"
)

// SchemaTarget receives flag declarations. *cobra.Command satisfies it.
type SchemaTarget interface {
	Flags() *pflag.FlagSet
	MarkFlagsMutuallyExclusive(flagNames ...string)
}

// FlagSpec declares one recognized flag.
type FlagSpec struct {
	Name      string
	Shorthand string
	Kind      Kind
	Default   Value
	Usage     string
	// Exclusive lists flags that cannot be combined with this one. A pair only needs to
	// be listed on one side.
	Exclusive []string
}

// Schema is a handler's static, ordered flag declaration.
type Schema []FlagSpec

// Lookup returns the spec for name.
func (s Schema) Lookup(name string) (FlagSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return FlagSpec{}, false
}

// Names returns the declared flag names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, spec := range s {
		names[i] = spec.Name
	}
	return names
}

func (s Schema) declare(target SchemaTarget) {
	fs := target.Flags()
	for _, spec := range s {
		switch spec.Kind {
		case KindString:
			fs.StringP(spec.Name, spec.Shorthand, spec.Default.AsString(), spec.Usage)
		case KindInt:
			fs.IntP(spec.Name, spec.Shorthand, spec.Default.AsInt(), spec.Usage)
		case KindFloat:
			fs.Float64P(spec.Name, spec.Shorthand, spec.Default.AsFloat(), spec.Usage)
		case KindBool:
			fs.BoolP(spec.Name, spec.Shorthand, false, spec.Usage)
		case KindStrings:
			fs.StringSliceP(spec.Name, spec.Shorthand, spec.Default.AsStrings(), spec.Usage)
		}
	}
	for _, spec := range s {
		if len(spec.Exclusive) > 0 {
			target.MarkFlagsMutuallyExclusive(append([]string{spec.Name}, spec.Exclusive...)...)
		}
	}
}

// extract copies the present values of this schema's flags out of ns. Booleans are copied
// only when true. Values of the wrong kind are skipped; integers are accepted for float
// flags.
func (s Schema) extract(ns Namespace) Values {
	out := Values{}
	for _, spec := range s {
		v, ok := ns.Lookup(spec.Name)
		if !ok || !v.set() {
			continue
		}
		if spec.Kind == KindFloat && v.Kind() == KindInt {
			v = Float(v.AsFloat())
		}
		if v.Kind() != spec.Kind {
			continue
		}
		if v.Kind() == KindStrings {
			v = Strings(v.list...)
		}
		out[spec.Name] = v
	}
	return out
}

// flagGroup implements the schema half of Handler for a fixed id and schema. Concrete
// handlers embed it and add their own Validate.
type flagGroup struct {
	id     HandlerID
	schema Schema
}

func (g flagGroup) ID() HandlerID { return g.id }

func (g flagGroup) Schema() Schema { return g.schema }

func (g flagGroup) DeclareFlags(target SchemaTarget) { g.schema.declare(target) }

func (g flagGroup) Extract(ns Namespace) Values { return g.schema.extract(ns) }
