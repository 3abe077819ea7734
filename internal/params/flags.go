package params

import (
	"github.com/spf13/pflag"
)

// NamespaceFromFlags builds a Namespace from a parsed flag set. Only flags that were set on
// the command line (or through FlagSet.Set) are present; defaults are not.
func NamespaceFromFlags(fs *pflag.FlagSet) Namespace {
	ns := Namespace{}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "string":
			ns[f.Name] = String(f.Value.String())
		case "int":
			if n, err := fs.GetInt(f.Name); err == nil {
				ns[f.Name] = Int(n)
			}
		case "float64":
			if x, err := fs.GetFloat64(f.Name); err == nil {
				ns[f.Name] = Float(x)
			}
		case "bool":
			if b, err := fs.GetBool(f.Name); err == nil {
				ns[f.Name] = Bool(b)
			}
		case "stringSlice":
			if ss, err := fs.GetStringSlice(f.Name); err == nil {
				ns[f.Name] = Strings(ss...)
			}
		}
	})
	return ns
}
