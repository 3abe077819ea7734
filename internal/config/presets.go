package config

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
)

// ApplyPresets sets each preset on fs unless the flag was already given on the command
// line. Presets go through FlagSet.Set, so they are parsed and typed exactly like command
// line values and afterwards count as changed. It returns the names of the flags it set,
// in sorted order.
func (c *Config) ApplyPresets(fs *pflag.FlagSet) ([]string, error) {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	slices.Sort(names)

	var applied []string
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			return applied, fmt.Errorf("preset %q: unknown flag", name)
		}
		if f.Changed {
			continue
		}
		if err := fs.Set(name, c.Presets[name]); err != nil {
			return applied, fmt.Errorf("preset %q: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}
