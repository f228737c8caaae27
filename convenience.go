// File: lixenwraith/unicfg/convenience.go
package unicfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Quick assembles the standard property view with a single call:
// CLI arguments from os.Args[1:], environment with envPrefix, then configFile.
// A missing configFile is reported with ErrConfigNotFound alongside a usable view.
func Quick(envPrefix, configFile string) (*Properties, error) {
	return NewBuilder().
		WithEnvPrefix(envPrefix).
		WithFile(configFile).
		Build()
}

// QuickCustom is Quick with explicit load options
func QuickCustom(opts LoadOptions, configFile string) (*Properties, error) {
	b := NewBuilder().WithFile(configFile)
	b.opts = opts
	return b.Build()
}

// MustQuick is like Quick but panics on any error other than a missing file
func MustQuick(envPrefix, configFile string) *Properties {
	props, err := Quick(envPrefix, configFile)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return props
}

// FlagSet creates a pflag.FlagSet with one string flag per canonical key of t.
// Parse it and pass it to Builder.WithFlags; untouched flags stay absent.
func (t Table) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	for _, m := range t {
		usage := fmt.Sprintf("%s (%s)", m.Path, m.Kind)
		if m.Kind == KindEnum {
			usage += fmt.Sprintf(", one of %v", m.Enum)
		}
		if len(m.Legacy) > 0 {
			usage += ", replaces " + strings.Join(m.Legacy, ", ")
		}
		fs.String(m.Key, "", usage)
	}
	return fs
}

// Require checks that every key is held by some source
func (p *Properties) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted string showing, for each key, every source holding it
func (p *Properties) Debug(keys ...string) string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("Precedence: %v\n", p.Sources()))
	b.WriteString("Values:\n")

	for _, key := range keys {
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		sightings := p.Explain(key)
		if len(sightings) == 0 {
			b.WriteString("    (absent)\n")
			continue
		}
		for i, s := range sightings {
			marker := ""
			if i == 0 {
				marker = " (effective)"
			}
			b.WriteString(fmt.Sprintf("    %s: %q%s\n", s.Source, s.Value, marker))
		}
	}

	return b.String()
}

// Dump writes target, typically a bound configuration struct, to w in TOML format
func Dump(w io.Writer, target any) error {
	if w == nil {
		w = os.Stdout
	}
	return toml.NewEncoder(w).Encode(target)
}
