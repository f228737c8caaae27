// FILE: lixenwraith/unicfg/source.go
package unicfg

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MapSource is an in-memory source, used for bundled defaults and tests.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource copies values into a named source
func NewMapSource(name string, values map[string]string) *MapSource {
	m := &MapSource{name: name, values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MapSource) Name() string { return m.name }

func (m *MapSource) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the held keys in sorted order
func (m *MapSource) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvSource resolves keys against a snapshot of the process environment.
type EnvSource struct {
	transform EnvTransformFunc
	vars      map[string]string
}

// NewEnvSource snapshots os.Environ() and maps keys through transform
// (RelaxedEnvTransform("") when nil).
func NewEnvSource(transform EnvTransformFunc) *EnvSource {
	return NewEnvSourceFrom(os.Environ(), transform)
}

// NewEnvSourceFrom builds an EnvSource from "NAME=value" entries
func NewEnvSourceFrom(environ []string, transform EnvTransformFunc) *EnvSource {
	if transform == nil {
		transform = RelaxedEnvTransform("")
	}
	vars := make(map[string]string, len(environ))
	for _, e := range environ {
		if name, value, ok := strings.Cut(e, "="); ok && name != "" {
			vars[name] = value
		}
	}
	return &EnvSource{transform: transform, vars: vars}
}

func (e *EnvSource) Name() string { return string(SourceEnv) }

func (e *EnvSource) Lookup(key string) (string, bool) {
	name := e.transform(key)
	if name == "" {
		return "", false
	}
	v, ok := e.vars[name]
	return v, ok
}

// Prefixed returns the snapshot entries whose variable name starts with prefix
func (e *EnvSource) Prefixed(prefix string) map[string]string {
	out := make(map[string]string)
	for name, value := range e.vars {
		if strings.HasPrefix(name, prefix) {
			out[name] = value
		}
	}
	return out
}

// Variable returns the environment variable name that key maps to
func (e *EnvSource) Variable(key string) string {
	return e.transform(key)
}

// FileSource holds the flattened content of a TOML, YAML or JSON file.
type FileSource struct {
	path   string
	values map[string]string
}

// NewFileSource reads path, detecting its format from the extension or content.
// A missing file yields an error matching ErrConfigNotFound.
func NewFileSource(path string) (*FileSource, error) {
	return NewFileSourceWithFormat(path, "auto", MaxValueSize)
}

// NewFileSourceWithFormat reads path as format ("toml", "yaml", "json" or "auto").
func NewFileSourceWithFormat(path, format string, maxValueSize int) (*FileSource, error) {
	nested, err := readConfigFile(path, format)
	if err != nil {
		return nil, err
	}
	// Arrays are joined by flattenStrings, so the limit applies to the joined value
	values := flattenStrings(nested)
	if err := checkValueSizes(values, maxValueSize); err != nil {
		return nil, fmt.Errorf("%w in '%s'", err, path)
	}
	return &FileSource{path: path, values: values}, nil
}

func (f *FileSource) Name() string { return string(SourceFile) + ":" + f.path }

func (f *FileSource) Lookup(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Path returns the file the source was read from
func (f *FileSource) Path() string { return f.path }

// ArgsSource holds properties given as "--key=value" command-line arguments.
type ArgsSource struct {
	values map[string]string
}

// NewArgsSource parses args (typically os.Args[1:] or the arguments after "--").
func NewArgsSource(args []string) (*ArgsSource, error) {
	values, err := parseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}
	return &ArgsSource{values: values}, nil
}

func (a *ArgsSource) Name() string { return string(SourceCLI) }

func (a *ArgsSource) Lookup(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// FlagSetSource exposes the changed flags of a pflag.FlagSet whose names are property keys.
// Flags left at their default value are absent.
type FlagSetSource struct {
	flags *pflag.FlagSet
}

// NewFlagSetSource wraps fs; it is read on every Lookup, so call it after fs.Parse
func NewFlagSetSource(fs *pflag.FlagSet) *FlagSetSource {
	return &FlagSetSource{flags: fs}
}

func (f *FlagSetSource) Name() string { return string(SourceFlags) }

func (f *FlagSetSource) Lookup(key string) (string, bool) {
	if f.flags == nil {
		return "", false
	}
	flag := f.flags.Lookup(key)
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flagValue(flag), true
}

// Changed returns the raw value of every flag set on the command line
func (f *FlagSetSource) Changed() map[string]string {
	out := make(map[string]string)
	if f.flags == nil {
		return out
	}
	f.flags.Visit(func(flag *pflag.Flag) {
		out[flag.Name] = flagValue(flag)
	})
	return out
}

func flagValue(flag *pflag.Flag) string {
	if sv, ok := flag.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ListSeparator)
	}
	return flag.Value.String()
}

// ViperSource adapts an application's existing viper instance.
// Every key viper reports as set is present, viper defaults included; keep field
// defaults in the Go struct rather than in viper when absence must mean "default".
type ViperSource struct {
	v *viper.Viper
}

func NewViperSource(v *viper.Viper) *ViperSource {
	return &ViperSource{v: v}
}

func (s *ViperSource) Name() string { return string(SourceViper) }

func (s *ViperSource) Lookup(key string) (string, bool) {
	if s.v == nil || !s.v.IsSet(key) {
		return "", false
	}
	return stringifyValue(s.v.Get(key)), true
}

// Settings returns the raw value of every key viper reports as set
func (s *ViperSource) Settings() map[string]string {
	out := make(map[string]string)
	if s.v == nil {
		return out
	}
	for _, key := range s.v.AllKeys() {
		if v, ok := s.Lookup(key); ok {
			out[key] = v
		}
	}
	return out
}
