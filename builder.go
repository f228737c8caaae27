// File: lixenwraith/unicfg/builder.go
package unicfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ValidatorFunc validates the assembled property view before it is handed out.
type ValidatorFunc func(p *Properties) error

// Builder provides a fluent interface for assembling the layered property view
type Builder struct {
	opts       LoadOptions
	defaults   map[string]string
	file       string
	format     string
	args       []string
	environ    []string
	flags      *pflag.FlagSet
	viper      *viper.Viper
	logger     *zap.Logger
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new builder reading os.Args[1:] and the process environment
func NewBuilder() *Builder {
	return &Builder{
		opts:       DefaultLoadOptions(),
		args:       os.Args[1:],
		logger:     zap.NewNop(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults sets default properties bundled with the application (lowest priority)
func (b *Builder) WithDefaults(defaults map[string]string) *Builder {
	b.defaults = defaults
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnvTransform sets a custom key to environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.opts.EnvTransform = fn
	return b
}

// WithEnviron replaces the process environment with "NAME=value" entries
func (b *Builder) WithEnviron(environ []string) *Builder {
	b.environ = environ
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileFormat forces the file format ("toml", "yaml", "json" or "auto")
func (b *Builder) WithFileFormat(format string) *Builder {
	switch format {
	case "toml", "yaml", "json", "auto", "":
		b.format = format
	default:
		b.err = fmt.Errorf("unsupported file format %q", format)
	}
	return b
}

// WithArgs sets the command-line property arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithFlags adds the changed flags of fs as a source
func (b *Builder) WithFlags(fs *pflag.FlagSet) *Builder {
	b.flags = fs
	return b
}

// WithViper adds an existing viper instance as a source
func (b *Builder) WithViper(v *viper.Viper) *Builder {
	b.viper = v
	return b
}

// WithSources sets the precedence order for property sources
func (b *Builder) WithSources(sources ...SourceKind) *Builder {
	b.opts.Sources = sources
	return b
}

// WithMaxValueSize limits the size of a single raw value
func (b *Builder) WithMaxValueSize(n int) *Builder {
	b.opts.MaxValueSize = n
	return b
}

// WithLogger sets the logger used while loading sources
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the property view with all specified options.
// A missing configuration file is not fatal: the view is returned together with
// an error matching ErrConfigNotFound.
func (b *Builder) Build() (*Properties, error) {
	if b.err != nil {
		return nil, b.err
	}

	var (
		sources  []PropertySource
		notFound error
	)

	for _, kind := range b.opts.Sources {
		switch kind {
		case SourceCLI:
			if len(b.args) == 0 {
				continue
			}
			src, err := NewArgsSource(b.args)
			if err != nil {
				return nil, err
			}
			if err := checkValueSizes(src.values, b.opts.maxValueSize()); err != nil {
				return nil, fmt.Errorf("command line: %w", err)
			}
			sources = append(sources, src)

		case SourceFlags:
			if b.flags != nil {
				src := NewFlagSetSource(b.flags)
				if err := checkValueSizes(src.Changed(), b.opts.maxValueSize()); err != nil {
					return nil, fmt.Errorf("flags: %w", err)
				}
				sources = append(sources, src)
			}

		case SourceEnv:
			environ := b.environ
			if environ == nil {
				environ = os.Environ()
			}
			src := NewEnvSourceFrom(environ, b.opts.envTransform())
			// Variables outside the prefix never hold properties; with no prefix all are checked
			if err := checkValueSizes(src.Prefixed(b.opts.EnvPrefix), b.opts.maxValueSize()); err != nil {
				return nil, fmt.Errorf("environment: %w", err)
			}
			sources = append(sources, src)

		case SourceFile:
			if b.file == "" {
				continue
			}
			src, err := NewFileSourceWithFormat(b.file, b.format, b.opts.maxValueSize())
			if err != nil {
				if errors.Is(err, ErrConfigNotFound) {
					b.logger.Warn("configuration file not found, continuing without it", zap.String("path", b.file))
					notFound = err
					continue
				}
				return nil, err
			}
			b.logger.Info("configuration file loaded", zap.String("path", b.file))
			sources = append(sources, src)

		case SourceViper:
			if b.viper != nil {
				src := NewViperSource(b.viper)
				if err := checkValueSizes(src.Settings(), b.opts.maxValueSize()); err != nil {
					return nil, fmt.Errorf("viper: %w", err)
				}
				sources = append(sources, src)
			}

		case SourceDefault:
			if len(b.defaults) > 0 {
				if err := checkValueSizes(b.defaults, b.opts.maxValueSize()); err != nil {
					return nil, fmt.Errorf("defaults: %w", err)
				}
				sources = append(sources, NewMapSource(string(SourceDefault), b.defaults))
			}

		default:
			return nil, fmt.Errorf("unknown source kind %q", kind)
		}
	}

	props := NewProperties(sources...)

	for _, validator := range b.validators {
		if err := validator(props); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return props, notFound
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Properties {
	props, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return props
}

// BuildAndBind builds the view and binds t into target in one step
func (b *Builder) BuildAndBind(t Table, target any, opts ...ResolverOption) (Report, error) {
	props, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}
	opts = append([]ResolverOption{WithLogger(b.logger)}, opts...)
	return NewBinder(NewResolver(props, opts...)).Bind(t, target)
}
