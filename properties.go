// FILE: lixenwraith/unicfg/properties.go
package unicfg

// PropertySource is a read-only set of string-valued entries addressed by dotted keys.
// Implementations must be fully materialized: Lookup never blocks on I/O.
type PropertySource interface {
	// Name identifies the source in diagnostics (e.g. "env", "file:app.toml")
	Name() string
	// Lookup returns the raw value of key and whether the source holds it
	Lookup(key string) (string, bool)
}

// Sighting records one source holding a key
type Sighting struct {
	Source string
	Value  string
}

// Properties is the flattened view over an ordered list of sources.
// The first source holding a key supplies its value.
// Properties is immutable after construction and safe for concurrent readers.
type Properties struct {
	sources []PropertySource
}

// NewProperties creates a view over sources, highest priority first.
// Nil sources are skipped.
func NewProperties(sources ...PropertySource) *Properties {
	p := &Properties{sources: make([]PropertySource, 0, len(sources))}
	for _, s := range sources {
		if s != nil {
			p.sources = append(p.sources, s)
		}
	}
	return p
}

// Sources returns the source names in priority order
func (p *Properties) Sources() []string {
	names := make([]string, len(p.sources))
	for i, s := range p.sources {
		names[i] = s.Name()
	}
	return names
}

// Has reports whether any source holds key.
func (p *Properties) Has(key string) bool {
	_, ok := p.Lookup(key)
	return ok
}

// Lookup returns the value from the highest priority source holding key.
func (p *Properties) Lookup(key string) (string, bool) {
	v, _, ok := p.lookupWithSource(key)
	return v, ok
}

// Explain lists every source holding key, highest priority first.
func (p *Properties) Explain(key string) []Sighting {
	var out []Sighting
	for _, s := range p.sources {
		if v, ok := s.Lookup(key); ok {
			out = append(out, Sighting{Source: s.Name(), Value: v})
		}
	}
	return out
}

func (p *Properties) lookupWithSource(key string) (string, string, bool) {
	if p == nil || key == "" {
		return "", "", false
	}
	for _, s := range p.sources {
		if v, ok := s.Lookup(key); ok {
			return v, s.Name(), true
		}
	}
	return "", "", false
}
