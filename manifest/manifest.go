// Package manifest describes a registration pass in a YAML or TOML file, for
// candidates that are known by name rather than by Go type: generated code,
// plugins, or planning a registration before the types exist.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/centraunit/digo"
)

// Format selects the manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Manifest is the file form of a registration pass.
type Manifest struct {
	DefaultLifetime   string            `yaml:"default_lifetime" toml:"default_lifetime"`
	ExcludeErrorTypes bool              `yaml:"exclude_error_types" toml:"exclude_error_types"`
	Include           []string          `yaml:"include" toml:"include"`
	Ignore            IgnoreConfig      `yaml:"ignore" toml:"ignore"`
	Candidates        []CandidateConfig `yaml:"candidates" toml:"candidates"`
}

// IgnoreConfig lists surfaces to ignore on top of the defaults.
type IgnoreConfig struct {
	Exact []string `yaml:"exact" toml:"exact"`
	Open  []string `yaml:"open" toml:"open"`
}

// CandidateConfig declares one implementation type.
type CandidateConfig struct {
	Type       string   `yaml:"type" toml:"type"`
	Implements []string `yaml:"implements" toml:"implements"`
	Lifetimes  []string `yaml:"lifetimes" toml:"lifetimes"`
	Exclude    bool     `yaml:"exclude" toml:"exclude"`
	Error      bool     `yaml:"error" toml:"error"`
}

// Load reads the manifest at path; the extension selects the format.
func Load(path string) (*Manifest, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a manifest.
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse manifest: unknown field %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks lifetimes, surfaces, type names and include patterns.
func (m *Manifest) Validate() error {
	if m.DefaultLifetime != "" {
		if _, err := digo.ParseLifetime(m.DefaultLifetime); err != nil {
			return fmt.Errorf("default_lifetime: %w", err)
		}
	}
	for _, pattern := range m.Include {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("include %q: %w", pattern, err)
		}
	}
	for _, s := range m.Ignore.Exact {
		if _, err := digo.ParseSurface(s); err != nil {
			return fmt.Errorf("ignore.exact: %w", err)
		}
	}
	for _, text := range m.Ignore.Open {
		s, err := digo.ParseSurface(text)
		if err != nil {
			return fmt.Errorf("ignore.open: %w", err)
		}
		if !s.IsOpen() {
			return fmt.Errorf("ignore.open: %q is not an open generic shape, write it as Name[_]", text)
		}
	}
	for i, c := range m.Candidates {
		if _, _, err := splitTypeName(c.Type); err != nil {
			return fmt.Errorf("candidates[%d]: %w", i, err)
		}
		for _, s := range c.Implements {
			if _, err := digo.ParseSurface(s); err != nil {
				return fmt.Errorf("candidates[%d] %s: %w", i, c.Type, err)
			}
		}
		for _, l := range c.Lifetimes {
			if _, err := digo.ParseLifetime(l); err != nil {
				return fmt.Errorf("candidates[%d] %s: %w", i, c.Type, err)
			}
		}
	}
	return nil
}

// Lifetime returns the default lifetime, Transient when unset.
func (m *Manifest) Lifetime() digo.Lifetime {
	l, err := digo.ParseLifetime(m.DefaultLifetime)
	if err != nil {
		return digo.Transient
	}
	return l
}

// BuildCandidates converts the candidate declarations, in file order.
func (m *Manifest) BuildCandidates() ([]digo.Candidate, error) {
	candidates := make([]digo.Candidate, 0, len(m.Candidates))
	for i, c := range m.Candidates {
		pkgPath, name, err := splitTypeName(c.Type)
		if err != nil {
			return nil, fmt.Errorf("candidates[%d]: %w", i, err)
		}
		var opts []digo.CandidateOption
		for _, text := range c.Implements {
			s, err := digo.ParseSurface(text)
			if err != nil {
				return nil, fmt.Errorf("candidates[%d] %s: %w", i, c.Type, err)
			}
			opts = append(opts, digo.WithSurfaces(s))
		}
		for _, text := range c.Lifetimes {
			l, err := digo.ParseLifetime(text)
			if err != nil {
				return nil, fmt.Errorf("candidates[%d] %s: %w", i, c.Type, err)
			}
			opts = append(opts, digo.WithLifetime(l))
		}
		if c.Exclude {
			opts = append(opts, digo.Excluded())
		}
		if c.Error {
			opts = append(opts, digo.ErrorShaped())
		}
		candidates = append(candidates, digo.NewCandidate(pkgPath, name, opts...))
	}
	return candidates, nil
}

// Apply adds the manifest's include filters and ignore rules to p.
// Include patterns are alternatives: a candidate is kept if any matches.
func (m *Manifest) Apply(p digo.Pipeline) (digo.Pipeline, error) {
	var err error
	if len(m.Include) > 0 {
		p, err = p.Filter(m.included)
		if err != nil {
			return p, err
		}
	}
	for _, text := range m.Ignore.Exact {
		s, err := digo.ParseSurface(text)
		if err != nil {
			return p, err
		}
		if p, err = p.IgnoreExact(s); err != nil {
			return p, err
		}
	}
	for _, text := range m.Ignore.Open {
		s, err := digo.ParseSurface(text)
		if err != nil {
			return p, err
		}
		if p, err = p.IgnoreOpenShape(s); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Plan runs the whole registration pass described by the manifest against
// registry, using the manifest's default lifetime unless lifetime is given.
func (m *Manifest) Plan(registry digo.Registry, lifetime digo.Lifetime, opts ...digo.Option) ([]digo.Binding, error) {
	candidates, err := m.BuildCandidates()
	if err != nil {
		return nil, err
	}
	if m.ExcludeErrorTypes {
		opts = append(opts, digo.WithErrorTypesExcluded())
	}
	p, err := digo.BeginRegistration(registry, candidates, opts...)
	if err != nil {
		return nil, err
	}
	if p, err = m.Apply(p); err != nil {
		return nil, err
	}
	if lifetime == "" {
		lifetime = m.Lifetime()
	}
	return p.Resolve(lifetime)
}

func (m *Manifest) included(c digo.Candidate) bool {
	for _, pattern := range m.Include {
		if ok, _ := path.Match(pattern, c.Name()); ok {
			return true
		}
	}
	return false
}

func splitTypeName(qualified string) (pkgPath, name string, err error) {
	qualified = strings.TrimSpace(qualified)
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		pkgPath, name = qualified[:i], qualified[i+1:]
	} else {
		name = qualified
	}
	if name == "" || strings.ContainsAny(name, "[]") {
		return "", "", fmt.Errorf("invalid type name %q", qualified)
	}
	return pkgPath, name, nil
}

func formatOf(file string) (Format, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported manifest extension %q", filepath.Ext(file))
}
