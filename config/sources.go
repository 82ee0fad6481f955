package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/siteicon/source"
)

// Sentinel errors for the sources file.
var (
	// ErrInvalidSource is returned when a source entry is malformed.
	ErrInvalidSource = errors.New("config: invalid source")

	// ErrNoSources is returned when the file defines no sources.
	ErrNoSources = errors.New("config: sources file defines no sources")
)

// sourcesFile is the YAML shape of a cascade override.
type sourcesFile struct {
	Sources []sourceSpec `yaml:"sources"`
}

type sourceSpec struct {
	Name     string `yaml:"name"`
	Tier     string `yaml:"tier"`
	Template string `yaml:"template"`
	Timeout  string `yaml:"timeout"`
	DayBust  bool   `yaml:"day_bust"`
}

// Sources returns the cascade for this configuration: the YAML override
// when a file is configured, the built-in list otherwise.
func (c Config) Sources() ([]source.Source, error) {
	if c.SourcesFile == "" {
		return source.DefaultSources(), nil
	}
	return LoadSources(c.SourcesFile)
}

// LoadSources parses a cascade definition from a YAML file. Entries keep
// file order; that order is the resolution order.
func LoadSources(path string) ([]source.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]source.Source, 0, len(f.Sources))
	for i, spec := range f.Sources {
		s, err := spec.toSource()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s): %v", ErrInvalidSource, i, spec.Name, err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

func (s sourceSpec) toSource() (source.Source, error) {
	if s.Name == "" {
		return source.Source{}, errors.New("name is required")
	}
	if !strings.Contains(s.Template, "{domain}") {
		return source.Source{}, errors.New("template must contain {domain}")
	}

	tier := s.Tier
	if tier == "" {
		tier = source.TierSecondary
	}
	if tier != source.TierPrimary && tier != source.TierSecondary {
		return source.Source{}, fmt.Errorf("unknown tier %q", tier)
	}

	timeout := source.SecondaryTimeout
	if tier == source.TierPrimary {
		timeout = source.PrimaryTimeout
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil || d <= 0 {
			return source.Source{}, fmt.Errorf("bad timeout %q", s.Timeout)
		}
		timeout = d
	}

	return source.Source{
		Name:     s.Name,
		Tier:     tier,
		Template: s.Template,
		Timeout:  timeout,
		DayBust:  s.DayBust,
	}, nil
}
