package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Target is one (segment, location) pair the discovery pipeline searches.
type Target struct {
	Keyword  string `yaml:"keyword"`
	Location string `yaml:"location"`
}

// Validate checks a single discovery target.
func (t Target) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Keyword, validation.Required),
		validation.Field(&t.Location, validation.Required),
	)
}

// Targets is the operator-maintained discovery plan. Each pipeline run works
// through every target and picks one random month/country pair for event
// discovery.
type Targets struct {
	Targets   []Target `yaml:"targets"`
	Months    []string `yaml:"months"`
	Countries []string `yaml:"countries"`
}

// Validate checks the discovery plan as a whole.
func (t Targets) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Targets, validation.Required, validation.Length(1, 0)),
		validation.Field(&t.Months, validation.Length(0, 12)),
	)
}

// LoadTargets reads and validates the discovery plan from a YAML file.
func LoadTargets(path string) (*Targets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read targets file: %w", err)
	}

	var targets Targets
	if err := yaml.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("config: failed to parse targets file: %w", err)
	}
	if err := targets.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid targets file: %w", err)
	}
	for i, target := range targets.Targets {
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("config: invalid target %d: %w", i, err)
		}
	}
	return &targets, nil
}

// DefaultTargets is the built-in discovery plan used when no targets file
// exists. It covers the core equine software segments.
func DefaultTargets() *Targets {
	return &Targets{
		Targets: []Target{
			{Keyword: "equestrian center", Location: "Wellington, Florida"},
			{Keyword: "horse breeding farm", Location: "Lexington, Kentucky"},
			{Keyword: "equine veterinary clinic", Location: "Ocala, Florida"},
		},
		Months: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		Countries: []string{
			"United States", "United Kingdom", "Germany", "Netherlands", "Ireland",
		},
	}
}
