package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// Scenario is one named property in an input file
type Scenario struct {
	Name     string        `yaml:"name" json:"name"`
	Property RawDescriptor `yaml:"property" json:"property"`
}

// InputFile is the on-disk format read by LoadFromFile
type InputFile struct {
	RatesFile string     `yaml:"rates_file,omitempty" json:"ratesFile,omitempty"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// NamedDescriptor is a parsed scenario
type NamedDescriptor struct {
	Name       string
	Descriptor domain.PropertyDescriptor
}

// Configuration is a validated input file
type Configuration struct {
	RatesFile string
	Scenarios []NamedDescriptor
}

// Find returns the scenario with the given name
func (c *Configuration) Find(name string) (NamedDescriptor, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return NamedDescriptor{}, false
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML or JSON file. A relative rates_file is
// resolved against the input file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input InputFile
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := ip.ValidateConfiguration(&input)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if config.RatesFile != "" && !filepath.IsAbs(config.RatesFile) {
		config.RatesFile = filepath.Join(filepath.Dir(filename), config.RatesFile)
	}
	return config, nil
}

// ValidateConfiguration parses every scenario and checks names are unique
func (ip *InputParser) ValidateConfiguration(input *InputFile) (*Configuration, error) {
	if len(input.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	config := &Configuration{RatesFile: input.RatesFile}
	seen := make(map[string]bool, len(input.Scenarios))
	for i, s := range input.Scenarios {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("scenario %d (%s): duplicate name", i, name)
		}
		seen[name] = true

		d, err := ParseDescriptor(s.Property)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, name, err)
		}
		config.Scenarios = append(config.Scenarios, NamedDescriptor{Name: name, Descriptor: d})
	}
	return config, nil
}
