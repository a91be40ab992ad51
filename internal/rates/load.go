package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a rate table from a YAML or JSON file and validates it
func LoadFile(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file %s: %w", filename, err)
	}
	table, err := Parse(data, strings.EqualFold(filepath.Ext(filename), ".json"))
	if err != nil {
		return nil, fmt.Errorf("rate file %s: %w", filename, err)
	}
	return table, nil
}

// Parse decodes and validates a rate table
func Parse(data []byte, isJSON bool) (*domain.RateTable, error) {
	var table domain.RateTable
	if isJSON {
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Validate(&table); err != nil {
		return nil, err
	}
	return &table, nil
}

// Marshal encodes a rate table as YAML, the format LoadFile reads back
func Marshal(table *domain.RateTable) ([]byte, error) {
	return yaml.Marshal(table)
}

// Resolve returns the table at path, or the compiled-in default when path is empty
func Resolve(path string) (*domain.RateTable, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
