package eligibility

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a table file.
type File struct {
	Categories  []Category   `yaml:"categories"`
	SalaryTiers []SalaryTier `yaml:"salary_tiers"`
	BonusTiers  []BonusTier  `yaml:"bonus_tiers"`
	AFK         AFKRule      `yaml:"afk"`
}

// Parse decodes and validates YAML table data.
func Parse(data []byte) (*Tables, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode eligibility tables: %w", err)
	}
	t, err := NewTables(f.Categories, f.SalaryTiers, f.BonusTiers, f.AFK)
	if err != nil {
		return nil, fmt.Errorf("invalid eligibility tables: %w", err)
	}
	return t, nil
}

// LoadFile reads tables from path. An empty path yields the built-in tables.
func LoadFile(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read eligibility tables: %w", err)
	}
	return Parse(data)
}
