package services

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"farm-tracker/internal/domain"
)

// LevelRange maps the half-open interval [Min, Max) to a level. A nil Max
// leaves the range unbounded above.
type LevelRange struct {
	Level domain.NutrientLevel `yaml:"level"`
	Min   float64              `yaml:"min"`
	Max   *float64             `yaml:"max,omitempty"`
}

func (r LevelRange) contains(v float64) bool {
	return v >= r.Min && (r.Max == nil || v < *r.Max)
}

// NutrientTable classifies one nutrient. Ranges are ordered by Min.
type NutrientTable []LevelRange

// Classify returns the level whose range holds v, or LevelUnknown when no
// range does (negative values, NaN).
func (t NutrientTable) Classify(v float64) domain.NutrientLevel {
	if math.IsNaN(v) {
		return domain.LevelUnknown
	}
	for _, r := range t {
		if r.contains(v) {
			return r.Level
		}
	}
	return domain.LevelUnknown
}

// Validate checks that the table starts at zero and covers every
// non-negative value exactly once.
func (t NutrientTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("table is empty")
	}
	if t[0].Min != 0 {
		return fmt.Errorf("first range starts at %g, expected 0", t[0].Min)
	}
	for i, r := range t {
		switch r.Level {
		case domain.LevelLow, domain.LevelMedium, domain.LevelHigh:
		default:
			return fmt.Errorf("range %d has unknown level %q", i, r.Level)
		}

		last := i == len(t)-1
		if r.Max == nil {
			if !last {
				return fmt.Errorf("range %d is unbounded but is not the last range", i)
			}
			continue
		}
		if *r.Max <= r.Min {
			return fmt.Errorf("range %d is empty: [%g, %g)", i, r.Min, *r.Max)
		}
		if last {
			return fmt.Errorf("last range must be unbounded, ends at %g", *r.Max)
		}
		if next := t[i+1].Min; next != *r.Max {
			if next < *r.Max {
				return fmt.Errorf("ranges %d and %d overlap at %g", i, i+1, next)
			}
			return fmt.Errorf("gap between %g and %g", *r.Max, next)
		}
	}
	return nil
}

// NutrientTables holds one table per classified nutrient.
type NutrientTables map[domain.Nutrient]NutrientTable

func bound(v float64) *float64 { return &v }

// DefaultNutrientTables returns the built-in classification:
// phosphorus ppm 15/30, potassium ppm 100/200, CEC meq/100g 10/20.
func DefaultNutrientTables() NutrientTables {
	return NutrientTables{
		domain.Phosphorus: {
			{Level: domain.LevelLow, Min: 0, Max: bound(15)},
			{Level: domain.LevelMedium, Min: 15, Max: bound(30)},
			{Level: domain.LevelHigh, Min: 30},
		},
		domain.Potassium: {
			{Level: domain.LevelLow, Min: 0, Max: bound(100)},
			{Level: domain.LevelMedium, Min: 100, Max: bound(200)},
			{Level: domain.LevelHigh, Min: 200},
		},
		domain.CEC: {
			{Level: domain.LevelLow, Min: 0, Max: bound(10)},
			{Level: domain.LevelMedium, Min: 10, Max: bound(20)},
			{Level: domain.LevelHigh, Min: 20},
		},
	}
}

// ParseNutrientTables reads YAML tables keyed by nutrient name. Nutrients
// missing from the document keep their default table.
//
//	phosphorus:
//	  - {level: Low, min: 0, max: 12}
//	  - {level: Medium, min: 12, max: 25}
//	  - {level: High, min: 25}
func ParseNutrientTables(data []byte) (NutrientTables, error) {
	var parsed map[domain.Nutrient]NutrientTable
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse nutrient tables: %w", err)
	}

	tables := DefaultNutrientTables()
	for nutrient, table := range parsed {
		if _, known := tables[nutrient]; !known {
			return nil, fmt.Errorf("unknown nutrient %q", nutrient)
		}
		sort.SliceStable(table, func(i, j int) bool { return table[i].Min < table[j].Min })
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s table: %w", nutrient, err)
		}
		tables[nutrient] = table
	}
	return tables, nil
}

// LoadNutrientTables reads tables from a YAML file.
func LoadNutrientTables(path string) (NutrientTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrient tables: %w", err)
	}
	return ParseNutrientTables(data)
}
