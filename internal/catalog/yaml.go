package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/renovata/washquote/internal/estimate"
)

// Entries holds catalog rows parsed from YAML files, ready for seeding.
type Entries struct {
	Brands     []estimate.BrandEntry
	Electrical []estimate.FixtureEntry
	Additional []estimate.FixtureEntry
}

// catalogFile is the YAML structure of one catalog file.
type catalogFile struct {
	Brands []struct {
		ID           string  `yaml:"id"`
		Name         string  `yaml:"name"`
		PremiumPrice float64 `yaml:"premium_price"`
	} `yaml:"brands"`
	Electrical []yamlFixture `yaml:"electrical"`
	Additional []yamlFixture `yaml:"additional"`
}

type yamlFixture struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
}

// LoadDir parses every *.yaml/*.yml file in dir and merges their entries.
// Malformed files are skipped with a warning so one bad file cannot block
// startup. A missing dir yields empty entries.
func LoadDir(dir string) (Entries, error) {
	var entries Entries

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return entries, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	for _, file := range files {
		parsed, err := loadFile(file)
		if err != nil {
			slog.Warn("skipping catalog file", "file", file, "error", err)
			continue
		}
		entries.Brands = append(entries.Brands, parsed.Brands...)
		entries.Electrical = append(entries.Electrical, parsed.Electrical...)
		entries.Additional = append(entries.Additional, parsed.Additional...)
	}

	return entries, nil
}

func loadFile(path string) (Entries, error) {
	var entries Entries

	data, err := os.ReadFile(path)
	if err != nil {
		return entries, fmt.Errorf("read catalog file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return entries, fmt.Errorf("parse catalog YAML: %w", err)
	}

	for _, b := range cf.Brands {
		if b.ID == "" || b.Name == "" {
			return entries, fmt.Errorf("brand entry requires id and name")
		}
		entries.Brands = append(entries.Brands, estimate.BrandEntry{
			ID:           b.ID,
			Name:         b.Name,
			PremiumPrice: b.PremiumPrice,
		})
	}

	var convertErr error
	convert := func(raw []yamlFixture) []estimate.FixtureEntry {
		fixtures := make([]estimate.FixtureEntry, 0, len(raw))
		for _, f := range raw {
			if f.ID == "" || f.Name == "" {
				convertErr = fmt.Errorf("fixture entry requires id and name")
				return nil
			}
			fixtures = append(fixtures, estimate.FixtureEntry{
				ID:          f.ID,
				Name:        f.Name,
				Price:       f.Price,
				Description: f.Description,
			})
		}
		return fixtures
	}

	entries.Electrical = convert(cf.Electrical)
	entries.Additional = convert(cf.Additional)
	if convertErr != nil {
		return Entries{}, convertErr
	}

	return entries, nil
}
