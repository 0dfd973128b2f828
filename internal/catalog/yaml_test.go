package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
}

func TestLoadDirMergesFiles(t *testing.T) {
	dir := t.TempDir()

	writeCatalogFile(t, dir, "brands.yaml", `
brands:
  - id: aquaprime
    name: AquaPrime
    premium_price: 1200
  - id: essentia
    name: Essentia
    premium_price: 0
`)
	writeCatalogFile(t, dir, "fixtures.yml", `
electrical:
  - id: water-heater
    name: Water Heater
    price: 3500
    description: 15L geyser
additional:
  - id: bathtub
    name: Bathtub
    price: 15000
`)

	entries, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}

	if len(entries.Brands) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(entries.Brands))
	}
	if len(entries.Electrical) != 1 || entries.Electrical[0].Description != "15L geyser" {
		t.Fatalf("unexpected electrical entries: %+v", entries.Electrical)
	}
	if len(entries.Additional) != 1 || entries.Additional[0].Price != 15000 {
		t.Fatalf("unexpected additional entries: %+v", entries.Additional)
	}
}

func TestLoadDirSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	writeCatalogFile(t, dir, "broken.yaml", "brands: [not a mapping")
	writeCatalogFile(t, dir, "missing-id.yaml", `
brands:
  - name: No Id Brand
    premium_price: 100
`)
	writeCatalogFile(t, dir, "good.yaml", `
brands:
  - id: lumiere
    name: Lumière
    premium_price: 3000
`)

	entries, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}

	if len(entries.Brands) != 1 || entries.Brands[0].ID != "lumiere" {
		t.Fatalf("expected only the valid brand, got %+v", entries.Brands)
	}
}

func TestLoadDirMissingDirectoryIsEmpty(t *testing.T) {
	entries, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}
	if len(entries.Brands)+len(entries.Electrical)+len(entries.Additional) != 0 {
		t.Fatalf("expected empty entries, got %+v", entries)
	}
}
