// Package catalog resolves the pricing context the estimator consumes:
// the rate config singleton plus the fixture and brand catalogs.
package catalog

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/renovata/washquote/internal/estimate"
)

// Load reads the current pricing context from the database. Only active
// catalog entries are included; a missing rate_config row is an error.
func Load(db *sql.DB) (estimate.PricingContext, error) {
	var pc estimate.PricingContext

	rates, err := loadRates(db)
	if err != nil {
		return pc, err
	}
	pc.Rates = rates

	if pc.Electrical, err = loadFixtures(db, "electrical"); err != nil {
		return pc, err
	}
	if pc.Additional, err = loadFixtures(db, "additional"); err != nil {
		return pc, err
	}
	if pc.Brands, err = loadBrands(db); err != nil {
		return pc, err
	}

	return pc, nil
}

// LoadOrDefaults resolves the pricing context once per wizard session. When
// the store cannot be read it falls back to the built-in snapshot and says
// so via UsingDefaults, rather than swallowing the failure.
func LoadOrDefaults(db *sql.DB) estimate.PricingContext {
	pc, err := Load(db)
	if err != nil {
		slog.Warn("falling back to built-in pricing defaults", "error", err)
		pc = Defaults()
		pc.UsingDefaults = true
	}
	return pc
}

func loadRates(db *sql.DB) (estimate.RateConfig, error) {
	var rc estimate.RateConfig
	err := db.QueryRow(`
		SELECT
			plumbing_rate_per_sqft,
			tile_cost_per_unit,
			tiling_labor_rate_per_sqft,
			tile_coverage_sqft,
			breakage_pct,
			plumbing_flat_fee_complete,
			plumbing_flat_fee_fixture_only,
			timeline_discount_pct,
			wall_height_ft
		FROM rate_config
		WHERE id = 1
	`).Scan(
		&rc.PlumbingRatePerSqft,
		&rc.TileCostPerUnit,
		&rc.TilingLaborRatePerSqft,
		&rc.TileCoverageSqft,
		&rc.BreakagePct,
		&rc.PlumbingFlatFeeComplete,
		&rc.PlumbingFlatFeeFixtureOnly,
		&rc.TimelineDiscountPct,
		&rc.WallHeightFt,
	)
	if err != nil {
		return rc, fmt.Errorf("query rate_config: %w", err)
	}
	return rc, nil
}

func loadFixtures(db *sql.DB, catalogName string) (map[string]estimate.FixtureEntry, error) {
	rows, err := db.Query(`
		SELECT id, name, price, COALESCE(description, '')
		FROM fixtures
		WHERE catalog = ? AND active
	`, catalogName)
	if err != nil {
		return nil, fmt.Errorf("query %s fixtures: %w", catalogName, err)
	}
	defer rows.Close()

	fixtures := make(map[string]estimate.FixtureEntry)
	for rows.Next() {
		var f estimate.FixtureEntry
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Description); err != nil {
			return nil, fmt.Errorf("scan %s fixture: %w", catalogName, err)
		}
		fixtures[f.ID] = f
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s fixtures: %w", catalogName, err)
	}

	return fixtures, nil
}

func loadBrands(db *sql.DB) (map[string]estimate.BrandEntry, error) {
	rows, err := db.Query(`
		SELECT id, name, premium_price
		FROM brands
		WHERE active
	`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	brands := make(map[string]estimate.BrandEntry)
	for rows.Next() {
		var b estimate.BrandEntry
		if err := rows.Scan(&b.ID, &b.Name, &b.PremiumPrice); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands[b.ID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}

	return brands, nil
}
