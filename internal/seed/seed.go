package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/renovata/washquote/internal/catalog"
	"github.com/renovata/washquote/internal/estimate"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string

	// CatalogDir optionally points at YAML catalog files whose brands and
	// fixtures are seeded alongside the built-in defaults.
	CatalogDir string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the admin user, the
// rate_config singleton, and the default brand/fixture catalogs. Existing
// rows are never overwritten, so admin edits survive restarts.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	defaults := catalog.Defaults()

	extra, err := catalog.LoadDir(cfg.CatalogDir)
	if err != nil {
		return Stats{}, fmt.Errorf("load catalog dir: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRateConfig(tx, defaults.Rates, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	brands := append(mapBrands(defaults.Brands), extra.Brands...)
	if err := ensureBrands(tx, brands, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	electrical := append(mapFixtures(defaults.Electrical), extra.Electrical...)
	if err := ensureFixtures(tx, "electrical", electrical, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	additional := append(mapFixtures(defaults.Additional), extra.Additional...)
	if err := ensureFixtures(tx, "additional", additional, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// hashPassword must stay in sync with the scheme the server's auth layer
// verifies against.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func ensureRateConfig(tx *sql.Tx, rates estimate.RateConfig, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM rate_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate config existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO rate_config (
			id,
			plumbing_rate_per_sqft,
			tile_cost_per_unit,
			tiling_labor_rate_per_sqft,
			tile_coverage_sqft,
			breakage_pct,
			plumbing_flat_fee_complete,
			plumbing_flat_fee_fixture_only,
			timeline_discount_pct,
			wall_height_ft
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rates.PlumbingRatePerSqft,
		rates.TileCostPerUnit,
		rates.TilingLaborRatePerSqft,
		rates.TileCoverageSqft,
		rates.BreakagePct,
		rates.PlumbingFlatFeeComplete,
		rates.PlumbingFlatFeeFixtureOnly,
		rates.TimelineDiscountPct,
		rates.WallHeightFt,
	); err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureBrands(tx *sql.Tx, brands []estimate.BrandEntry, stats *Stats) error {
	for _, b := range brands {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM brands WHERE id = ? LIMIT 1)`, b.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check brand %q existence: %w", b.ID, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO brands (id, name, premium_price, active)
			VALUES (?, ?, ?, TRUE)
		`, b.ID, b.Name, b.PremiumPrice); err != nil {
			return fmt.Errorf("insert brand %q: %w", b.ID, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureFixtures(tx *sql.Tx, catalogName string, fixtures []estimate.FixtureEntry, stats *Stats) error {
	for _, f := range fixtures {
		var exists bool
		if err := tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM fixtures WHERE catalog = ? AND id = ? LIMIT 1)
		`, catalogName, f.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check %s fixture %q existence: %w", catalogName, f.ID, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO fixtures (catalog, id, name, price, description, active)
			VALUES (?, ?, ?, ?, ?, TRUE)
		`, catalogName, f.ID, f.Name, f.Price, f.Description); err != nil {
			return fmt.Errorf("insert %s fixture %q: %w", catalogName, f.ID, err)
		}
		stats.Inserts++
	}
	return nil
}

// mapBrands and mapFixtures flatten the default maps into id-sorted slices
// so rows are inserted in a stable order.
func mapBrands(m map[string]estimate.BrandEntry) []estimate.BrandEntry {
	out := make([]estimate.BrandEntry, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func mapFixtures(m map[string]estimate.FixtureEntry) []estimate.FixtureEntry {
	out := make([]estimate.FixtureEntry, 0, len(m))
	for _, f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
