package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/renovata/washquote/internal/estimate"
)

func (s *server) handleRatesGet(w http.ResponseWriter, r *http.Request) {
	var rc estimate.RateConfig
	err := s.db.QueryRow(`
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
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "not_found", "rate config not seeded")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "failed to load rate config")
		return
	}

	respondJSON(w, http.StatusOK, rc)
}

func (s *server) handleRatesUpdate(w http.ResponseWriter, r *http.Request) {
	var rc estimate.RateConfig
	if err := decodeJSON(r, &rc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid rate config payload")
		return
	}
	if err := rc.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "configuration", err.Error())
		return
	}

	_, err := s.db.Exec(`
		UPDATE rate_config
		SET
			plumbing_rate_per_sqft = ?,
			tile_cost_per_unit = ?,
			tiling_labor_rate_per_sqft = ?,
			tile_coverage_sqft = ?,
			breakage_pct = ?,
			plumbing_flat_fee_complete = ?,
			plumbing_flat_fee_fixture_only = ?,
			timeline_discount_pct = ?,
			wall_height_ft = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		rc.PlumbingRatePerSqft,
		rc.TileCostPerUnit,
		rc.TilingLaborRatePerSqft,
		rc.TileCoverageSqft,
		rc.BreakagePct,
		rc.PlumbingFlatFeeComplete,
		rc.PlumbingFlatFeeFixtureOnly,
		rc.TimelineDiscountPct,
		rc.WallHeightFt,
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to save rate config")
		return
	}

	respondJSON(w, http.StatusOK, rc)
}

type brandPayload struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PremiumPrice float64 `json:"premium_price"`
	Active       bool    `json:"active"`
}

func (s *server) handleBrandsList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, name, premium_price, active
		FROM brands
		ORDER BY id
	`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load brands")
		return
	}
	defer rows.Close()

	brands := make([]brandPayload, 0)
	for rows.Next() {
		var b brandPayload
		if err := rows.Scan(&b.ID, &b.Name, &b.PremiumPrice, &b.Active); err != nil {
			respondError(w, http.StatusInternalServerError, "internal", "failed to load brands")
			return
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load brands")
		return
	}

	respondJSON(w, http.StatusOK, brands)
}

func (s *server) handleBrandCreate(w http.ResponseWriter, r *http.Request) {
	var b brandPayload
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid brand payload")
		return
	}
	if err := validateBrand(b); err != nil {
		respondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	_, err := s.db.Exec(`
		INSERT INTO brands (id, name, premium_price, active)
		VALUES (?, ?, ?, TRUE)
	`, b.ID, b.Name, b.PremiumPrice)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "conflict", "brand id already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "failed to create brand")
		return
	}

	b.Active = true
	respondJSON(w, http.StatusCreated, b)
}

func (s *server) handleBrandUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var b brandPayload
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid brand payload")
		return
	}
	b.ID = id
	if err := validateBrand(b); err != nil {
		respondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	result, err := s.db.Exec(`
		UPDATE brands
		SET name = ?, premium_price = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, b.Name, b.PremiumPrice, b.Active, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to update brand")
		return
	}
	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		respondError(w, http.StatusNotFound, "not_found", "brand not found")
		return
	}

	respondJSON(w, http.StatusOK, b)
}

// handleBrandDelete deactivates a brand instead of removing the row:
// existing submissions may still reference it, and stale wizard selections
// degrade to a zero premium rather than an error.
func (s *server) handleBrandDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := s.db.Exec(`
		UPDATE brands
		SET active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to deactivate brand")
		return
	}
	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		respondError(w, http.StatusNotFound, "not_found", "brand not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type fixturePayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
}

func (s *server) handleFixturesList(w http.ResponseWriter, r *http.Request) {
	catalogName, ok := fixtureCatalogParam(w, r)
	if !ok {
		return
	}

	rows, err := s.db.Query(`
		SELECT id, name, price, COALESCE(description, ''), active
		FROM fixtures
		WHERE catalog = ?
		ORDER BY id
	`, catalogName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load fixtures")
		return
	}
	defer rows.Close()

	fixtures := make([]fixturePayload, 0)
	for rows.Next() {
		var f fixturePayload
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Description, &f.Active); err != nil {
			respondError(w, http.StatusInternalServerError, "internal", "failed to load fixtures")
			return
		}
		fixtures = append(fixtures, f)
	}
	if err := rows.Err(); err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load fixtures")
		return
	}

	respondJSON(w, http.StatusOK, fixtures)
}

func (s *server) handleFixtureCreate(w http.ResponseWriter, r *http.Request) {
	catalogName, ok := fixtureCatalogParam(w, r)
	if !ok {
		return
	}

	var f fixturePayload
	if err := decodeJSON(r, &f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid fixture payload")
		return
	}
	if err := validateFixture(f); err != nil {
		respondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	_, err := s.db.Exec(`
		INSERT INTO fixtures (catalog, id, name, price, description, active)
		VALUES (?, ?, ?, ?, ?, TRUE)
	`, catalogName, f.ID, f.Name, f.Price, f.Description)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "conflict", "fixture id already exists in this catalog")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "failed to create fixture")
		return
	}

	f.Active = true
	respondJSON(w, http.StatusCreated, f)
}

func (s *server) handleFixtureUpdate(w http.ResponseWriter, r *http.Request) {
	catalogName, ok := fixtureCatalogParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var f fixturePayload
	if err := decodeJSON(r, &f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid fixture payload")
		return
	}
	f.ID = id
	if err := validateFixture(f); err != nil {
		respondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	result, err := s.db.Exec(`
		UPDATE fixtures
		SET name = ?, price = ?, description = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE catalog = ? AND id = ?
	`, f.Name, f.Price, f.Description, f.Active, catalogName, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to update fixture")
		return
	}
	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		respondError(w, http.StatusNotFound, "not_found", "fixture not found")
		return
	}

	respondJSON(w, http.StatusOK, f)
}

func (s *server) handleFixtureDelete(w http.ResponseWriter, r *http.Request) {
	catalogName, ok := fixtureCatalogParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	result, err := s.db.Exec(`
		UPDATE fixtures
		SET active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE catalog = ? AND id = ?
	`, catalogName, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to deactivate fixture")
		return
	}
	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		respondError(w, http.StatusNotFound, "not_found", "fixture not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func fixtureCatalogParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	catalogName := chi.URLParam(r, "catalog")
	if catalogName != "electrical" && catalogName != "additional" {
		respondError(w, http.StatusNotFound, "not_found", "unknown fixture catalog")
		return "", false
	}
	return catalogName, true
}

func validateBrand(b brandPayload) error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("name is required")
	}
	if b.PremiumPrice < 0 {
		return errors.New("premium_price must not be negative")
	}
	return nil
}

func validateFixture(f fixturePayload) error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name is required")
	}
	if f.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
