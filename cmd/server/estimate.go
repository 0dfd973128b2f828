package main

import (
	"net/http"

	"github.com/renovata/washquote/internal/catalog"
	"github.com/renovata/washquote/internal/estimate"
)

// handlePricingContext hands the wizard everything it needs for one
// session: rates plus both fixture catalogs and the brand list. On store
// failure the built-in defaults are served with using_defaults set, so the
// client can still quote and show a notice.
func (s *server) handlePricingContext(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalog.LoadOrDefaults(s.db))
}

type estimateResponse struct {
	Breakdown     estimate.Breakdown `json:"breakdown"`
	UsingDefaults bool               `json:"using_defaults"`
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var sel estimate.SelectionSet
	if err := decodeJSON(r, &sel); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid selection payload")
		return
	}

	pc := catalog.LoadOrDefaults(s.db)
	breakdown, err := estimate.Calculate(sel, pc)
	if err != nil {
		respondEstimateError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimateResponse{
		Breakdown:     breakdown,
		UsingDefaults: pc.UsingDefaults,
	})
}
