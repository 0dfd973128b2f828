package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/renovata/washquote/internal/estimate"
)

type apiError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, apiError{Code: code, Error: message})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondEstimateError maps the estimator's error taxonomy onto API codes.
// All three are client-resolvable, hence 422 rather than 500.
func respondEstimateError(w http.ResponseWriter, err error) {
	code := "internal"
	switch {
	case errors.Is(err, estimate.ErrInvalidGeometry):
		code = "invalid_geometry"
	case errors.Is(err, estimate.ErrMissingSelection):
		code = "missing_selection"
	case errors.Is(err, estimate.ErrConfiguration):
		code = "configuration"
	default:
		respondError(w, http.StatusInternalServerError, code, err.Error())
		return
	}
	respondError(w, http.StatusUnprocessableEntity, code, err.Error())
}
