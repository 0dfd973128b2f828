package main

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/renovata/washquote/internal/catalog"
	"github.com/renovata/washquote/internal/estimate"
)

// Submission status lifecycle. A submission is created as "new"; status is
// the only field ever mutated afterwards, by admin actions.
var validStatuses = map[string]bool{
	"new":            true,
	"contacted":      true,
	"qualified":      true,
	"not-interested": true,
}

type submissionResponse struct {
	ID             string             `json:"id"`
	EstimateAmount float64            `json:"estimate_amount"`
	Breakdown      estimate.Breakdown `json:"breakdown"`
	UsingDefaults  bool               `json:"using_defaults"`
}

// handleSubmissionCreate persists one completed wizard run. The estimate is
// recomputed server-side against the current pricing context; the client's
// own preview numbers are never trusted or stored.
func (s *server) handleSubmissionCreate(w http.ResponseWriter, r *http.Request) {
	var sel estimate.SelectionSet
	if err := decodeJSON(r, &sel); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid submission payload")
		return
	}

	if strings.TrimSpace(sel.Customer.Name) == "" || strings.TrimSpace(sel.Customer.Email) == "" {
		respondError(w, http.StatusBadRequest, "missing_customer", "customer name and email are required")
		return
	}

	pc := catalog.LoadOrDefaults(s.db)
	breakdown, err := estimate.Calculate(sel, pc)
	if err != nil {
		respondEstimateError(w, err)
		return
	}

	formData, err := json.Marshal(sel)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to encode selections")
		return
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to encode breakdown")
		return
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO submissions (
			id, customer_name, customer_email, customer_phone, customer_location,
			estimate_amount, form_data_json, breakdown_json, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'new')
	`,
		id,
		strings.TrimSpace(sel.Customer.Name),
		strings.TrimSpace(sel.Customer.Email),
		strings.TrimSpace(sel.Customer.Phone),
		strings.TrimSpace(sel.Customer.Location),
		breakdown.Total,
		string(formData),
		string(breakdownJSON),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to save submission")
		return
	}

	respondJSON(w, http.StatusCreated, submissionResponse{
		ID:             id,
		EstimateAmount: breakdown.Total,
		Breakdown:      breakdown,
		UsingDefaults:  pc.UsingDefaults,
	})
}

type submissionListItem struct {
	ID               string  `json:"id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	CustomerLocation string  `json:"customer_location"`
	EstimateAmount   float64 `json:"estimate_amount"`
	Status           string  `json:"status"`
	SubmittedAt      string  `json:"submitted_at"`
}

func (s *server) handleSubmissionsList(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !validStatuses[status] {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown status filter")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.listSubmissions(status, query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load submissions")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (s *server) listSubmissions(status, query string) ([]submissionListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			id,
			customer_name,
			customer_email,
			COALESCE(customer_phone, ''),
			COALESCE(customer_location, ''),
			estimate_amount,
			status,
			submitted_at
		FROM submissions
		WHERE (? = '' OR status = ?)
		  AND (? = '' OR customer_name LIKE ? OR customer_email LIKE ? OR COALESCE(customer_location, '') LIKE ?)
		ORDER BY datetime(submitted_at) DESC, id DESC
	`, status, status, query, search, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]submissionListItem, 0)
	for rows.Next() {
		var item submissionListItem
		if err := rows.Scan(
			&item.ID,
			&item.CustomerName,
			&item.CustomerEmail,
			&item.CustomerPhone,
			&item.CustomerLocation,
			&item.EstimateAmount,
			&item.Status,
			&item.SubmittedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (s *server) handleSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid status payload")
		return
	}
	if !validStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown submission status")
		return
	}

	result, err := s.db.Exec(`
		UPDATE submissions
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, req.Status, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to update submission")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to update submission")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "not_found", "submission not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSubmissionsExport streams the lead list as CSV for the back office.
func (s *server) handleSubmissionsExport(w http.ResponseWriter, r *http.Request) {
	items, err := s.listSubmissions("", "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load submissions")
		return
	}

	filename := "submissions-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "email", "phone", "location", "estimate_amount", "status", "submitted_at"})
	for _, item := range items {
		_ = cw.Write([]string{
			item.ID,
			item.CustomerName,
			item.CustomerEmail,
			item.CustomerPhone,
			item.CustomerLocation,
			strconv.FormatFloat(item.EstimateAmount, 'f', 2, 64),
			item.Status,
			item.SubmittedAt,
		})
	}
	cw.Flush()
}
