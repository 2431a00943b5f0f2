package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/storage"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps storage and validation errors onto HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case isConflictError(err):
		respondError(w, http.StatusConflict, "already exists")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidDate, core.ErrInvalidAmount, core.ErrInvalidClosingDay,
		core.ErrInvalidDueDay, core.ErrNegativeCreditLimit, core.ErrNegativePercentage,
		core.ErrNegativeCap, core.ErrEmptyCardName, core.ErrEmptyBankName,
		core.ErrInvalidLast4, core.ErrEmptyCategoryName, core.ErrMissingCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// SQLite surfaces UNIQUE violations as plain errors, so match on message.
func isConflictError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// decodeJSON parses a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseYear extracts the year query parameter, defaulting to the current year.
func parseYear(r *http.Request) int {
	year := time.Now().Year()
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	return year
}

// parseOptionalMoney parses an optional decimal string into cents. Empty
// means absent.
func parseOptionalMoney(s string) (*core.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	cents, err := core.ParseSignedDecimalToCents(s)
	if err != nil {
		return nil, err
	}
	return &core.Money{Cents: cents}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
