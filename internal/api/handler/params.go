package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healthsync/healthsync/pkg/problem"
)

// userIDParam parses the {userId} path parameter, writing a 400 on failure.
func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return uuidParam(w, r, "userId", "Invalid user ID format")
}

func uuidParam(w http.ResponseWriter, r *http.Request, name, detail string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		problem.BadRequest(detail).Write(w)
		return uuid.Nil, false
	}
	return id, true
}

// intParam parses an integer query parameter within [min, max]. Missing
// values yield def; malformed or out-of-range values write a 400.
func intParam(w http.ResponseWriter, r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		problem.BadRequest(name + " must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)).Write(w)
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
