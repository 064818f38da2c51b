package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSONStatus(w, r, status, errorResponse{Message: msg})
}

// writeStoreError maps a store error onto an HTTP status. what names the
// missing resource in 404 bodies; fallback is the 500 message.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, what, fallback string) {
	switch {
	case model.IsValidation(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, r, http.StatusNotFound, what+" not found")
	case errors.Is(err, model.ErrRitualCompleted):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		slog.Error(fallback, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a size-limited JSON body into dst. An empty body is
// reported as io.EOF so callers with optional bodies can accept it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("decoding request body: %w", err)
	}
	if dec.More() {
		return errors.New("decoding request body: trailing data")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}
