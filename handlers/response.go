package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"habitTrackerAPI/internal/apperror"
)

const maxBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithAppError writes err with the status it carries. Errors without
// a status are reported as a bare 500.
func respondWithAppError(w http.ResponseWriter, err error) {
	respondWithError(w, apperror.StatusOf(err), apperror.PublicMessage(err))
}

// decodeJSONBody reads a JSON object into dst. An empty body leaves dst
// untouched.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.New(http.StatusRequestEntityTooLarge, apperror.CodeBadRequest, "Request body too large")
		}
		return apperror.BadRequest("Invalid JSON body")
	}
	return unmarshalBody(raw, dst)
}

// unmarshalBody decodes a buffered body. A field of the wrong JSON type is a
// validation failure; anything else unparseable is a bad request.
func unmarshalBody(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.Validation(fmt.Sprintf("%s has the wrong type", typeErr.Field))
		}
		return apperror.BadRequest("Invalid JSON body")
	}
	return nil
}

// MethodNotAllowed answers routes that exist under another method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, apperror.MethodNotAllowed(r.Method).Message)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Not found")
}
