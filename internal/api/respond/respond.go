package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vitrine-media/vitrine/internal/model"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// ListingResponse is the uniform listing payload. Success and failure
// are structurally identical so callers never need a separate error
// branch for rendering, only for messaging.
type ListingResponse struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	List        []model.Item `json:"list"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Total       int          `json:"total"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteListing writes a successful uniform listing response.
func WriteListing(w http.ResponseWriter, resp model.ListingResponse) {
	list := resp.Items
	if list == nil {
		list = []model.Item{}
	}
	WriteJSON(w, http.StatusOK, ListingResponse{
		Success:     true,
		List:        list,
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
		Total:       resp.Total,
	})
}

// WriteListingError writes the failure shape of the uniform listing
// response. The HTTP status stays 200; the shape is the contract.
func WriteListingError(w http.ResponseWriter, currentPage int, message string) {
	WriteJSON(w, http.StatusOK, ListingResponse{
		Error:       message,
		List:        []model.Item{},
		TotalPages:  0,
		CurrentPage: currentPage,
		Total:       0,
	})
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
