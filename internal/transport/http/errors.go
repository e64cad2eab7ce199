package http

import (
	"encoding/json"
	"net/http"

	"github.com/arrieta/campus-tickets/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidDate        = "invalid_date"
	codeInvalidID          = "invalid_id"
	codeTitleRequired      = "title_required"
	codeDateRequired       = "date_required"
	codeLocationRequired   = "location_required"
	codeTierNameRequired   = "tier_name_required"
	codeDuplicateTierName  = "duplicate_tier_name"
	codeInvalidCapacity    = "invalid_capacity"
	codeInvalidPrice       = "invalid_price"
	codeUserRequired       = "user_required"
	codeEventNotFound      = "event_not_found"
	codeTierNotFound       = "tier_not_found"
	codeSoldOut            = "sold_out"
	codeUnavailable        = "unavailable"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto the HTTP error envelope.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrTierNotFound:
		writeError(w, http.StatusNotFound, codeTierNotFound, err.Error())
	case domain.ErrSoldOut:
		writeError(w, http.StatusConflict, codeSoldOut, err.Error())
	case domain.ErrUnavailable:
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case domain.ErrDateRequired:
		writeError(w, http.StatusBadRequest, codeDateRequired, err.Error())
	case domain.ErrLocationRequired:
		writeError(w, http.StatusBadRequest, codeLocationRequired, err.Error())
	case domain.ErrTierNameRequired:
		writeError(w, http.StatusBadRequest, codeTierNameRequired, err.Error())
	case domain.ErrDuplicateTierName:
		writeError(w, http.StatusBadRequest, codeDuplicateTierName, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrInvalidPrice:
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case domain.ErrUserRequired:
		writeError(w, http.StatusBadRequest, codeUserRequired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
