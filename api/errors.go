package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyfare/ticketapi/internal/domain"
)

const (
	codeValidationFailed    = "validation_failed"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidDate         = "invalid_date"
	codeMissingSearchFilter = "missing_search_filter"
	codeUnauthorized        = "unauthorized"
	codeNotFound            = "not_found"
	codeDuplicateTicket     = "duplicate_ticket"
	codeRateLimitExceeded   = "rate_limit_exceeded"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorResponse{Error: msg, Code: code})
}

// respondError translates domain errors into the JSON error envelope.
// Unclassified errors are logged with full detail and surfaced only as
// a generic message.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(c, http.StatusBadRequest, codeValidationFailed, vErr.Error())
	case errors.Is(err, domain.ErrNoSearchFilter):
		writeError(c, http.StatusBadRequest, codeMissingSearchFilter, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateTicket):
		writeError(c, http.StatusConflict, codeDuplicateTicket, err.Error())
	default:
		logger.Printf("ERROR request_id=%s %v", RequestIDFromContext(c), err)
		writeError(c, http.StatusInternalServerError, codeInternalError, "internal server error")
	}
}
