package handlers

import (
	"net/http"

	"altura-admin/internal/domain"
	"altura-admin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads for JSON handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// classify maps a domain error to an HTTP status and error code.
func classify(err error) (int, string) {
	if _, ok := domain.AsUpstream(err); ok {
		return http.StatusBadGateway, "upstream_error"
	}
	switch {
	case domain.IsUnauthenticated(err):
		return http.StatusUnauthorized, "unauthenticated"
	case domain.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case domain.IsEmptyPayload(err):
		return http.StatusBadRequest, "empty"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	status, code := classify(err)
	switch code {
	case "upstream_error":
		up, _ := domain.AsUpstream(err)
		details := gin.H{"op": up.Op}
		if up.Status != 0 {
			details["upstream_status"] = up.Status
		}
		respondError(c, status, code, "gagal menghubungi API booking", details)
	case "internal_error":
		respondError(c, status, code, "terjadi kesalahan", nil)
	default:
		respondError(c, status, code, err.Error(), nil)
	}
}
