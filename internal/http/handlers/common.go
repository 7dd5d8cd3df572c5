package handlers

import (
	"net/http"

	"altura-admin/internal/http/middleware"
	"altura-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError writes {message, request_id[, error]} and logs server-side
// failures under the request id.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{"message": message, "request_id": reqID}
	if err != nil {
		payload["error"] = err.Error()
		if status >= http.StatusInternalServerError {
			utils.LogError(reqID, "http", c.FullPath(), err)
		}
	}
	c.JSON(status, payload)
}
