package handlers

import (
	"errors"
	"net/http"

	"restaurant_pos/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:  http.StatusBadRequest,
	apperrors.KindNotFound:    http.StatusNotFound,
	apperrors.KindAuth:        http.StatusUnauthorized,
	apperrors.KindConflict:    http.StatusConflict,
	apperrors.KindUnavailable: http.StatusUnprocessableEntity,
}

// respondError writes err as {"error": ..., "code": ..., "details": ...}.
// Internal failures are logged and reported without their cause.
func (h *APIHandler) respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		h.logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  string(apperrors.KindInternal),
		})
		return
	}

	var appErr *apperrors.Error
	errors.As(err, &appErr)
	body := gin.H{"error": appErr.Message, "code": string(kind)}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": string(apperrors.KindValidation)})
}
