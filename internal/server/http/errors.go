package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

const msgInternal = "Internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// abortWithError maps err to a status code and writes the error body.
// Unauthenticated responses carry a Bearer challenge; unknown errors are
// logged and hidden.
func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	var (
		code     int
		fallback string
	)

	switch {
	case errors.Is(err, common.ErrorValidation):
		code, fallback = http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorUnauthenticated):
		code, fallback = http.StatusUnauthorized, "Could not validate credentials"
		c.Header("WWW-Authenticate", common.BearerScheme)
	case errors.Is(err, common.ErrorForbidden):
		code, fallback = http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrorNotFound):
		code, fallback = http.StatusNotFound, "Not found"
	default:
		ctx := c.Request.Context()
		logging.FromContext(ctx, s.logger).Error(ctx, "internal error", "error", err.Error())
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: msgInternal})
		return
	}

	c.AbortWithStatusJSON(code, ErrorResponse{Detail: common.PublicMessage(err, fallback)})
}

func (s *HTTPServer) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Detail: msg})
}
