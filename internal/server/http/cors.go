package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetAllowedOrigins turns on CORS for the given browser origins. "*" allows
// any origin; the request origin is echoed back so credentials still work.
// With no call at all, no CORS headers are sent.
func (s *HTTPServer) SetAllowedOrigins(origins []string) {
	s.allowedOrigins = origins
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAny := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAny = true
		}
		allowed[o] = true
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAny || allowed[origin]
		},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName, requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
