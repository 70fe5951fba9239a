package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// auth requires "Authorization: Bearer <auth.token>" when auth.token is set.
// With no token configured the API is open.
func (s *Server) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		if tok == "" {
			c.Next()
			return
		}
		got := c.GetHeader("Authorization")
		if !strings.HasPrefix(got, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		bearer := strings.TrimSpace(strings.TrimPrefix(got, "Bearer "))
		if subtle.ConstantTimeCompare([]byte(bearer), []byte(tok)) != 1 {
			s.log.Warn("http: bad api token", "id", c.GetString(requestIDKey))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
