package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsAllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Api-Token", requestIDHeader}
)

// apikeyAuthentication rejects requests without the admin key in the
// Api-Token header
func (s *Server) apikeyAuthentication(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiToken := c.GetHeader("Api-Token")
		if apiToken == "" || apiToken != key {
			abortWithEncoding(c, http.StatusForbidden, errorInvalidToken)
			return
		}
		c.Next()
	}
}

// preflight answers every CORS preflight request with an empty 200
func preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", strings.Join(corsAllowMethods, ","))
		c.Header("Access-Control-Allow-Headers", strings.Join(corsAllowHeaders, ","))
		c.AbortWithStatus(http.StatusOK)
	}
}
