package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func (s *Server) banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Tresidus AI Backend API",
		"version":   viper.GetString("server.version"),
		"status":    "running",
		"timestamp": timestamp(time.Now()),
		"endpoints": gin.H{
			"health":     "/health",
			"projects":   "/api/projects",
			"analytics":  "/api/analytics",
			"consulting": "/api/consulting",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	// Ping db
	err := s.service.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"uptime":    time.Since(s.startedAt).Seconds(),
		"timestamp": timestamp(time.Now()),
	})
}

func (s *Server) projects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Projects endpoint",
		"data":    []interface{}{},
	})
}

func (s *Server) analytics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Analytics endpoint",
		"data": gin.H{
			"totalProjects":      9,
			"activeClients":      12,
			"modelsInProduction": 8,
		},
	})
}
