package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetRevenueMetrics(c *gin.Context) {
	m, err := s.analyticsSvc.RevenueMetrics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": m})
}
