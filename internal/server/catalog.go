package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
)

// FilterOptions returns the colleges and branches a visitor can pick from.
func (s *Server) FilterOptions(c *gin.Context) {
	catalog := s.catalogCfg.Get()
	c.JSON(http.StatusOK, gin.H{
		"colleges": catalog.Colleges,
		"branches": catalog.Branches,
	})
}

// ListVideos resolves a college/branch selection to its lecture list.
// Accepts both form posts and JSON bodies.
func (s *Server) ListVideos(c *gin.Context) {
	var req catalogdomain.ListRequest
	if err := c.ShouldBind(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.catalogSvc.ListBySelection(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
