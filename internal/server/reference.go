package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbill/quickbill/internal/document/format"
)

func (s *Server) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": format.Currencies})
}

func (s *Server) ListDueDatePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": format.DueDatePresets})
}
