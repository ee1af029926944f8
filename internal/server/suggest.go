package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	documentdomain "github.com/quickbill/quickbill/internal/document/domain"
)

type suggestLineItemsRequest struct {
	Query        string                      `json:"query"`
	DocumentType documentdomain.DocumentType `json:"document_type"`
}

func (s *Server) SuggestLineItems(c *gin.Context) {
	var req suggestLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		AbortWithError(c, newValidationError("query", "required", "query is required"))
		return
	}

	docType := req.DocumentType
	if docType == "" {
		docType = documentdomain.TypeInvoice
	}

	suggestions, err := s.suggestSvc.SuggestLineItems(c.Request.Context(), query, docType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type expandDescriptionRequest struct {
	Description  string                      `json:"description"`
	DocumentType documentdomain.DocumentType `json:"document_type"`
}

func (s *Server) ExpandDescription(c *gin.Context) {
	var req expandDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		AbortWithError(c, newValidationError("description", "required", "description is required"))
		return
	}

	docType := req.DocumentType
	if docType == "" {
		docType = documentdomain.TypeInvoice
	}

	expanded, err := s.suggestSvc.ExpandDescription(c.Request.Context(), req.Description, docType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expanded": expanded})
}
