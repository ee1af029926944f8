package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	documentdomain "github.com/quickbill/quickbill/internal/document/domain"
)

func (s *Server) CreateDocument(c *gin.Context) {
	var req documentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	documentsCreated.WithLabelValues(string(resp.Type)).Inc()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var query documentdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.documentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req documentdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.documentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) UpdateDocumentStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req documentdomain.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddLineItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req documentdomain.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.AddLineItem(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateLineItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	itemID := strings.TrimSpace(c.Param("itemId"))

	var patch documentdomain.LineItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.UpdateLineItem(c.Request.Context(), id, itemID, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveLineItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	itemID := strings.TrimSpace(c.Param("itemId"))

	resp, err := s.documentSvc.RemoveLineItem(c.Request.Context(), id, itemID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	doc, err := s.documentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	html, err := s.renderer.RenderHTML(*doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) DownloadDocumentPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	doc, err := s.documentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.GenerateDocument(c.Request.Context(), *doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pdfRendered.Inc()

	filename := slug.Make(doc.Number) + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
