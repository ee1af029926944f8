package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	documentdomain "github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/providers/suggest"
)

type fakeDocumentService struct {
	doc        *documentdomain.Document
	err        error
	createReq  *documentdomain.CreateRequest
	addItemReq *documentdomain.AddLineItemRequest
}

func (f *fakeDocumentService) Create(ctx context.Context, req documentdomain.CreateRequest) (*documentdomain.Document, error) {
	f.createReq = &req
	return f.doc, f.err
}

func (f *fakeDocumentService) List(ctx context.Context, req documentdomain.ListRequest) (documentdomain.ListResponse, error) {
	if f.err != nil {
		return documentdomain.ListResponse{}, f.err
	}
	resp := documentdomain.ListResponse{}
	if f.doc != nil {
		resp.Documents = []documentdomain.Document{*f.doc}
	}
	return resp, nil
}

func (f *fakeDocumentService) GetByID(ctx context.Context, id string) (*documentdomain.Document, error) {
	return f.doc, f.err
}

func (f *fakeDocumentService) Update(ctx context.Context, id string, req documentdomain.UpdateRequest) (*documentdomain.Document, error) {
	return f.doc, f.err
}

func (f *fakeDocumentService) Delete(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeDocumentService) AddLineItem(ctx context.Context, docID string, req documentdomain.AddLineItemRequest) (*documentdomain.Document, error) {
	f.addItemReq = &req
	return f.doc, f.err
}

func (f *fakeDocumentService) UpdateLineItem(ctx context.Context, docID, itemID string, patch documentdomain.LineItemPatch) (*documentdomain.Document, error) {
	return f.doc, f.err
}

func (f *fakeDocumentService) RemoveLineItem(ctx context.Context, docID, itemID string) (*documentdomain.Document, error) {
	return f.doc, f.err
}

func (f *fakeDocumentService) UpdateStatus(ctx context.Context, docID string, req documentdomain.StatusRequest) (*documentdomain.Document, error) {
	return f.doc, f.err
}

func newTestRouter(svc documentdomain.Service) (*gin.Engine, *Server) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		documentSvc: svc,
		suggestSvc:  suggest.New(),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/v1/documents", srv.CreateDocument)
	router.GET("/v1/documents/:id", srv.GetDocumentByID)
	router.POST("/v1/documents/:id/items", srv.AddLineItem)
	router.POST("/v1/suggest/line-items", srv.SuggestLineItems)
	router.POST("/v1/suggest/expand-description", srv.ExpandDescription)
	router.GET("/v1/reference/due-date-presets", srv.ListDueDatePresets)

	return router, srv
}

func sampleDoc() *documentdomain.Document {
	return &documentdomain.Document{
		ID:     snowflake.ID(42),
		Type:   documentdomain.TypeInvoice,
		Number: "INV-2026-001",
		Status: documentdomain.StatusDraft,
	}
}

func TestCreateDocumentHandler(t *testing.T) {
	svc := &fakeDocumentService{doc: sampleDoc()}
	router, _ := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString(`{"type":"quote"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.createReq == nil || svc.createReq.Type != documentdomain.TypeQuote {
		t.Fatalf("expected create request with type quote, got %+v", svc.createReq)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	svc := &fakeDocumentService{err: documentdomain.ErrNotFound}
	router, _ := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetDocumentInvalidID(t *testing.T) {
	svc := &fakeDocumentService{err: documentdomain.ErrInvalidID}
	router, _ := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/not-a-number", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAddLineItemRejectsMalformedBody(t *testing.T) {
	svc := &fakeDocumentService{doc: sampleDoc()}
	router, _ := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/42/items", bytes.NewBufferString(`{"rate":`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.addItemReq != nil {
		t.Fatal("expected service not to be called on malformed body")
	}
}

func TestSuggestLineItemsHandler(t *testing.T) {
	router, _ := newTestRouter(&fakeDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/suggest/line-items", bytes.NewBufferString(`{"query":"website redesign"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Suggestions []suggest.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(body.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(body.Suggestions))
	}
	if !strings.Contains(body.Suggestions[0].Description, "Website") {
		t.Fatalf("expected website suggestion, got %q", body.Suggestions[0].Description)
	}
}

func TestSuggestLineItemsRequiresQuery(t *testing.T) {
	router, _ := newTestRouter(&fakeDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/suggest/line-items", bytes.NewBufferString(`{"query":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestListDueDatePresets(t *testing.T) {
	router, _ := newTestRouter(&fakeDocumentService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reference/due-date-presets", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Data []struct {
			Value string `json:"value"`
			Days  *int   `json:"days"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(body.Data) != 6 {
		t.Fatalf("expected 6 presets, got %d", len(body.Data))
	}
	if body.Data[0].Value != "due-on-receipt" {
		t.Fatalf("expected due-on-receipt first, got %q", body.Data[0].Value)
	}
	if body.Data[5].Days != nil {
		t.Fatal("expected custom preset to carry no day offset")
	}
}

func TestExpandDescriptionHandler(t *testing.T) {
	router, _ := newTestRouter(&fakeDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/suggest/expand-description", bytes.NewBufferString(`{"description":"Logo design"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Expanded string `json:"expanded"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if !strings.HasPrefix(body.Expanded, "Logo design - ") {
		t.Fatalf("expected expanded description, got %q", body.Expanded)
	}
}
