package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quickbill/quickbill/internal/config"
	documentdomain "github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/providers/pdf"
	"github.com/quickbill/quickbill/internal/providers/suggest"
	"github.com/quickbill/quickbill/internal/render"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	documentSvc documentdomain.Service
	renderer    render.Renderer
	pdfProvider pdf.Provider
	suggestSvc  suggest.Provider
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DocumentSvc documentdomain.Service
	Renderer    render.Renderer
	PDFProvider pdf.Provider
	SuggestSvc  suggest.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		documentSvc: p.DocumentSvc,
		renderer:    p.Renderer,
		pdfProvider: p.PDFProvider,
		suggestSvc:  p.SuggestSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/v1")

	// -------- Reference --------
	api.GET("/reference/currencies", s.ListCurrencies)
	api.GET("/reference/due-date-presets", s.ListDueDatePresets)

	// -------- Documents --------
	api.GET("/documents", s.ListDocuments)
	api.POST("/documents", s.CreateDocument)
	api.GET("/documents/:id", s.GetDocumentByID)
	api.PATCH("/documents/:id", s.UpdateDocument)
	api.DELETE("/documents/:id", s.DeleteDocument)
	api.PUT("/documents/:id/status", s.UpdateDocumentStatus)

	// -------- Line items --------
	api.POST("/documents/:id/items", s.AddLineItem)
	api.PATCH("/documents/:id/items/:itemId", s.UpdateLineItem)
	api.DELETE("/documents/:id/items/:itemId", s.RemoveLineItem)

	// -------- Output --------
	api.GET("/documents/:id/render", s.RenderDocument)
	api.GET("/documents/:id/pdf", s.DownloadDocumentPDF)

	// -------- Suggestions --------
	api.POST("/suggest/line-items", s.SuggestLineItems)
	api.POST("/suggest/expand-description", s.ExpandDescription)
}
