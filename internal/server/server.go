// Package server exposes the invoicing core over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/flowbooks/flowbooks/internal/analytics"
	clientdomain "github.com/flowbooks/flowbooks/internal/client/domain"
	"github.com/flowbooks/flowbooks/internal/config"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/internal/invoice/render"
	"github.com/flowbooks/flowbooks/internal/observability/metrics"
	"github.com/flowbooks/flowbooks/internal/pdf"
	profiledomain "github.com/flowbooks/flowbooks/internal/profile/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(render.NewRenderer),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

func registerGin(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine       *gin.Engine
	cfg          config.Config
	invoiceSvc   invoicedomain.Service
	clientSvc    clientdomain.Service
	profileSvc   profiledomain.Service
	analyticsSvc analytics.Service
	renderer     render.Renderer
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	InvoiceSvc   invoicedomain.Service
	ClientSvc    clientdomain.Service
	ProfileSvc   profiledomain.Service
	AnalyticsSvc analytics.Service
	Renderer     render.Renderer
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		invoiceSvc:   p.InvoiceSvc,
		clientSvc:    p.ClientSvc,
		profileSvc:   p.ProfileSvc,
		analyticsSvc: p.AnalyticsSvc,
		renderer:     p.Renderer,
		pdfProvider:  p.PDFProvider,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.POST("/invoices/:id/payments", s.RecordInvoicePayment)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/html", s.RenderInvoiceHTML)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)

	api.POST("/clients", s.CreateClient)
	api.GET("/clients", s.ListClients)
	api.GET("/clients/:id", s.GetClientByID)
	api.DELETE("/clients/:id", s.DeleteClient)

	api.GET("/profile", s.GetProfile)
	api.PUT("/profile", s.UpsertProfile)

	api.GET("/analytics/revenue", s.GetRevenueMetrics)
}
