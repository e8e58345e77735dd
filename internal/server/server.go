package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/gallery"
	gallerydomain "github.com/smallbiznis/storefront/internal/gallery/domain"
	"github.com/smallbiznis/storefront/internal/merchant"
	merchantdomain "github.com/smallbiznis/storefront/internal/merchant/domain"
	"github.com/smallbiznis/storefront/internal/observability"
	"github.com/smallbiznis/storefront/internal/product"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	merchant.Module,
	product.Module,
	gallery.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *observability.HTTPMetrics, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.AppName))
	r.Use(observability.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, httpMetrics *observability.HTTPMetrics, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, httpMetrics, log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	log         *zap.Logger
	merchantSvc merchantdomain.Service
	productSvc  productdomain.Service
	gallerySvc  gallerydomain.Service
	gateway     storage.Gateway
	policy      *config.UploadPolicyHolder
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	MerchantSvc merchantdomain.Service
	ProductSvc  productdomain.Service
	GallerySvc  gallerydomain.Service
	Gateway     storage.Gateway
	Policy      *config.UploadPolicyHolder
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		merchantSvc: p.MerchantSvc,
		productSvc:  p.ProductSvc,
		gallerySvc:  p.GallerySvc,
		gateway:     p.Gateway,
		policy:      p.Policy,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	authRequired := AuthMiddleware(s.cfg)

	// -------- Merchants --------
	api.GET("/merchants", s.ListMerchants)
	api.GET("/merchants/:id", s.GetMerchantByID)
	api.GET("/merchants/slug/:slug", s.GetMerchantBySlug)
	api.POST("/merchants", authRequired, s.CreateMerchant)
	api.PATCH("/merchants/:id", authRequired, s.UpdateMerchant)
	api.DELETE("/merchants/:id", authRequired, s.DeleteMerchant)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.POST("/products", authRequired, s.CreateProduct)
	api.PATCH("/products/:id", authRequired, s.UpdateProduct)
	api.DELETE("/products/:id", authRequired, s.DeleteProduct)

	// -------- Galleries --------
	api.GET("/galleries", s.ListGalleries)
	api.GET("/galleries/:id", s.GetGalleryByID)
	api.POST("/galleries", authRequired, s.CreateGallery)
	api.PATCH("/galleries/:id", authRequired, s.UpdateGallery)
	api.DELETE("/galleries/:id", authRequired, s.DeleteGallery)

	// -------- Uploads --------
	api.POST("/uploads", authRequired, s.UploadObject)
}
