package main

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"localtrade.backend/internal/config"
	"localtrade.backend/internal/interfaces/http/handlers"
	"localtrade.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	offerHandler  *handlers.OfferHandler
	dealHandler   *handlers.DealHandler
	reportHandler *handlers.ReportHandler
	adminHandler  *handlers.AdminHandler
	walletAuth    gin.HandlerFunc
	requireAdmin  gin.HandlerFunc
	metrics       *middleware.Metrics
	gatherer      prometheus.Gatherer
}

func newRouter(cfg *config.Config, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	if d.metrics != nil {
		r.Use(d.metrics.Middleware())
	}

	applyCORSMiddleware(r, cfg.Server.CORSOrigins)
	registerHealthRoute(r)
	if d.gatherer != nil {
		registerMetricsRoute(r, d.gatherer)
	}
	registerAPIRoutes(r, d)
	return r
}

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.WalletAddressHeader, middleware.IdempotencyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-Idempotency-Hit"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	active := middleware.RequireActive()
	idempotent := middleware.IdempotencyMiddleware()

	api := r.Group("/api")
	{
		api.POST("/auth/connect", d.authHandler.Connect)

		users := api.Group("/users")
		{
			users.GET("/me", d.walletAuth, d.userHandler.Me)
			users.PATCH("/me", d.walletAuth, d.userHandler.UpdateMe)
			users.GET("/:id", d.userHandler.GetUser)
		}

		offers := api.Group("/offers")
		{
			offers.GET("", d.offerHandler.ListOffers)
			offers.GET("/map", d.offerHandler.Markers)
			offers.GET("/:id", d.offerHandler.GetOffer)
			offers.POST("", d.walletAuth, active, idempotent, d.offerHandler.CreateOffer)
			offers.PATCH("/:id", d.walletAuth, active, d.offerHandler.UpdateOffer)
			offers.DELETE("/:id", d.walletAuth, d.offerHandler.DeleteOffer)
		}

		deals := api.Group("/deals")
		deals.Use(d.walletAuth)
		{
			deals.GET("", d.dealHandler.ListDeals)
			deals.GET("/:id", d.dealHandler.GetDeal)
			deals.POST("", active, idempotent, d.dealHandler.CreateDeal)
			deals.PATCH("/:id", d.dealHandler.UpdateDeal)
		}

		api.POST("/reports", d.walletAuth, active, idempotent, d.reportHandler.CreateReport)

		admin := api.Group("/admin")
		admin.Use(d.walletAuth, d.requireAdmin)
		{
			admin.GET("/stats", d.adminHandler.GetStats)
			admin.GET("/reports", d.adminHandler.ListReports)
			admin.GET("/reports/:id", d.adminHandler.GetReport)
			admin.PATCH("/reports/:id", d.adminHandler.AdvanceReport)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/suspend", d.adminHandler.SuspendUser)
			admin.PATCH("/users/:id/verify", d.adminHandler.VerifyUser)
			admin.GET("/audit-logs", d.adminHandler.ListAuditLogs)
		}
	}
}
