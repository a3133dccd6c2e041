package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/internal/handler"
	"github.com/noah-isme/grade-genius-api/internal/middleware"
	"github.com/noah-isme/grade-genius-api/internal/service"
	"github.com/noah-isme/grade-genius-api/pkg/config"
	appErrors "github.com/noah-isme/grade-genius-api/pkg/errors"
	"github.com/noah-isme/grade-genius-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/grade-genius-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/grade-genius-api/pkg/middleware/requestid"
	"github.com/noah-isme/grade-genius-api/pkg/response"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *service.MetricsService
	grades   *handler.GradeHandler
	observer *handler.MetricsHandler
}

func newRouter(deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(deps.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))

	r.GET("/health", deps.observer.Health)
	r.GET("/ready", deps.observer.Ready)
	r.GET("/metrics", deps.observer.Prometheus)

	if deps.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	grades := api.Group("/grades")
	grades.POST("/calculate", deps.grades.Calculate)
	grades.POST("/target", deps.grades.Target)
	grades.GET("/gpe", deps.grades.GPE)
	grades.GET("/scale", deps.grades.Scale)
	grades.POST("/export", deps.grades.Export)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r
}
