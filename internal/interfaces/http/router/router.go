// Package router assembles the gin engine for the license plate API.
package router

import (
	"net/http"

	_ "github.com/erp/lpcore/docs"
	"github.com/erp/lpcore/internal/bootstrap"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/erp/lpcore/internal/interfaces/http/dto"
	"github.com/erp/lpcore/internal/interfaces/http/handler"
	"github.com/erp/lpcore/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds request bodies
const DefaultMaxBodyBytes = 1 << 20

// Handlers groups the route handlers
type Handlers struct {
	LicensePlates *handler.LicensePlateHandler
	Demands       *handler.DemandHandler
	Reservations  *handler.ReservationHandler
	Receiving     *handler.ReceivingHandler
	System        *handler.SystemHandler
}

// Options configures the engine
type Options struct {
	Logger       *zap.Logger
	Tracing      middleware.TracingConfig
	Profiling    bool
	Swagger      bool
	MaxBodyBytes int64
}

// NewHandlers builds the handlers over the application services
func NewHandlers(app *bootstrap.App) Handlers {
	svc := app.Services
	return Handlers{
		LicensePlates: handler.NewLicensePlateHandler(svc.LicensePlates, svc.QA),
		Demands:       handler.NewDemandHandler(svc.Demands),
		Reservations:  handler.NewReservationHandler(svc.Reservations, svc.Picks),
		Receiving:     handler.NewReceivingHandler(svc.Receiving),
		System: handler.NewSystemHandler(app.Strategies, map[string]handler.HealthChecker{
			"database": app.Database.Ping,
		}),
	}
}

// NewFromApp builds the engine for a bootstrapped application
func NewFromApp(app *bootstrap.App) *gin.Engine {
	return New(NewHandlers(app), Options{
		Logger: app.Logger,
		Tracing: middleware.TracingConfig{
			ServiceName: app.Config.App.Name,
			Enabled:     app.Tracer.Enabled(),
		},
		Profiling:    app.Profiler.Enabled(),
		Swagger:      app.Config.HTTP.SwaggerEnabled,
		MaxBodyBytes: app.Config.HTTP.MaxBodyBytes,
	})
}

// New builds the engine and registers every route
func New(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	engine := gin.New()
	engine.Use(logger.Recovery(opts.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(opts.Tracing)...)
	engine.Use(middleware.ProfilingLabels(opts.Profiling))
	engine.Use(logger.GinMiddleware(opts.Logger))
	engine.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorInfo{
			Code:      dto.ErrCodeNotFound,
			Message:   "Route not found",
			RequestID: c.GetString(logger.GinRequestIDKey),
		}))
	})

	engine.GET("/health", h.System.Health)
	if opts.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := engine.Group("/api/v1")
	v1.GET("/strategies", h.System.Strategies)

	plates := v1.Group("/license-plates")
	{
		plates.GET("/:id", h.LicensePlates.GetByID)
		plates.GET("/:id/history", h.LicensePlates.History)
		plates.GET("/:id/consumption-check", h.LicensePlates.CheckConsumption)
		plates.POST("/:id/transitions", h.LicensePlates.Transition)
		plates.POST("/:id/block", h.LicensePlates.Block)
		plates.POST("/:id/unblock", h.LicensePlates.Unblock)
		plates.PUT("/:id/qa-status", h.LicensePlates.UpdateQAStatus)
	}

	demands := v1.Group("/demands")
	{
		demands.POST("", h.Demands.Create)
		demands.GET("/:id", h.Demands.GetByID)
		demands.POST("/:id/release", h.Demands.Release)
		demands.POST("/:id/complete", h.Demands.Complete)
		demands.POST("/:id/close", h.Demands.Close)
		demands.POST("/:id/cancel", h.Demands.Cancel)

		demands.GET("/:id/candidates", h.Reservations.Candidates)
		demands.GET("/:id/coverage", h.Reservations.Coverage)
		demands.POST("/:id/proposals", h.Reservations.Propose)
		demands.POST("/:id/reservations", h.Reservations.Commit)
		demands.POST("/:id/reservations/release", h.Reservations.ReleaseAll)
		demands.POST("/:id/auto-reserve", h.Reservations.AutoReserve)
	}

	reservations := v1.Group("/reservations")
	{
		reservations.POST("", h.Reservations.ReserveLP)
		reservations.POST("/:id/release", h.Reservations.Release)
		reservations.POST("/:id/pick", h.Reservations.ConfirmPick)
	}

	receiving := v1.Group("/receiving-lines")
	{
		receiving.POST("", h.Receiving.CreateLine)
		receiving.POST("/:id/preview", h.Receiving.Preview)
		receiving.POST("/:id/receipts", h.Receiving.Receive)
	}
	v1.GET("/asns/:id", h.Receiving.GetASN)

	return engine
}
