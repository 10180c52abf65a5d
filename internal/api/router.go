package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskboard/tracker-api/internal/api/handler"
	"github.com/taskboard/tracker-api/internal/api/middleware"
	"github.com/taskboard/tracker-api/internal/core/ports"

	_ "github.com/taskboard/tracker-api/docs"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenService
	Tasks    ports.TaskService
	Activity ports.ActivityService
	Reports  ports.ReportService
	Catalog  ports.CatalogService
	Health   *handler.HealthHandler
	Log      zerolog.Logger

	// AuthRequired gates every non-auth route. When false only /auth/me is gated.
	AuthRequired bool

	// Registry receives the HTTP metrics. Nil uses the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.RequestContext(d.Log))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tracker",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	taskHandler := handler.NewTaskHandler(d.Tasks, d.Activity)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	reportHandler := handler.NewReportHandler(d.Reports, d.Log)
	gate := middleware.Auth(d.Tokens)

	// --- Public routes ---
	e.GET("/health", d.Health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", d.Health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, gate)

	// --- Domain routes ---
	var guarded []echo.MiddlewareFunc
	if d.AuthRequired {
		guarded = append(guarded, gate)
	}
	g := e.Group("", guarded...)

	g.GET("/users", authHandler.Users)

	g.POST("/tasks", taskHandler.Create)
	g.GET("/tasks", taskHandler.List)
	g.PATCH("/tasks/:id", taskHandler.Update)
	g.DELETE("/tasks/:id", taskHandler.Delete)
	g.GET("/tasks/:id/activity", taskHandler.Activity)

	g.POST("/teams", catalogHandler.CreateTeam)
	g.GET("/teams", catalogHandler.ListTeams)
	g.POST("/projects", catalogHandler.CreateProject)
	g.GET("/projects", catalogHandler.ListProjects)
	g.POST("/tags", catalogHandler.CreateTag)
	g.GET("/tags", catalogHandler.ListTags)

	g.GET("/report/last-week", reportHandler.LastWeek)
	g.GET("/report/pending", reportHandler.Pending)
	g.GET("/report/closed-tasks", reportHandler.ClosedTasks)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
