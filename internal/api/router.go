package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hrdesk/feedback-api/docs"
	"github.com/hrdesk/feedback-api/internal/api/handler"
	"github.com/hrdesk/feedback-api/internal/api/middleware"
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Auth       ports.AuthService
	Employees  ports.EmployeeService
	Companies  ports.CompanyService
	Feedback   ports.FeedbackService
	Properties ports.PropertyService
	Bookmarks  ports.BookmarkService

	Verifier ports.TokenVerifier
	// AllowLegacyID lets the employee gate accept bare-id tokens.
	AllowLegacyID bool

	// HealthChecks are pinged by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.DependencyCheck

	// AllowedOrigins enables CORS for browser clients. Empty disables it.
	AllowedOrigins []string

	// Registerer enables per-request Prometheus metrics. Leave nil in tests
	// that build more than one router per process.
	Registerer prometheus.Registerer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	if len(deps.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.TokenHeader},
			AllowCredentials: true,
		}))
	}
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "hrfeedback",
			Registerer: deps.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
			},
		}))
	}

	// --- Gates ---
	anyGate := middleware.Auth(deps.Verifier, middleware.AuthOptions{Gate: middleware.GateAny})
	employeeGate := middleware.Auth(deps.Verifier, middleware.AuthOptions{
		Gate:          middleware.GateEmployee,
		AllowLegacyID: deps.AllowLegacyID,
	})
	adminOnly := middleware.AdminOnly()
	employeeOnly := middleware.RBAC(domain.KindEmployee)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	employeeHandler := handler.NewEmployeeHandler(deps.Employees)
	companyHandler := handler.NewCompanyHandler(deps.Companies)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)
	propertyHandler := handler.NewPropertyHandler(deps.Properties)
	bookmarkHandler := handler.NewBookmarkHandler(deps.Bookmarks)

	// --- Admins ---
	admins := e.Group("/api/admins")
	admins.POST("/register", authHandler.RegisterAdmin)
	admins.POST("/login", authHandler.LoginAdmin)
	admins.GET("/me", authHandler.Me, anyGate)
	admins.POST("/logout", authHandler.Logout, anyGate)

	// --- Employees ---
	employees := e.Group("/api/employees")
	employees.POST("/login", authHandler.LoginEmployee)
	employees.POST("/add", employeeHandler.Add, anyGate, adminOnly)
	employees.GET("", employeeHandler.List, anyGate, adminOnly)
	employees.GET("/me", employeeHandler.Me, employeeGate, employeeOnly)
	employees.PUT("/profile", employeeHandler.UpdateProfile, employeeGate, employeeOnly)
	employees.PUT("/change-password", employeeHandler.ChangePassword, employeeGate, employeeOnly)
	employees.GET("/company-details", employeeHandler.CompanyDetails, employeeGate, employeeOnly)
	employees.GET("/company-by-name/:companyName", employeeHandler.CompanyByName, employeeGate)
	employees.POST("/logout", authHandler.Logout, employeeGate)
	employees.GET("/:id", employeeHandler.Get, anyGate)
	employees.DELETE("/:id", employeeHandler.Delete, anyGate, adminOnly)

	// --- Company ---
	company := e.Group("/api/company", anyGate, adminOnly)
	company.GET("", companyHandler.Get)
	company.POST("", companyHandler.Save)
	company.DELETE("/logo", companyHandler.RemoveLogo)

	// --- Feedback ---
	feedback := e.Group("/api/feedback")
	feedback.POST("", feedbackHandler.SubmitAsAdmin, anyGate, adminOnly)
	feedback.POST("/employee", feedbackHandler.SubmitAsEmployee, employeeGate, employeeOnly)
	feedback.GET("/admin", feedbackHandler.ListForAdmin, anyGate, adminOnly)
	feedback.GET("/employee", feedbackHandler.ListForParticipant, anyGate)
	feedback.GET("/new", feedbackHandler.New, anyGate)
	feedback.GET("/:id", feedbackHandler.Get, anyGate)
	feedback.PUT("/respond/:id", feedbackHandler.RespondAsAdmin, anyGate, adminOnly)
	feedback.PUT("/review/:id", feedbackHandler.MarkReviewed, anyGate, adminOnly)
	feedback.PUT("/employee/respond/:id", feedbackHandler.RespondAsEmployee, employeeGate, employeeOnly)

	// --- Properties ---
	properties := e.Group("/api/properties", anyGate)
	properties.POST("", propertyHandler.Create, adminOnly)
	properties.GET("", propertyHandler.List)
	properties.GET("/:id", propertyHandler.Get)
	properties.PUT("/:id", propertyHandler.Update, adminOnly)
	properties.DELETE("/:id", propertyHandler.Delete, adminOnly)

	// --- Bookmarks ---
	bookmarks := e.Group("/api/bookmarks", anyGate)
	bookmarks.POST("", bookmarkHandler.Add)
	bookmarks.GET("", bookmarkHandler.List)
	bookmarks.DELETE("/:id", bookmarkHandler.Remove)

	// --- Ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Test route is working"})
	})

	return e
}

// requestLogger routes the access log through zerolog.
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
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
