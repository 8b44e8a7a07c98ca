package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const (
	appName    = "activity-monitor"
	appVersion = "v1.0.0"
)

// NewLogger builds the JSON logger shared by request logging and services.
func NewLogger(out io.Writer, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

type RouterOptions struct {
	Logger      *slog.Logger
	FrontendURL string
	JWTService  jwt.Service
}

func NewRouter(
	opts RouterOptions,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	activityHandler ActivityHandler,
	settingsHandler SettingsHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	ja := opts.JWTService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/config", settingsHandler.GetDisplayConfig)

		// Dashboard operators
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(jwt.TokenTypeAccess))

			r.Post("/auth/agent-token", authHandler.IssueAgentToken)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListSummaries)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Get("/export", reportHandler.ExportActivity)
				r.Get("/roster", employeeHandler.ListRoster)
				r.Get("/{id}", employeeHandler.GetSummary)
				r.Delete("/{id}", employeeHandler.DeleteEmployee)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)
				r.Put("/", settingsHandler.UpdateSettings)
			})
		})

		// Monitoring agents write activity; operators may too.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(jwt.TokenTypeAccess, jwt.TokenTypeAgent))

			r.Post("/idle-logs", activityHandler.RecordIdleLog)
			r.Put("/idle-logs/{id}/end", activityHandler.CloseIdleLog)
			r.Post("/auto-breaks", activityHandler.RecordAutoBreak)
		})
	})

	return r
}
