package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the cross-cutting pieces the router needs.
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(
	cfg RouterConfig,
	attendanceHandler AttendanceHandler,
	holidayHandler HolidayHandler,
	officeLocationHandler OfficeLocationHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verify(cfg.JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwt.TokenFromQuery))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.RateLimiter != nil {
					r.Use(cfg.RateLimiter.Handler)
				}
				r.Post("/mark", attendanceHandler.Mark)
				r.Post("/checkout", attendanceHandler.Checkout)
			})

			r.Get("/today", attendanceHandler.Today)
			r.Get("/history", attendanceHandler.History)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/all", attendanceHandler.All)
				r.Get("/stats", attendanceHandler.Stats)
				r.Put("/{id}", attendanceHandler.Update)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", holidayHandler.List)
			r.Get("/check/{date}", holidayHandler.Check)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", holidayHandler.Create)
				r.Delete("/{id}", holidayHandler.Delete)
			})
		})

		r.Route("/location", func(r chi.Router) {
			r.Get("/", officeLocationHandler.Get)

			// Admin only
			r.With(middleware.AdminOnly).Post("/", officeLocationHandler.Set)
		})

		r.Get("/events/stream", eventHandler.Stream)
	})

	return r
}
