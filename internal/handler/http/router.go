package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	ledgerHandler LedgerHandler,
	shiftHandler ShiftHandler,
	adminHandler AdminHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeep"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/status", attendanceHandler.GetStatus)

				r.Route("/breaks", func(r chi.Router) {
					r.Post("/start", attendanceHandler.StartBreak)
					r.Post("/stop", attendanceHandler.StopBreak)
				})
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Get("/daily", ledgerHandler.GetMyDailyLedger)
				r.Get("/monthly", ledgerHandler.GetMyMonthlySummary)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/position/{position}", shiftHandler.ListByPosition)
			})

			r.Get("/notifications", notificationHandler.ListMine)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/assignments", adminHandler.SetAssignment)
				r.Post("/recalculate", adminHandler.Recalculate)
			})
		})
	})
	return r
}
