package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/healthsync/healthsync/docs"
	"github.com/healthsync/healthsync/internal/api/handler"
	"github.com/healthsync/healthsync/internal/api/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	User         *handler.UserHandler
	Progress     *handler.ProgressHandler
	Report       *handler.ReportHandler
	Symptom      *handler.SymptomHandler
	Meal         *handler.MealHandler
	MealPlan     *handler.MealPlanHandler
	Alert        *handler.AlertHandler
	Consultation *handler.ConsultationHandler
	Dashboard    *handler.DashboardHandler
}

type Router struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewRouter(handlers Handlers, logger *zap.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

func (rt *Router) Setup() http.Handler {
	h := rt.handlers
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(rt.logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.User.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", h.User.GetByID)

				// Measurements and analytics
				r.Post("/progress", h.Progress.Create)
				r.Get("/progress", h.Progress.List)
				r.Get("/trends/weight", h.Progress.WeightTrend)
				r.Get("/trends/blood-pressure", h.Progress.BloodPressureTrend)
				r.Get("/goals/{goalType}", h.Progress.GoalProgress)
				r.Get("/health-report", h.Report.HealthReport)

				// Symptoms and meals
				r.Post("/symptoms", h.Symptom.Create)
				r.Get("/symptoms", h.Symptom.List)
				r.Get("/symptoms/analysis", h.Symptom.Analysis)
				r.Get("/predictions", h.Symptom.Predictions)
				r.Post("/meals", h.Meal.Create)
				r.Get("/meals", h.Meal.List)
				r.Get("/meals/nutrition-summary", h.Meal.NutritionSummary)
				r.Get("/correlations", h.Meal.Correlations)
				r.Post("/meal-plans", h.MealPlan.Generate)
				r.Get("/meal-plans", h.MealPlan.History)

				// Alerts
				r.Route("/alerts", func(r chi.Router) {
					r.Get("/", h.Alert.List)
					r.Get("/summary", h.Alert.Summary)
					r.Post("/check", h.Alert.Check)
					r.Post("/{alertId}/read", h.Alert.MarkRead)
				})
			})
		})

		r.Post("/meal-plans/{planId}/feedback", h.MealPlan.Feedback)

		r.Get("/health-tips/{category}", h.Consultation.Tips)
		r.Post("/consultation", h.Consultation.Ask)
		r.Post("/consultation/feedback", h.Consultation.Feedback)
	})

	// Dashboard (HTML fragments)
	r.Route("/dashboard", func(r chi.Router) {
		r.Post("/sessions", h.Dashboard.CreateSession)
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Get("/", h.Dashboard.GetSession)
			r.Delete("/", h.Dashboard.DeleteSession)
			r.Post("/tab", h.Dashboard.SelectTab)
			r.Post("/range", h.Dashboard.SelectRange)
			r.Post("/goal", h.Dashboard.SetGoal)
			r.Get("/surfaces/{tab}", h.Dashboard.Surface)
			r.Get("/surfaces/{tab}/chart", h.Dashboard.SurfaceChart)
		})
		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/correlations", h.Dashboard.Correlations)
			r.Get("/predictions", h.Dashboard.Predictions)
			r.Get("/symptoms", h.Dashboard.Symptoms)
		})
	})

	return r
}
