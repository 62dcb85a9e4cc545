package routes

import (
	"net/http"

	"github.com/Vasek03/tip-league/handlers"
	"github.com/Vasek03/tip-league/middleware"
	"github.com/Vasek03/tip-league/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Vasek03/tip-league/docs" // swagger docs registration
)

// Handlers bundles everything SetupRoutes wires into the router.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Match       *handlers.MatchHandler
	Prediction  *handlers.PredictionHandler
	Ranking     *handlers.RankingHandler
	Team        *handlers.TeamHandler
	Leaderboard *handlers.LeaderboardHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/leaderboard", h.Leaderboard.GetLeaderboard)
	router.Get("/teams", h.Team.ListTeams)
	router.Get("/ws/leaderboard", h.WebSocket.ServeLeaderboard)

	// Routes for any logged-in user.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/dashboard", h.Dashboard.GetDashboard)

		r.Get("/matches", h.Match.ListMatches)
		r.Get("/matches/{matchID}", h.Match.GetMatch)
		r.Put("/matches/{matchID}/prediction", h.Prediction.SubmitTip)
		r.Get("/matches/{matchID}/predictions", h.Prediction.ListMatchTips)
		r.Get("/predictions", h.Prediction.ListOwnTips)

		r.Post("/ranking", h.Ranking.SubmitRanking)
		r.Get("/ranking", h.Ranking.GetOwnRanking)
		r.Get("/rankings", h.Ranking.ListSubmittedRankings)
	})

	// Admin-only routes.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Post("/matches", h.Match.CreateMatch)
		r.Post("/matches/{matchID}/result", h.Match.FinalizeMatch)
		r.Post("/rankings/result", h.Ranking.FinalizeRanking)

		r.Post("/teams", h.Team.CreateTeam)
		r.Put("/teams/{teamID}/logo", h.Team.UploadLogo)
	})

	return router
}
