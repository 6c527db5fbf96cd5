package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelarcade/platform/internal/auth"
	"github.com/pixelarcade/platform/internal/guard"
	"github.com/pixelarcade/platform/internal/handler"
	"github.com/pixelarcade/platform/internal/ledger"
	"github.com/pixelarcade/platform/internal/policy"
	"github.com/pixelarcade/platform/internal/projection"
	"github.com/pixelarcade/platform/internal/repository"
	"github.com/pixelarcade/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger

	// Reward ledger behavior on quota-read failures.
	QuotaFailureMode policy.CheckFailureMode

	// Per-account throttle on award submissions.
	AwardRateLimit  int
	AwardRateWindow time.Duration

	// Origin stamped on CORS headers; "" means any.
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	accountRepo := repository.NewAccountRepository()
	txRepo := repository.NewTransactionRepository()
	quotaRepo := repository.NewQuotaRepository()
	scoreRepo := repository.NewScoreRepository()
	favoriteRepo := repository.NewFavoriteRepository()
	outboxRepo := repository.NewOutboxRepository()
	authUserRepo := repository.NewAuthUserRepository()

	// Ledger engine
	ledgerEngine := ledger.NewEngine(pool, accountRepo, txRepo, quotaRepo, outboxRepo, deps.QuotaFailureMode, logger)

	// Award throttle
	awardLimiter := guard.NewRateLimiter(deps.AwardRateLimit, deps.AwardRateWindow)

	// Board projection cache
	boardCache := projection.NewInMemoryStore()

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, accountRepo, outboxRepo, ledgerEngine, jwtMgr)
	leaderboardSvc := service.NewLeaderboardService(pool, scoreRepo, outboxRepo, boardCache, logger)
	favoritesSvc := service.NewFavoritesService(pool, favoriteRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	walletHandler := handler.NewWalletHandler(ledgerEngine, txRepo, pool)
	arcadeHandler := handler.NewArcadeHandler(ledgerEngine, awardLimiter)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	favoritesHandler := handler.NewFavoritesHandler(favoritesSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Game catalog and score validation are public: the reward rules are
	// client-visible anyway, and validation has no side effects.
	r.Get("/arcade/games", arcadeHandler.ListGames)
	r.Post("/arcade/validate-score", arcadeHandler.ValidateScore)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletHandler.GetBalance)
			r.Get("/transactions", walletHandler.GetTransactions)
		})

		r.Post("/arcade/award", arcadeHandler.Award)

		r.Post("/scores", leaderboardHandler.SubmitScore)
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/{gameID}", leaderboardHandler.GetBoard)
			r.Get("/{gameID}/me", leaderboardHandler.GetPersonal)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.List)
			r.Put("/{gameID}", favoritesHandler.Add)
			r.Delete("/{gameID}", favoritesHandler.Remove)
		})
	})

	return r
}
