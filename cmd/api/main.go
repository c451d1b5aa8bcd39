package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/splitledger/splitledger/docs"
	"github.com/splitledger/splitledger/internal/assistant"
	"github.com/splitledger/splitledger/internal/balance"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/database"
	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/group"
	"github.com/splitledger/splitledger/internal/user"
	"github.com/splitledger/splitledger/pkg/logging"
	mw "github.com/splitledger/splitledger/pkg/middleware"
)

// @title           SplitLedger API
// @version         1.0
// @description     Expense splitting ledger with exact balance derivation
// @BasePath        /api/v1
func main() {
	// Load .env if present; a missing file just means the environment is
	// configured directly. Must happen before the logger reads LOG_*.
	_ = godotenv.Load()

	logger := logging.New()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	// Balance cache: redis when configured, process-local otherwise
	var cache balance.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = balance.NewRedisCache(client, cfg.BalanceCacheTTL)
		logger.Info("balance cache backed by redis", "addr", cfg.RedisAddr)
	} else {
		cache = balance.NewMemoryCache(cfg.BalanceCacheTTL)
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature
	balanceService := balance.NewService(expenseRepo, groupRepo, userRepo, cache, logger)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())

		if cfg.AssistantURL != "" {
			assistantClient := assistant.NewClient(cfg.AssistantURL, cfg.AssistantTimeout)
			assistantHandler := assistant.NewHandler(assistantClient)
			r.Mount("/agent", assistantHandler.Routes())
		}
	})

	// Start server
	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
