package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/audit"
	mW "github.com/pennywise/client/internal/middleware"
	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/repository"
	"github.com/rs/zerolog"
)

// RouterConfig wires the development API.
type RouterConfig struct {
	Transactions repository.TransactionRepository
	Wallets      *repository.Collection[models.Wallet]
	Categories   *repository.Collection[models.Category]
	Verifier     mW.TokenVerifier
	Audit        *audit.Logger
	Log          zerolog.Logger
}

// NewRouter builds the /api router.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Audit == nil {
		cfg.Audit = audit.NewLogger(cfg.Log)
	}

	r := chi.NewRouter()

	r.Use(mW.Correlation(cfg.Log))
	r.Use(mW.Logger)
	r.Use(mW.Recovery)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apiclient.CorrelationHeader},
		ExposedHeaders:   []string{apiclient.CorrelationHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(mW.Auth(cfg.Verifier))

		NewTransactionHandler(cfg.Transactions, cfg.Audit).Routes(r)
		NewCollectionHandler("wallets", cfg.Wallets).Routes(r)
		NewCollectionHandler("categories", cfg.Categories).Routes(r)
	})

	return r
}
