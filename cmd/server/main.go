package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pennywise/client/internal/auth"
	"github.com/pennywise/client/internal/config"
	"github.com/pennywise/client/internal/database"
	"github.com/pennywise/client/internal/handlers"
	"github.com/pennywise/client/internal/logger"
	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/repository"
	"github.com/shopspring/decimal"
)

func main() {
	config.Init()
	cfg := config.Load()
	log := logger.NewWithLevel(cfg.LogLevel)

	ctx := context.Background()

	var transactions repository.TransactionRepository = repository.NewMemoryTransactions()
	if cfg.DatabaseURL != "" {
		db, err := database.InitDB(ctx, database.DefaultDBConfig(cfg.DatabaseURL), log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		pg := repository.NewPostgresTransactions(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		transactions = pg
	} else {
		log.Info().Msg("DATABASE_URL not set, keeping transactions in memory")
	}

	issuer := auth.NewIssuer(cfg.JWT.SecretKey, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	devToken, err := issuer.Issue("dev-user", "dev@pennywise.local")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue development token")
	}
	fmt.Fprintf(os.Stderr, "API_TOKEN=%s\n", devToken)

	router := handlers.NewRouter(handlers.RouterConfig{
		Transactions: transactions,
		Wallets:      repository.NewCollection(seedWallets()...),
		Categories:   repository.NewCollection(seedCategories()...),
		Verifier:     issuer,
		Log:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func seedWallets() []models.Wallet {
	goal := decimal.NewFromInt(5000)
	return []models.Wallet{
		{ID: "cash", Name: "Cash", Currency: "EUR", Type: models.WalletTypeCash, InitialBalance: decimal.NewFromInt(150), DisplayOrder: 0},
		{ID: "main", Name: "Main account", Currency: "EUR", Type: models.WalletTypeBank, InitialBalance: decimal.NewFromInt(2400), IsDefault: true, DisplayOrder: 1},
		{ID: "savings", Name: "Savings", Currency: "USD", Type: models.WalletTypeSavings, GoalAmount: &goal, DisplayOrder: 2},
	}
}

func seedCategories() []models.Category {
	return []models.Category{
		{ID: "groceries", Name: "Groceries", Color: "#43a047", Type: models.CategoryTypeExpense},
		{ID: "rent", Name: "Rent", Color: "#e53935", Type: models.CategoryTypeExpense},
		{ID: "salary", Name: "Salary", Color: "#1e88e5", Type: models.CategoryTypeIncome},
	}
}
