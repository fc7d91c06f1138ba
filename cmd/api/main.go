package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mardavsj/csrfunds/internal/audit"
	auditStore "github.com/mardavsj/csrfunds/internal/audit/store"
	"github.com/mardavsj/csrfunds/internal/config"
	"github.com/mardavsj/csrfunds/internal/database"
	csrHttp "github.com/mardavsj/csrfunds/internal/http"
	fundsHandler "github.com/mardavsj/csrfunds/internal/http/funds"
	receiptsHandler "github.com/mardavsj/csrfunds/internal/http/receipts"
	sponsorsHandler "github.com/mardavsj/csrfunds/internal/http/sponsors"
	sponsorshipsHandler "github.com/mardavsj/csrfunds/internal/http/sponsorships"
	"github.com/mardavsj/csrfunds/internal/ledger"
	ledgerStore "github.com/mardavsj/csrfunds/internal/ledger/store"
	"github.com/mardavsj/csrfunds/internal/receipt"
	receiptStore "github.com/mardavsj/csrfunds/internal/receipt/store"
	"github.com/mardavsj/csrfunds/internal/roster"
	rosterStore "github.com/mardavsj/csrfunds/internal/roster/store"
	"github.com/mardavsj/csrfunds/internal/sponsor"
	sponsorStore "github.com/mardavsj/csrfunds/internal/sponsor/store"
	"github.com/mardavsj/csrfunds/internal/sponsorship"
	sponsorshipStore "github.com/mardavsj/csrfunds/internal/sponsorship/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		auditService       = audit.NewService(auditStore.New(db))
		sponsorService     = sponsor.NewService(sponsorStore.New(db))
		receiptService     = receipt.NewService(receiptStore.New(db))
		ledgerService      = ledger.NewService(ledgerStore.New(db), receiptService, auditService)
		sponsorshipService = sponsorship.NewService(sponsorshipStore.New(db), auditService)
		rosterService      = roster.NewService(rosterStore.New(db))
	)

	var (
		sponsorsH     = sponsorsHandler.NewHandler(sponsorService)
		fundsH        = fundsHandler.NewHandler(ledgerService, sponsorService)
		sponsorshipsH = sponsorshipsHandler.NewHandler(sponsorshipService, rosterService)
		receiptsH     = receiptsHandler.NewHandler(receiptService)
	)

	router := csrHttp.New(sponsorsH, fundsH, sponsorshipsH, receiptsH, csrHttp.Options{
		JWTSecret:      cfg.Auth.Secret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
