package main

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/auth"
	"github.com/mobilestore/storefront/internal/cart"
	"github.com/mobilestore/storefront/internal/catalog"
	"github.com/mobilestore/storefront/internal/config"
	"github.com/mobilestore/storefront/internal/order"
	"github.com/mobilestore/storefront/internal/payment"
	"github.com/mobilestore/storefront/internal/session"
	"github.com/mobilestore/storefront/internal/ui"
)

func main() {
	// Load .env from CWD if present (env vars override)
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the persisted session; storage unavailability is fatal here
	// rather than something the app tries to recover from mid-flight.
	sessions, err := session.Open(cfg.SessionFile)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	// Single request pipeline for all backend calls
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, sessions)

	// Domain services
	authService := auth.NewService(client, sessions)
	cartService := cart.NewService(client)
	catalogService := catalog.NewService(client)
	orderService := order.NewService(client)
	paymentService := payment.NewService(client)

	// State containers: constructed once, passed by reference
	authManager := auth.NewManager(authService)
	cartManager := cart.NewManager(cartService, authManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ui.NewApp(ctx, authManager, cartManager, catalogService, orderService, paymentService)

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		log.Fatalf("UI failed: %v", err)
	}
}
