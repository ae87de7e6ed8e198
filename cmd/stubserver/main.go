package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mobilestore/storefront/internal/stub"
)

// stubserver runs the in-memory backend on a local port so the storefront
// can be exercised without the real API. All state is lost on exit.
func main() {
	_ = godotenv.Load(".env")

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "8000"
	}
	secret := os.Getenv("STUB_JWT_SECRET")
	if secret == "" {
		secret = "stub-secret"
	}

	backend := stub.New(secret)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", backend.Router))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Stub backend listening on port %s (base path /api)", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down stub backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Stub backend exited")
}
