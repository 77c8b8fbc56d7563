// Command server runs the HTTP API and the reminder dispatcher.
//
// Configuration comes from config.yml and environment variables; see
// internal/config. The process shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/daybookhq/daybook-backend/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
