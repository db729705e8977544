// Package main is the entry point of the IRIS backend.
//
// This file does the dependency injection wire-up:
//  1. Load config
//  2. Open the database (embedded migrations run here)
//  3. Build repositories (with the DB connection)
//  4. Start the WebSocket hub
//  5. Build services (repositories + hub)
//  6. Build handlers (services)
//  7. Register routes (with their middleware chains)
//  8. Configure CORS
//  9. Start the HTTP server
// 10. Graceful shutdown
//
// No globals — everything is built here and wired together.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/irisedu/iris/config"
	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/services"
	"github.com/irisedu/iris/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] iris server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// The Hub manages every WebSocket connection. `go hub.Run()` starts
	// its event loop in a separate goroutine. The Hub also implements
	// the EventPublisher interface — services reach it through that, not
	// through the concrete struct.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	svcs, limiters := initServices(repos, hub, cfg)
	defer limiters.Login.Close()

	// Old session rows are audit data; sweep them after 30 days.
	janitor := services.NewSessionJanitor(repos.Session, 30*24*time.Hour, time.Hour)
	defer janitor.Close()

	// ─── 6. Handler Layer ───
	h := initHandlers(svcs, limiters)
	wsHandler := ws.NewHandler(hub, svcs.Auth)

	// ─── 7. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"iris"}`)
	})

	initRoutes(mux, h, svcs, wsHandler)

	// ─── 8. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Workspace-ID"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// WebSocket connections first, then the HTTP server: stop accepting
	// new requests and let in-flight ones finish within the timeout.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
