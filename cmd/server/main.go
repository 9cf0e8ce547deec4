package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cvaz1306/nexora/internal/auth"
	"github.com/cvaz1306/nexora/internal/config"
	"github.com/cvaz1306/nexora/internal/engine"
	mw "github.com/cvaz1306/nexora/internal/middleware"
	"github.com/cvaz1306/nexora/internal/session"
	"github.com/cvaz1306/nexora/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(cfg.JWTSecret, cfg.AccessKey)
	if err != nil {
		slog.Error("init auth", "error", err)
		os.Exit(1)
	}
	authHandler := auth.NewHandler(authService)

	engineOpts := engine.Options{
		MinZoom:          cfg.MinZoom,
		MaxZoom:          cfg.MaxZoom,
		WheelSensitivity: cfg.WheelSensitivity,
		SnapThreshold:    cfg.SnapThreshold,
		ArrangePadding:   cfg.ArrangePadding,
	}

	hub := session.NewHub()
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session token endpoint
	r.HandleFunc("/session", authHandler.CreateSession).Methods("POST", "OPTIONS")

	// WebSocket endpoint: one board per connection
	r.HandleFunc("/ws/board", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, engineOpts, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, opts engine.Options, allowedOrigins string) {
	sessionID := typeid.NewSessionID()
	if authSvc.Required() {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		sessionID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	seed := r.URL.Query().Get("sample") == "1"
	sess := session.NewSession(sessionID, opts, seed)

	clientID := uuid.New().String()
	client := session.NewClient(hub, conn, clientID, sess)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins, which is
// what websocket.AcceptOptions matches against.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		origin = strings.TrimPrefix(origin, "http://")
		origin = strings.TrimPrefix(origin, "https://")
		if origin != "" {
			patterns = append(patterns, origin)
		}
	}
	return patterns
}
