package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"

	"blushhush.app/internal/auth"
	"blushhush.app/internal/config"
	"blushhush.app/internal/gateway"
	"blushhush.app/internal/nav"
	"blushhush.app/internal/obs"
	"blushhush.app/internal/profile"
	"blushhush.app/internal/project"
	"blushhush.app/internal/update"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	// Локальные переменные окружения из .env, если файл существует
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		db       *sql.DB
		profiles profile.Store
		projects project.Store
		updates  update.Store
	)
	if cfg.PGDSN != "" {
		db, err = sql.Open("pgx", cfg.PGDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		profiles = profile.NewPGStore(db)
		projects = project.NewPGStore(db)
		updates = update.NewPGStore(db)
	} else {
		profiles = profile.NewInMemory()
		projects = project.NewInMemory()
		updates = update.NewInMemory()
	}

	sessions := auth.NewStore(profile.NewRoleResolver(profiles),
		auth.WithResolveTimeout(cfg.ResolveTimeout))

	gw := gateway.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	tokens := gateway.NewFileTokenStore(cfg.TokenPath)
	sessionMgr := gateway.NewManager(gw, tokens, sessions)

	guard := nav.NewGuard(sessions, nav.RouterFunc(func(group nav.RouteGroup) {
		obs.Info("navigate", map[string]any{"target": string(group)})
	}))

	timeline := update.NewService(updates, projects)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go guard.Run(ctx)

	sessionMgr.Rehydrate(ctx)

	var srv *http.Server
	if cfg.DebugAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", obs.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		mux.HandleFunc("/debug/timeline", func(w http.ResponseWriter, r *http.Request) {
			projectID := r.URL.Query().Get("project")
			if projectID == "" {
				http.Error(w, "missing project parameter", http.StatusBadRequest)
				return
			}
			entries, err := timeline.Timeline(r.Context(), projectID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(entries)
		})
		mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
			if db != nil {
				if err := db.PingContext(r.Context()); err != nil {
					http.Error(w, "db unavailable", http.StatusServiceUnavailable)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
		})
		srv = &http.Server{
			Addr:              cfg.DebugAddr,
			Handler:           mux,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("debug listen: %v", err)
			}
		}()
	}

	log.Printf("Starting blushhush-app %s", version)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
