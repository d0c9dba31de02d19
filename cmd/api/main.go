package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/servicezone/concierge/internal/config"
	"github.com/servicezone/concierge/internal/handler"
	"github.com/servicezone/concierge/internal/model/catalog"
	convoservice "github.com/servicezone/concierge/internal/service/convo"
	"github.com/servicezone/concierge/internal/service/fallback"
	monitorservice "github.com/servicezone/concierge/internal/service/monitor"
	"github.com/servicezone/concierge/internal/service/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	services, err := catalog.New("services", catalog.SeedServices())
	if err != nil {
		log.Fatalf("invalid service catalog: %v", err)
	}
	slots, err := catalog.New("slots", catalog.SeedSlots())
	if err != nil {
		log.Fatalf("invalid slot catalog: %v", err)
	}

	store := convoservice.NewStore()
	hub := monitorservice.NewHub()

	deps := convoservice.Deps{Events: hub}

	if cfg.AI.Enabled() {
		fallbackSvc, err := fallback.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize fallback answerer: %v", err)
			log.Println("continuing with fixed replies for unclassified messages")
		} else {
			deps.Fallback = fallbackSvc
			log.Println("fallback answerer initialized")
		}
	} else {
		log.Println("ark credentials not configured, unclassified messages get fixed replies")
	}

	if cfg.Notify.Enabled() {
		deps.Notifier = notify.NewService(cfg.Notify)
		log.Println("admin notifier initialized")
	} else {
		log.Println("twilio notify credentials not configured, skipping admin notifications")
	}

	controller := convoservice.NewController(store, services, slots, cfg.Flow, cfg.Expert, deps)

	router := handler.NewRouter(controller, store, hub)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("concierge backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
