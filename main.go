package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/server"
	"github.com/room4-2/OpenReserve/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(nil, "info").Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(nil, cfg.LogLevel)

	store := session.NewStore(cfg, log)
	api := booking.NewClient(cfg, log)
	asst := assistant.New(store, api, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	go store.StartCleanupRoutine(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	shutdown := func(servers ...interface {
		Shutdown(context.Context) error
	}) {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown error")
			}
		}
		store.Shutdown()
	}

	switch cfg.ServerType {
	case "http":
		srv := server.NewHTTPServer(cfg, asst, store, api, log)
		go shutdown(srv)
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatal().Err(err).Msg("HTTP server error")
		}

	case "websocket":
		srv := server.NewWSServer(cfg, asst, store, log)
		go shutdown(srv)
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatal().Err(err).Msg("WebSocket server error")
		}

	case "both":
		httpSrv := server.NewHTTPServer(cfg, asst, store, api, log)
		wsSrv := server.NewWSServer(cfg, asst, store, log)
		go shutdown(httpSrv, wsSrv)

		go func() {
			if err := wsSrv.Start(); err != nil && err.Error() != "http: Server closed" {
				log.Fatal().Err(err).Msg("WebSocket server error")
			}
		}()

		if err := httpSrv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatal().Err(err).Msg("HTTP server error")
		}

	default:
		log.Fatal().Str("server_type", cfg.ServerType).Msg("unknown SERVER_TYPE")
	}

	log.Info().Msg("server stopped")
}
