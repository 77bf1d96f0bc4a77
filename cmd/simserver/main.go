package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collision-sim/internal/config"
	"collision-sim/internal/logger"
	"collision-sim/internal/protocol"
	"collision-sim/internal/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.Path, "path to the YAML config file")
	envPath := flag.String("env", ".env", "dotenv file with SIM_* overrides")
	flag.Parse()

	if err := config.LoadEnv(*envPath); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	codec, err := protocol.ParseCodec(cfg.Server.Codec)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Path, cfg.Log.MaxLines)
	log.SetEcho(os.Stdout)

	room := stream.New(stream.Options{
		TickHz:      cfg.Server.TickHz,
		BroadcastHz: cfg.Server.BroadcastHz,
		Dt:          cfg.Physics.Dt,
		World:       cfg.WorldConfig(),
		Spawn:       cfg.SpawnOptions(),
		Codec:       codec,
	}, log)
	go room.Run()
	defer room.Stop()

	mux := http.NewServeMux()
	mux.Handle("/ws", stream.Handler(room, log))
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Logf("listening on %s (ws endpoint: /ws, codec %s)", cfg.Server.Addr, codec.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Logf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
