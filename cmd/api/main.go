package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/reco-hub/reco-backend/config"
	"github.com/reco-hub/reco-backend/internal/auth"
	"github.com/reco-hub/reco-backend/internal/bootstrap"
)

const serviceName = "reco-backend"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	client, db, err := bootstrap.OpenMongo(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() {
		if err := bootstrap.CloseMongo(client); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	cache := bootstrap.OpenRedis(ctx, cfg.Cache)
	if cache != nil {
		defer cache.Close()
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Client:      client,
		DB:          db,
		Cache:       cache,
		Verifier:    auth.NewFirebaseVerifier(authClient),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
