package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campushub/cmd/consumers/jobs"
	"campushub/internal/config"
	"campushub/internal/consumers"
	"campushub/internal/logger"
	"campushub/internal/service"
)

func main() {
	log.Println("Starting consumers service...")

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Consumers need their own NATS client identity
	cfg.NATS.ClientID = "campushub-consumers"

	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		log.Fatalf("Failed to create consumer service: %v", err)
	}

	if err := consumerService.Start(); err != nil {
		log.Fatalf("Failed to start consumers: %v", err)
	}

	repos := consumerService.Repositories()
	registrationService := service.NewRegistrationService(
		repos.Registrations, repos.Events, consumerService.NATS(), nil)
	expirationJob := jobs.NewPendingExpirationJob(registrationService)
	jobCtx, cancelJob := context.WithCancel(context.Background())
	expirationJob.Start(jobCtx)

	log.Println("Consumers service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down consumers service...")

	expirationJob.Stop()
	cancelJob()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Consumers service stopped")
}
