package consumers

import (
	"context"
	"log/slog"

	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/external"
	"campushub/internal/messaging"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/search"
)

const queueGroup = "campushub-consumers"

// ConsumerService runs the durable queue subscriptions that handle
// side effects off the request path: emails and search index upkeep.
type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Elasticsearch.Enabled() {
		searchClient, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, index sync disabled", "error", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	mailer := external.NewMailer(cfg.Mailer)
	handlers := NewHandlers(repos, mailer, searchClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

// Repositories exposes the repository layer to the background jobs
func (cs *ConsumerService) Repositories() *repository.Repositories {
	return cs.repos
}

// NATS exposes the bus connection to the background jobs
func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	if _, err := cs.nats.SubscribeQueue(models.EventRegistrationCreated, queueGroup, "registration-created", cs.handlers.HandleRegistrationCreated); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventRegistrationCancelled, queueGroup, "registration-cancelled", cs.handlers.HandleRegistrationCancelled); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventRegistrationExpired, queueGroup, "registration-expired", cs.handlers.HandleRegistrationExpired); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventEventCreated, queueGroup, "event-created", cs.handlers.HandleEventChanged); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventEventUpdated, queueGroup, "event-updated", cs.handlers.HandleEventChanged); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventEventDeleted, queueGroup, "event-deleted", cs.handlers.HandleEventDeleted); err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
