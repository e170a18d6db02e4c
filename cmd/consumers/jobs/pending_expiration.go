package jobs

import (
	"context"
	"log/slog"
	"time"

	"campushub/internal/service"
)

// PendingRegistrationTimeout is how long a pending registration may wait
// before its spot is released back to the pool.
const PendingRegistrationTimeout = 48 * time.Hour

const checkInterval = 10 * time.Minute

// PendingExpirationJob periodically cancels pending registrations that
// never got confirmed.
type PendingExpirationJob struct {
	registrations *service.RegistrationService
	ticker        *time.Ticker
	done          chan bool
}

func NewPendingExpirationJob(registrations *service.RegistrationService) *PendingExpirationJob {
	return &PendingExpirationJob{
		registrations: registrations,
		done:          make(chan bool),
	}
}

// Start begins the background job
func (j *PendingExpirationJob) Start(ctx context.Context) {
	slog.Info("Starting pending registration expiration job",
		"check_interval", checkInterval, "timeout", PendingRegistrationTimeout)

	j.ticker = time.NewTicker(checkInterval)

	go j.checkExpired(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.checkExpired(ctx)
			case <-j.done:
				slog.Info("Pending registration expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *PendingExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *PendingExpirationJob) checkExpired(ctx context.Context) {
	cutoff := time.Now().Add(-PendingRegistrationTimeout)

	expired, err := j.registrations.ExpirePending(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to expire pending registrations", "error", err)
		return
	}

	if expired == 0 {
		slog.Debug("No expired pending registrations found")
		return
	}

	slog.Info("Expired pending registrations", "count", expired)
}
