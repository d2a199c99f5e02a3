// internal/database/mongo.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contingent-booking-api-server/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	BookingCollection           = "bookings"
	RegionCoordinatorCollection = "region_coordinators"
	MasterRegionCollection      = "master_region"
	UserCollection              = "users"
)

// Connect opens a Mongo client and pings the primary. It retries with
// exponential backoff so the API can start while the DB container boots.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is empty")
	}

	const (
		maxAttempts = 5
		baseDelay   = 500 * time.Millisecond
	)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.URI).
			SetMaxPoolSize(25).
			SetServerSelectionTimeout(5*time.Second))
		if err != nil {
			lastErr = err
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			lastErr = client.Ping(pingCtx, readpref.Primary())
			cancel()
			if lastErr == nil {
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("mongo connection failed, retrying")
		if err := sleepWithBackoff(ctx, attempt, baseDelay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed to connect to mongo after %d attempts: %w", maxAttempts, lastErr)
}

// sleepWithBackoff waits base * 2^(attempt-1), capped to 5s.
func sleepWithBackoff(ctx context.Context, attempt int, base time.Duration) error {
	d := base << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
