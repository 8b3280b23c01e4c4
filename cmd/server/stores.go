package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kalender/config"
	"kalender/internal/domain"
	"kalender/internal/repository/memory"
	"kalender/internal/repository/mongodb"
	"kalender/internal/repository/postgres"
)

const storeConnectTimeout = 15 * time.Second

type stores struct {
	events         domain.EventRepository
	participations domain.ParticipationRepository
	close          func() error
}

// openStores connects the configured backend and prepares its schema or indexes.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	ctx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDatabase)
		return &stores{
			events:         mongodb.NewEventRepository(db),
			participations: mongodb.NewParticipationRepository(db),
			close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("connected to postgres")
		return &stores{
			events:         postgres.NewEventRepository(db),
			participations: postgres.NewParticipationRepository(db),
			close:          db.Close,
		}, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &stores{
			events:         memory.NewEventRepository(),
			participations: memory.NewParticipationRepository(),
			close:          func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
