package seeder

import (
	"context"
	"fmt"

	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// Seeder inserts baseline data. Seed must be idempotent.
type Seeder interface {
	Name() string
	Seed(ctx context.Context) error
}

// Orchestrator runs seeders in order and stops at the first failure.
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
}

func NewOrchestrator(logger logger.Logger, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
	}
}

func (o *Orchestrator) RunAll(ctx context.Context) error {
	o.logger.Info(ctx, "starting data seeding", "seeder_count", len(o.seeders))

	for _, s := range o.seeders {
		o.logger.Info(ctx, "running seeder", "seeder", s.Name())

		if err := s.Seed(ctx); err != nil {
			o.logger.Error(ctx, "seeder failed", "seeder", s.Name(), "error", err)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}
	}

	o.logger.Info(ctx, "all seeders completed")
	return nil
}
