// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"options-payoff/internal/models"
)

// StrategyStore defines the interface for saved-strategy persistence.
type StrategyStore interface {
	SaveStrategy(ctx context.Context, strategy *models.Strategy) (int64, error)
	GetStrategy(ctx context.Context, id int64) (*models.Strategy, error)
	ListStrategies(ctx context.Context, filter StrategyFilter) ([]models.Strategy, error)
	UpdateStrategy(ctx context.Context, strategy *models.Strategy) error
	DeleteStrategy(ctx context.Context, id int64) error

	// Lifecycle
	Close() error
}

// StrategyFilter represents filters for querying saved strategies.
type StrategyFilter struct {
	Type   models.StrategyType
	Name   string
	Offset int
	Limit  int
}
