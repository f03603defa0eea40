package repository

import (
	"context"

	"github.com/42roma/monitor/internal/entity"
)

// BannerRepository holds the single sitewide banner document.
// Get returns the configured default when nothing has been saved yet.
type BannerRepository interface {
	Get(ctx context.Context) (*entity.Banner, error)
	Put(ctx context.Context, banner *entity.Banner) error
}

// MaintenanceRepository holds the set of PC ids currently under maintenance.
type MaintenanceRepository interface {
	List(ctx context.Context) ([]string, error)
	Put(ctx context.Context, pcs []string) error
}
