package repository

import (
	"context"
	"errors"

	"github.com/42roma/monitor/internal/entity"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("record not found")

// AnnouncementRepository stores one announcement per id. Put overwrites the
// full record, creating the backing storage area if it does not exist yet.
// ListAll returns every readable record with its id attached; implementations
// skip and log malformed records instead of failing the whole listing.
type AnnouncementRepository interface {
	Put(ctx context.Context, id string, announcement *entity.Announcement) error
	GetByID(ctx context.Context, id string) (*entity.Announcement, error)
	ListAll(ctx context.Context) ([]*entity.Announcement, error)
}
