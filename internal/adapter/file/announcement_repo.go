// Package file persists dashboard records as JSON documents on disk, one
// file per record. It is the default backing for a single-process deployment.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/repository"
	"go.uber.org/zap"
)

type AnnouncementFileRepository struct {
	dir    string
	logger *zap.Logger

	// Serializes writes so two requests editing the same id cannot
	// interleave partial documents. Reads go straight to disk.
	mu sync.Mutex
}

func NewAnnouncementFileRepository(dir string, logger *zap.Logger) *AnnouncementFileRepository {
	return &AnnouncementFileRepository{dir: dir, logger: logger}
}

// announcementDocument is the on-disk layout. The id is the file name stem,
// not part of the payload, and is re-attached on read.
type announcementDocument struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Color       string     `json:"color"`
	Link        *string    `json:"link"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toAnnouncementDocument(a *entity.Announcement) *announcementDocument {
	return &announcementDocument{
		Title:       a.Title,
		Description: a.Description,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		Color:       a.Color,
		Link:        a.Link,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAnnouncementEntity(id string, doc *announcementDocument) *entity.Announcement {
	return &entity.Announcement{
		ID:          id,
		Title:       doc.Title,
		Description: doc.Description,
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
		Color:       doc.Color,
		Link:        doc.Link,
		CreatedBy:   doc.CreatedBy,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *AnnouncementFileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *AnnouncementFileRepository) Put(ctx context.Context, id string, announcement *entity.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("AnnouncementFileRepository.Put: creating storage dir: %w", err)
	}

	data, err := json.MarshalIndent(toAnnouncementDocument(announcement), "", "    ")
	if err != nil {
		return fmt.Errorf("AnnouncementFileRepository.Put: marshaling announcement %s: %w", id, err)
	}

	// Write to a temp file and rename so readers never see a half-written
	// record.
	tmp, err := os.CreateTemp(r.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("AnnouncementFileRepository.Put: creating temp file for %s: %w", id, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("AnnouncementFileRepository.Put: writing announcement %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("AnnouncementFileRepository.Put: closing temp file for %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), r.path(id)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("AnnouncementFileRepository.Put: renaming announcement %s into place: %w", id, err)
	}
	return nil
}

func (r *AnnouncementFileRepository) GetByID(ctx context.Context, id string) (*entity.Announcement, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("AnnouncementFileRepository.GetByID: reading announcement %s: %w", id, err)
	}

	var doc announcementDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("AnnouncementFileRepository.GetByID: decoding announcement %s: %w", id, err)
	}
	return toAnnouncementEntity(id, &doc), nil
}

func (r *AnnouncementFileRepository) ListAll(ctx context.Context) ([]*entity.Announcement, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No record has ever been written.
			return nil, nil
		}
		return nil, fmt.Errorf("AnnouncementFileRepository.ListAll: reading storage dir: %w", err)
	}

	announcements := make([]*entity.Announcement, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		a, err := r.GetByID(ctx, id)
		if err != nil {
			// A corrupt record never fails the whole listing.
			r.logger.Warn("Skipping unreadable announcement record",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}
