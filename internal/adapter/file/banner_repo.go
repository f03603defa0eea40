package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/42roma/monitor/internal/entity"
)

// BannerFileRepository keeps the sitewide banner in a single JSON document.
// Until the first save, Get serves the configured default.
type BannerFileRepository struct {
	path     string
	defaults entity.Banner

	mu sync.Mutex
}

func NewBannerFileRepository(path string, defaults entity.Banner) *BannerFileRepository {
	return &BannerFileRepository{path: path, defaults: defaults}
}

func (r *BannerFileRepository) Get(ctx context.Context) (*entity.Banner, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b := r.defaults
			return &b, nil
		}
		return nil, fmt.Errorf("BannerFileRepository.Get: reading banner file: %w", err)
	}

	var banner entity.Banner
	if err := json.Unmarshal(data, &banner); err != nil {
		return nil, fmt.Errorf("BannerFileRepository.Get: decoding banner file: %w", err)
	}
	return &banner, nil
}

func (r *BannerFileRepository) Put(ctx context.Context, banner *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(banner, "", "    ")
	if err != nil {
		return fmt.Errorf("BannerFileRepository.Put: marshaling banner: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("BannerFileRepository.Put: writing banner file: %w", err)
	}
	return nil
}
