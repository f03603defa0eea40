package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// MaintenanceFileRepository keeps the list of PCs flagged for maintenance in
// a single JSON array document.
type MaintenanceFileRepository struct {
	path string

	mu sync.Mutex
}

func NewMaintenanceFileRepository(path string) *MaintenanceFileRepository {
	return &MaintenanceFileRepository{path: path}
}

func (r *MaintenanceFileRepository) List(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("MaintenanceFileRepository.List: reading maintenance file: %w", err)
	}

	var pcs []string
	if err := json.Unmarshal(data, &pcs); err != nil {
		return nil, fmt.Errorf("MaintenanceFileRepository.List: decoding maintenance file: %w", err)
	}
	return pcs, nil
}

func (r *MaintenanceFileRepository) Put(ctx context.Context, pcs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pcs == nil {
		pcs = []string{}
	}
	data, err := json.MarshalIndent(pcs, "", "    ")
	if err != nil {
		return fmt.Errorf("MaintenanceFileRepository.Put: marshaling maintenance list: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("MaintenanceFileRepository.Put: writing maintenance file: %w", err)
	}
	return nil
}
