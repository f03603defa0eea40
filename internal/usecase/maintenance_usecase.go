package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/actionlog"
	"github.com/42roma/monitor/internal/port/repository"
	"go.uber.org/zap"
)

// Maintenance toggle actions.
const (
	MaintenanceAdd    = "add"
	MaintenanceRemove = "remove"
)

// MaintenanceUseCase manages the set of PCs flagged for maintenance. The
// dashboard map shows the set publicly; changing it is admin-only.
type MaintenanceUseCase struct {
	repo      repository.MaintenanceRepository
	actionLog actionlog.Logger
	logger    *zap.Logger
}

func NewMaintenanceUseCase(repo repository.MaintenanceRepository, actionLog actionlog.Logger, logger *zap.Logger) *MaintenanceUseCase {
	return &MaintenanceUseCase{repo: repo, actionLog: actionLog, logger: logger}
}

func (uc *MaintenanceUseCase) Current(ctx context.Context) ([]string, error) {
	pcs, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load maintenance list", zap.Error(err))
		return nil, fmt.Errorf("MaintenanceUseCase.Current: loading maintenance list: %w", err)
	}
	return pcs, nil
}

func (uc *MaintenanceUseCase) requireAdmin(ctx context.Context, caller *entity.Identity, attempt string) error {
	if caller == nil {
		return ErrLoginRequired
	}
	if !caller.IsAdmin() {
		uc.actionLog.Log(ctx, caller.DisplayLogin(), attempt)
		uc.logger.Warn("Maintenance management denied", zap.String("login", caller.DisplayLogin()))
		return ErrForbidden
	}
	return nil
}

func (uc *MaintenanceUseCase) ListForStaff(ctx context.Context, caller *entity.Identity) ([]string, error) {
	if err := uc.requireAdmin(ctx, caller, "unauthorized staff page access attempt"); err != nil {
		return nil, err
	}
	return uc.Current(ctx)
}

// Toggle adds or removes a PC from the maintenance set. Both directions are
// idempotent; the updated set is returned.
func (uc *MaintenanceUseCase) Toggle(ctx context.Context, caller *entity.Identity, pcID, action string) ([]string, error) {
	if err := uc.requireAdmin(ctx, caller, "unauthorized maintenance change attempt"); err != nil {
		return nil, err
	}
	if pcID == "" {
		return nil, &ValidationError{MissingFields: []string{"pc_id"}}
	}

	pcs, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(pcs, pcID)
	switch {
	case action == MaintenanceRemove && idx >= 0:
		pcs = slices.Delete(pcs, idx, idx+1)
		uc.actionLog.Log(ctx, caller.DisplayLogin(), fmt.Sprintf("removed %s from maintenance", pcID))
	case action == MaintenanceAdd && idx < 0:
		pcs = append(pcs, pcID)
		uc.actionLog.Log(ctx, caller.DisplayLogin(), fmt.Sprintf("added %s to maintenance", pcID))
	default:
		// Already in the requested state.
		return pcs, nil
	}

	if err := uc.repo.Put(ctx, pcs); err != nil {
		uc.logger.Error("Failed to save maintenance list", zap.Error(err))
		return nil, fmt.Errorf("MaintenanceUseCase.Toggle: saving maintenance list: %w", err)
	}
	return pcs, nil
}
