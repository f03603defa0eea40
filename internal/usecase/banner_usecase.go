package usecase

import (
	"context"
	"fmt"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/actionlog"
	"github.com/42roma/monitor/internal/port/repository"
	"go.uber.org/zap"
)

// BannerUseCase manages the sitewide notice bar. Reading the banner is
// public (the dashboard map shows it); changing it is admin-only.
type BannerUseCase struct {
	repo      repository.BannerRepository
	actionLog actionlog.Logger
	logger    *zap.Logger
}

func NewBannerUseCase(repo repository.BannerRepository, actionLog actionlog.Logger, logger *zap.Logger) *BannerUseCase {
	return &BannerUseCase{repo: repo, actionLog: actionLog, logger: logger}
}

func (uc *BannerUseCase) Current(ctx context.Context) (*entity.Banner, error) {
	banner, err := uc.repo.Get(ctx)
	if err != nil {
		uc.logger.Error("Failed to load banner", zap.Error(err))
		return nil, fmt.Errorf("BannerUseCase.Current: loading banner: %w", err)
	}
	return banner, nil
}

func (uc *BannerUseCase) requireAdmin(ctx context.Context, caller *entity.Identity, attempt string) error {
	if caller == nil {
		return ErrLoginRequired
	}
	if !caller.IsAdmin() {
		uc.actionLog.Log(ctx, caller.DisplayLogin(), attempt)
		uc.logger.Warn("Banner management denied", zap.String("login", caller.DisplayLogin()))
		return ErrForbidden
	}
	return nil
}

func (uc *BannerUseCase) GetForManage(ctx context.Context, caller *entity.Identity) (*entity.Banner, error) {
	if err := uc.requireAdmin(ctx, caller, "unauthorized banner management attempt"); err != nil {
		return nil, err
	}
	return uc.Current(ctx)
}

func (uc *BannerUseCase) Update(ctx context.Context, caller *entity.Identity, visible bool, text string) (*entity.Banner, error) {
	if err := uc.requireAdmin(ctx, caller, "unauthorized banner update attempt"); err != nil {
		return nil, err
	}

	banner := &entity.Banner{Visible: visible, Text: text}
	if err := uc.repo.Put(ctx, banner); err != nil {
		uc.logger.Error("Failed to save banner", zap.Error(err))
		return nil, fmt.Errorf("BannerUseCase.Update: saving banner: %w", err)
	}

	uc.actionLog.Log(ctx, caller.DisplayLogin(), "updated the banner")
	uc.logger.Info("Banner updated", zap.String("login", caller.Login), zap.Bool("visible", visible))
	return banner, nil
}
