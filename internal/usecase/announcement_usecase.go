package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/42roma/monitor/internal/authz"
	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/idgen"
	"github.com/42roma/monitor/internal/port/actionlog"
	"github.com/42roma/monitor/internal/port/cache"
	"github.com/42roma/monitor/internal/port/repository"
	"go.uber.org/zap"
)

// ErrLoginRequired means no caller identity was supplied; the web layer
// answers with a redirect to the login flow.
var ErrLoginRequired = errors.New("login required")

// ErrForbidden means the caller identity is known but not permitted.
var ErrForbidden = errors.New("forbidden")

// ValidationError reports the required announcement fields that were empty.
// The web layer re-renders the form with the submitted values preserved.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// EventPublisherInterface broadcasts announcement lifecycle events. A nil
// publisher disables broadcasting.
type EventPublisherInterface interface {
	PublishAnnouncementCreated(ctx context.Context, announcement *entity.Announcement) error
	PublishAnnouncementUpdated(ctx context.Context, announcement *entity.Announcement) error
}

const activeAnnouncementsCacheKey = "announcements:active"

const activeAnnouncementsCacheTTL = 30 * time.Second

type AnnouncementUseCase struct {
	repo      repository.AnnouncementRepository
	policy    *authz.Policy
	cacheRepo cache.CacheRepository
	publisher EventPublisherInterface
	actionLog actionlog.Logger
	logger    *zap.Logger

	// Overridable in tests.
	now   func() time.Time
	newID func() (string, error)
}

func NewAnnouncementUseCase(
	repo repository.AnnouncementRepository,
	policy *authz.Policy,
	cacheRepo cache.CacheRepository,
	publisher EventPublisherInterface,
	actionLog actionlog.Logger,
	logger *zap.Logger,
) *AnnouncementUseCase {
	return &AnnouncementUseCase{
		repo:      repo,
		policy:    policy,
		cacheRepo: cacheRepo,
		publisher: publisher,
		actionLog: actionLog,
		logger:    logger,
		now:       time.Now,
		newID:     idgen.New,
	}
}

// AnnouncementInput carries the user-editable fields of an announcement, as
// submitted by the dashboard form.
type AnnouncementInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Color       string
	Link        string
}

func decisionErr(d authz.Decision) error {
	switch d {
	case authz.RedirectToLogin:
		return ErrLoginRequired
	case authz.Forbidden:
		return ErrForbidden
	default:
		return nil
	}
}

func validateInput(input *AnnouncementInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	input.Link = strings.TrimSpace(input.Link)

	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if input.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	return nil
}

// applyInput writes the user-editable fields onto a, leaving ID, CreatedBy
// and CreatedAt untouched. The description is clamped, an empty link becomes
// absent and an empty colour falls back to the default.
func applyInput(a *entity.Announcement, input *AnnouncementInput) {
	a.Title = input.Title
	a.Description = entity.TruncateDescription(input.Description)
	a.StartDate = input.StartDate
	a.EndDate = input.EndDate
	if input.Color != "" {
		a.Color = input.Color
	} else if a.Color == "" {
		a.Color = entity.DefaultColor
	}
	if input.Link != "" {
		link := input.Link
		a.Link = &link
	} else {
		a.Link = nil
	}
}

// CreateAnnouncement authorizes the caller, validates and normalizes the
// fields, stamps authorship, and persists a new record under a fresh id.
func (uc *AnnouncementUseCase) CreateAnnouncement(ctx context.Context, caller *entity.Identity, remoteAddr string, input AnnouncementInput) (*entity.Announcement, error) {
	dec := uc.policy.Authorize(ctx, authz.Request{
		Caller:     caller,
		Action:     authz.ActionCreate,
		RemoteAddr: remoteAddr,
	})
	if err := decisionErr(dec); err != nil {
		return nil, err
	}

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	id, err := uc.newID()
	if err != nil {
		uc.logger.Error("Failed to generate announcement id", zap.Error(err))
		return nil, fmt.Errorf("AnnouncementUseCase.CreateAnnouncement: generating id: %w", err)
	}

	announcement := &entity.Announcement{
		ID:        id,
		CreatedBy: caller.Login,
		CreatedAt: uc.now().UTC(),
	}
	applyInput(announcement, &input)

	if err := uc.repo.Put(ctx, id, announcement); err != nil {
		uc.logger.Error("Failed to persist announcement", zap.Error(err), zap.String("announcement_id", id))
		return nil, fmt.Errorf("AnnouncementUseCase.CreateAnnouncement: persisting announcement: %w", err)
	}

	uc.actionLog.Log(ctx, caller.DisplayLogin(), fmt.Sprintf("created announcement %s", id))
	uc.logger.Info("Announcement created",
		zap.String("announcement_id", id),
		zap.String("created_by", caller.Login),
	)

	uc.invalidateActiveCache(ctx)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAnnouncementCreated(ctx, announcement); errPub != nil {
			uc.logger.Warn("Failed to publish announcement created event",
				zap.Error(errPub),
				zap.String("announcement_id", id),
			)
		}
	}

	return announcement, nil
}

// ListAnnouncements returns the staff-facing listing: every record for an
// admin, only the caller's own records otherwise, newest start date first.
func (uc *AnnouncementUseCase) ListAnnouncements(ctx context.Context, caller *entity.Identity, remoteAddr string) ([]*entity.Announcement, error) {
	dec := uc.policy.Authorize(ctx, authz.Request{
		Caller:     caller,
		Action:     authz.ActionList,
		RemoteAddr: remoteAddr,
	})
	if err := decisionErr(dec); err != nil {
		return nil, err
	}

	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list announcements", zap.Error(err))
		return nil, fmt.Errorf("AnnouncementUseCase.ListAnnouncements: listing announcements: %w", err)
	}

	announcements := all
	if !caller.IsAdmin() {
		announcements = announcements[:0:0]
		for _, a := range all {
			if a.CreatedBy == caller.Login {
				announcements = append(announcements, a)
			}
		}
	}

	// ISO-8601 strings order lexicographically, so a plain string sort is
	// chronological.
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].StartDate > announcements[j].StartDate
	})
	return announcements, nil
}

// GetAnnouncementForEdit loads a record for the edit form. Unknown ids are
// repository.ErrNotFound regardless of the caller's role; non-admins may only
// fetch their own records.
func (uc *AnnouncementUseCase) GetAnnouncementForEdit(ctx context.Context, caller *entity.Identity, remoteAddr, id string) (*entity.Announcement, error) {
	dec := uc.policy.Authorize(ctx, authz.Request{
		Caller:     caller,
		Action:     authz.ActionEdit,
		RemoteAddr: remoteAddr,
	})
	if err := decisionErr(dec); err != nil {
		return nil, err
	}

	announcement, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to load announcement", zap.Error(err), zap.String("announcement_id", id))
		}
		return nil, fmt.Errorf("AnnouncementUseCase.GetAnnouncementForEdit: loading announcement: %w", err)
	}

	dec = uc.policy.Authorize(ctx, authz.Request{
		Caller:     caller,
		Action:     authz.ActionEdit,
		Target:     announcement,
		RemoteAddr: remoteAddr,
	})
	if err := decisionErr(dec); err != nil {
		return nil, err
	}
	return announcement, nil
}

// EditAnnouncement applies the same validation and normalization as create
// while preserving id, authorship and the creation stamp.
func (uc *AnnouncementUseCase) EditAnnouncement(ctx context.Context, caller *entity.Identity, remoteAddr, id string, input AnnouncementInput) (*entity.Announcement, error) {
	announcement, err := uc.GetAnnouncementForEdit(ctx, caller, remoteAddr, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	applyInput(announcement, &input)
	updatedAt := uc.now().UTC()
	announcement.UpdatedAt = &updatedAt

	if err := uc.repo.Put(ctx, id, announcement); err != nil {
		uc.logger.Error("Failed to persist announcement update", zap.Error(err), zap.String("announcement_id", id))
		return nil, fmt.Errorf("AnnouncementUseCase.EditAnnouncement: persisting announcement: %w", err)
	}

	uc.actionLog.Log(ctx, caller.DisplayLogin(), fmt.Sprintf("updated announcement %s", id))
	uc.logger.Info("Announcement updated",
		zap.String("announcement_id", id),
		zap.String("updated_by", caller.Login),
	)

	uc.invalidateActiveCache(ctx)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAnnouncementUpdated(ctx, announcement); errPub != nil {
			uc.logger.Warn("Failed to publish announcement updated event",
				zap.Error(errPub),
				zap.String("announcement_id", id),
			)
		}
	}

	return announcement, nil
}

// ActiveAnnouncements is the public dashboard view: announcements whose
// window contains now, earliest start date first. Records with missing or
// unparseable dates are excluded. The result is cached briefly; any cache
// failure falls back to the record store.
func (uc *AnnouncementUseCase) ActiveAnnouncements(ctx context.Context, now time.Time) ([]*entity.Announcement, error) {
	if uc.cacheRepo != nil {
		cachedBytes, err := uc.cacheRepo.Get(ctx, activeAnnouncementsCacheKey)
		if err == nil {
			var cached []*entity.Announcement
			if unmarshalErr := json.Unmarshal(cachedBytes, &cached); unmarshalErr == nil {
				uc.logger.Debug("Active announcements served from cache")
				return cached, nil
			}
			uc.logger.Warn("Failed to unmarshal active announcements from cache")
			if delErr := uc.cacheRepo.Delete(ctx, activeAnnouncementsCacheKey); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted cache entry", zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to read active announcements from cache", zap.Error(err))
		}
	}

	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to list announcements for dashboard", zap.Error(err))
		return nil, fmt.Errorf("AnnouncementUseCase.ActiveAnnouncements: listing announcements: %w", err)
	}

	active := make([]*entity.Announcement, 0, len(all))
	for _, a := range all {
		if a.IsActive(now) {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartDate < active[j].StartDate
	})

	if uc.cacheRepo != nil {
		if data, marshalErr := json.Marshal(active); marshalErr == nil {
			if setErr := uc.cacheRepo.Set(ctx, activeAnnouncementsCacheKey, data, activeAnnouncementsCacheTTL); setErr != nil {
				uc.logger.Warn("Failed to cache active announcements", zap.Error(setErr))
			}
		}
	}

	return active, nil
}

func (uc *AnnouncementUseCase) invalidateActiveCache(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, activeAnnouncementsCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate active announcements cache", zap.Error(err))
	}
}
