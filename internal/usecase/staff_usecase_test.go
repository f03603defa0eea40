package usecase

import (
	"context"
	"testing"

	"github.com/42roma/monitor/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBannerRepository struct{ mock.Mock }

func (m *MockBannerRepository) Get(ctx context.Context) (*entity.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}
func (m *MockBannerRepository) Put(ctx context.Context, banner *entity.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

type MockMaintenanceRepository struct{ mock.Mock }

func (m *MockMaintenanceRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockMaintenanceRepository) Put(ctx context.Context, pcs []string) error {
	args := m.Called(ctx, pcs)
	return args.Error(0)
}

func TestBannerUpdate_AdminOnly(t *testing.T) {
	repo := new(MockBannerRepository)
	actionLog := new(MockActionLogger)
	uc := NewBannerUseCase(repo, actionLog, zap.NewNop())

	repo.On("Put", mock.Anything, &entity.Banner{Visible: true, Text: "Exam week"}).Return(nil)
	actionLog.On("Log", mock.Anything, "boss", "updated the banner").Return()

	banner, err := uc.Update(context.Background(), adminCaller, true, "Exam week")
	require.NoError(t, err)
	assert.True(t, banner.Visible)
	repo.AssertExpectations(t)
	actionLog.AssertExpectations(t)
}

func TestBannerUpdate_NonAdminForbiddenAndLogged(t *testing.T) {
	repo := new(MockBannerRepository)
	actionLog := new(MockActionLogger)
	uc := NewBannerUseCase(repo, actionLog, zap.NewNop())

	actionLog.On("Log", mock.Anything, "staff1", mock.Anything).Return()

	_, err := uc.Update(context.Background(), staffCaller, true, "Exam week")
	assert.ErrorIs(t, err, ErrForbidden)
	actionLog.AssertExpectations(t)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestBannerUpdate_NoIdentityRedirects(t *testing.T) {
	uc := NewBannerUseCase(new(MockBannerRepository), new(MockActionLogger), zap.NewNop())

	_, err := uc.Update(context.Background(), nil, true, "Exam week")
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestMaintenanceToggle_AddAndRemove(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	actionLog := new(MockActionLogger)
	uc := NewMaintenanceUseCase(repo, actionLog, zap.NewNop())
	ctx := context.Background()

	repo.On("List", mock.Anything).Return([]string{"r1s1p1"}, nil).Once()
	repo.On("Put", mock.Anything, []string{"r1s1p1", "r2s3p4"}).Return(nil).Once()
	actionLog.On("Log", mock.Anything, "boss", "added r2s3p4 to maintenance").Return()

	pcs, err := uc.Toggle(ctx, adminCaller, "r2s3p4", MaintenanceAdd)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1s1p1", "r2s3p4"}, pcs)

	repo.On("List", mock.Anything).Return([]string{"r1s1p1", "r2s3p4"}, nil).Once()
	repo.On("Put", mock.Anything, []string{"r1s1p1"}).Return(nil).Once()
	actionLog.On("Log", mock.Anything, "boss", "removed r2s3p4 from maintenance").Return()

	pcs, err = uc.Toggle(ctx, adminCaller, "r2s3p4", MaintenanceRemove)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1s1p1"}, pcs)
}

func TestMaintenanceToggle_Idempotent(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	uc := NewMaintenanceUseCase(repo, new(MockActionLogger), zap.NewNop())

	repo.On("List", mock.Anything).Return([]string{"r1s1p1"}, nil)

	pcs, err := uc.Toggle(context.Background(), adminCaller, "r1s1p1", MaintenanceAdd)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1s1p1"}, pcs)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestMaintenanceToggle_MissingPCID(t *testing.T) {
	uc := NewMaintenanceUseCase(new(MockMaintenanceRepository), new(MockActionLogger), zap.NewNop())

	_, err := uc.Toggle(context.Background(), adminCaller, "", MaintenanceAdd)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"pc_id"}, validationErr.MissingFields)
}

func TestMaintenanceToggle_NonAdminForbidden(t *testing.T) {
	repo := new(MockMaintenanceRepository)
	actionLog := new(MockActionLogger)
	uc := NewMaintenanceUseCase(repo, actionLog, zap.NewNop())

	actionLog.On("Log", mock.Anything, "staff1", mock.Anything).Return()

	_, err := uc.Toggle(context.Background(), staffCaller, "r1s1p1", MaintenanceAdd)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "List", mock.Anything)
}
