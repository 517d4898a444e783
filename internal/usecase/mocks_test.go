package usecase_test

import (
	"context"
	"os"
	"testing"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/logger"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockCareerRepo struct {
	mock.Mock
}

func (m *MockCareerRepo) Create(ctx context.Context, career *domain.Career) error {
	return m.Called(ctx, career).Error(0)
}
func (m *MockCareerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Career, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Career), args.Error(1)
}
func (m *MockCareerRepo) List(ctx context.Context, filter domain.CareerFilter) ([]domain.Career, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Career), args.Error(1)
}
func (m *MockCareerRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Career, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Career), args.Error(1)
}
func (m *MockCareerRepo) Update(ctx context.Context, career *domain.Career) error {
	return m.Called(ctx, career).Error(0)
}
func (m *MockCareerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCareerRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByCareer(ctx context.Context, careerID primitive.ObjectID) ([]domain.Application, error) {
	args := m.Called(ctx, careerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Application, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Application, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, email string, careerID *primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, email, careerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockServiceRepo struct {
	mock.Mock
}

func (m *MockServiceRepo) Create(ctx context.Context, section *domain.ServiceSection) error {
	return m.Called(ctx, section).Error(0)
}
func (m *MockServiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ServiceSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceSection), args.Error(1)
}
func (m *MockServiceRepo) GetByTitle(ctx context.Context, titleEn string) (*domain.ServiceSection, error) {
	args := m.Called(ctx, titleEn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceSection), args.Error(1)
}
func (m *MockServiceRepo) List(ctx context.Context) ([]domain.ServiceSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceSection), args.Error(1)
}
func (m *MockServiceRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.ServiceSection, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceSection), args.Error(1)
}
func (m *MockServiceRepo) ReplaceVersioned(ctx context.Context, section *domain.ServiceSection) error {
	return m.Called(ctx, section).Error(0)
}
func (m *MockServiceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockServiceRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockStore fakes the attachment store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upload(ctx context.Context, folder, filename string, data []byte) (string, string, error) {
	args := m.Called(ctx, folder, filename, data)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockStore) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}
