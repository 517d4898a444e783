package usecase_test

import (
	"context"
	"testing"

	"go-careers-cms/internal/domain"
	"go-careers-cms/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleCareer() *domain.Career {
	return &domain.Career{
		ID:             primitive.NewObjectID(),
		Title:          domain.Localized{En: "Backend Engineer", Ar: "مهندس خلفية"},
		Department:     domain.Localized{En: "Engineering", Ar: "الهندسة"},
		Location:       domain.Localized{En: "Dubai", Ar: "دبي"},
		EmploymentType: domain.Localized{En: "Full-time", Ar: "دوام كامل"},
		IsActive:       true,
	}
}

func TestCareerCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require both language legs of the core fields", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		career := sampleCareer()
		career.Department.Ar = ""

		_, err := uc.Create(ctx, career)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "title, department, location and employment type (en & ar) are required")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should create active postings with a folder ID", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		career := sampleCareer()
		career.IsActive = false
		repo.On("Create", ctx, career).Return(nil)

		created, err := uc.Create(ctx, career)
		assert.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.NotEmpty(t, created.CustomID)
	})
}

func TestCareerToggleActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Should restore the flag after a double toggle", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		career := sampleCareer()
		repo.On("GetByID", ctx, career.ID).Return(career, nil)
		repo.On("Update", ctx, career).Return(nil)

		first, err := uc.ToggleActive(ctx, career.ID.Hex())
		assert.NoError(t, err)
		assert.False(t, first.IsActive)

		second, err := uc.ToggleActive(ctx, career.ID.Hex())
		assert.NoError(t, err)
		assert.True(t, second.IsActive)
	})
}

func TestCareerUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should leave absent fields untouched", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		career := sampleCareer()
		repo.On("GetByID", ctx, career.ID).Return(career, nil)
		repo.On("Update", ctx, career).Return(nil)

		newLocation := domain.Localized{En: "Abu Dhabi", Ar: "أبوظبي"}
		updated, err := uc.Update(ctx, career.ID.Hex(), domain.UpdateCareerInput{Location: &newLocation})
		assert.NoError(t, err)
		assert.Equal(t, "Abu Dhabi", updated.Location.En)
		assert.Equal(t, "Backend Engineer", updated.Title.En)
	})
}

func TestCareerListByLanguage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should project a single language", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		career := sampleCareer()
		repo.On("List", ctx, mock.AnythingOfType("domain.CareerFilter")).Return([]domain.Career{*career}, nil)

		views, err := uc.ListByLanguage(ctx, "ar")
		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, "مهندس خلفية", views[0].Title)
		assert.Equal(t, "دبي", views[0].Location)
	})
}

func TestCareerBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail on empty list before touching the repository", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		_, err := uc.BulkDelete(ctx, []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid IDs provided")
		repo.AssertNotCalled(t, "FindByIDs")
	})

	t.Run("Should fail on malformed IDs", func(t *testing.T) {
		repo := new(MockCareerRepo)
		uc := usecase.NewCareerUsecase(repo)

		_, err := uc.BulkDelete(ctx, []string{"not-an-id"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid IDs provided")
	})
}
