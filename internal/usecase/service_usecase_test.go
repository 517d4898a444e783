package usecase_test

import (
	"context"
	"testing"

	"go-careers-cms/internal/domain"
	"go-careers-cms/internal/usecase"
	"go-careers-cms/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleSection() *domain.ServiceSection {
	return &domain.ServiceSection{
		ID: primitive.NewObjectID(),
		Header: domain.ServiceHeader{
			Title:       domain.Localized{En: "Web Development", Ar: "تطوير الويب"},
			Subtitle:    domain.Localized{En: "Sub", Ar: "فرعي"},
			Description: domain.Localized{En: "Desc", Ar: "وصف"},
		},
		Services: []domain.ServiceItem{
			{
				ItemID: primitive.NewObjectID(),
				Title:  domain.Localized{En: "Landing pages", Ar: "صفحات الهبوط"},
				Order:  1,
			},
		},
		IsActive: true,
		CustomID: "s1x2y",
		Version:  1,
	}
}

func itemInput(order int) domain.ServiceItemInput {
	return domain.ServiceItemInput{
		Title:       domain.Localized{En: "Online stores", Ar: "متاجر إلكترونية"},
		Category:    domain.Localized{En: "E-commerce", Ar: "تجارة إلكترونية"},
		Description: domain.Localized{En: "Storefronts", Ar: "واجهات متاجر"},
		Order:       order,
	}
}

func pngUpload() *domain.FileUpload {
	return &domain.FileUpload{Name: "item.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}}
}

func cloneSection(s *domain.ServiceSection) *domain.ServiceSection {
	c := *s
	c.Services = append([]domain.ServiceItem(nil), s.Services...)
	c.Reviews = append([]domain.Review(nil), s.Reviews...)
	return &c
}

func TestServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Should upload once and append the item", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)
		store.On("Upload", ctx, mock.Anything, "item.png", mock.Anything).
			Return("https://cdn/item.png", "Services/ab1cd/item.png", nil)
		repo.On("ReplaceVersioned", ctx, section).Return(nil)

		updated, err := uc.AddItem(ctx, section.ID.Hex(), itemInput(2), pngUpload())
		assert.NoError(t, err)
		assert.Len(t, updated.Services, 2)
		store.AssertNumberOfCalls(t, "Upload", 1)
	})

	t.Run("Should reject a duplicate order without uploading", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)

		_, err := uc.AddItem(ctx, section.ID.Hex(), itemInput(1), pngUpload())
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		assert.Equal(t, "Order number 1 is already taken by another service in this section", appErr.Message)
		store.AssertNotCalled(t, "Upload")
		repo.AssertNotCalled(t, "ReplaceVersioned")
	})

	t.Run("Should reject order below one without uploading", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)

		_, err := uc.AddItem(ctx, section.ID.Hex(), itemInput(0), pngUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Order must be at least 1")
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("Should require category and description on both legs", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)

		input := itemInput(2)
		input.Category.Ar = ""

		_, err := uc.AddItem(ctx, section.ID.Hex(), input, pngUpload())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "category and description (en & ar) are required")
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("Should reject a missing image before uploading", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)

		_, err := uc.AddItem(ctx, section.ID.Hex(), itemInput(2), nil)
		assert.Error(t, err)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("Should retry once on a version conflict", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		// Each read gets its own copy, like a real re-read would.
		base := sampleSection()
		preRead := cloneSection(base)
		firstAttempt := cloneSection(base)
		secondAttempt := cloneSection(base)
		repo.On("GetByID", ctx, base.ID).Return(preRead, nil).Once()
		repo.On("GetByID", ctx, base.ID).Return(firstAttempt, nil).Once()
		repo.On("GetByID", ctx, base.ID).Return(secondAttempt, nil).Once()
		store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn/item.png", "key", nil)
		repo.On("ReplaceVersioned", ctx, firstAttempt).Return(domain.ErrVersionConflict).Once()
		repo.On("ReplaceVersioned", ctx, secondAttempt).Return(nil).Once()

		_, err := uc.AddItem(ctx, base.ID.Hex(), itemInput(2), pngUpload())
		assert.NoError(t, err)
		repo.AssertNumberOfCalls(t, "ReplaceVersioned", 2)
	})
}

func TestServiceAddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fold ratings into the running average", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)
		repo.On("ReplaceVersioned", ctx, section).Return(nil)

		for i, tc := range []struct {
			rating  float64
			wantAvg float64
		}{
			{4, 4.0},
			{5, 4.5},
			{3, 4.0},
		} {
			_, err := uc.AddReview(ctx, section.ID.Hex(), domain.ReviewInput{
				AuthorName: "Reviewer",
				Rating:     tc.rating,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.wantAvg, section.RatingValue)
			assert.Equal(t, i+1, section.ReviewCount)
		}
		assert.Len(t, section.Reviews, 3)
	})

	t.Run("Should reject ratings outside 1..5", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		_, err := uc.AddReview(ctx, primitive.NewObjectID().Hex(), domain.ReviewInput{
			AuthorName: "Reviewer",
			Rating:     6,
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Should scope screenshots to the section folder", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)
		repo.On("ReplaceVersioned", ctx, section).Return(nil)
		store.On("Upload", ctx, "Services/s1x2y/Reviews", "shot.png", mock.Anything).
			Return("https://cdn/shot.png", "key", nil)

		review, err := uc.AddReview(ctx, section.ID.Hex(), domain.ReviewInput{
			AuthorName:  "Reviewer",
			Rating:      5,
			Screenshots: []*domain.FileUpload{{Name: "shot.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}}},
		})
		assert.NoError(t, err)
		assert.Len(t, review.Screenshots, 1)
		store.AssertExpectations(t)
	})
}

func TestServiceCreateSection(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject duplicate orders in the payload before uploading", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		repo.On("GetByTitle", ctx, "Web Development").Return(nil, domain.ErrNotFound)

		input := domain.CreateSectionInput{
			Header: domain.ServiceHeader{
				Title:       domain.Localized{En: "Web Development", Ar: "تطوير الويب"},
				Subtitle:    domain.Localized{En: "Sub", Ar: "فرعي"},
				Description: domain.Localized{En: "Desc", Ar: "وصف"},
			},
			Items:      []domain.ServiceItemInput{itemInput(1), itemInput(1)},
			ItemImages: []*domain.FileUpload{pngUpload(), pngUpload()},
		}

		_, err := uc.CreateSection(ctx, input)
		assert.Error(t, err)
		store.AssertNotCalled(t, "Upload")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should append items to an existing section with the same title", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByTitle", ctx, "Web Development").Return(section, nil)
		repo.On("GetByID", ctx, section.ID).Return(section, nil)
		store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn/item.png", "key", nil)
		repo.On("ReplaceVersioned", ctx, section).Return(nil)

		input := domain.CreateSectionInput{
			Header: domain.ServiceHeader{
				Title:       domain.Localized{En: "Web Development", Ar: "تطوير الويب"},
				Subtitle:    domain.Localized{En: "Sub", Ar: "فرعي"},
				Description: domain.Localized{En: "Desc", Ar: "وصف"},
			},
			Items:      []domain.ServiceItemInput{itemInput(2)},
			ItemImages: []*domain.FileUpload{pngUpload()},
		}

		updated, err := uc.CreateSection(ctx, input)
		assert.NoError(t, err)
		assert.Len(t, updated.Services, 2)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestServiceDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Should release the item image and remove the item", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		section.Services[0].Image = domain.Attachment{FileURL: "https://cdn/item.png", FileID: "key"}
		itemID := section.Services[0].ItemID

		repo.On("GetByID", ctx, section.ID).Return(section, nil)
		store.On("Delete", ctx, "key").Return(nil)
		repo.On("ReplaceVersioned", ctx, section).Return(nil)

		updated, err := uc.DeleteItem(ctx, section.ID.Hex(), itemID.Hex())
		assert.NoError(t, err)
		assert.Empty(t, updated.Services)
		store.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("Should fail on an unknown item", func(t *testing.T) {
		repo := new(MockServiceRepo)
		store := new(MockStore)
		uc := usecase.NewServiceUsecase(repo, store)

		section := sampleSection()
		repo.On("GetByID", ctx, section.ID).Return(section, nil)

		_, err := uc.DeleteItem(ctx, section.ID.Hex(), primitive.NewObjectID().Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Service item not found")
	})
}
