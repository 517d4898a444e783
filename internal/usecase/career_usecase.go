package usecase

import (
	"context"
	"errors"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/shortid"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type careerUsecase struct {
	careerRepo domain.CareerRepository
}

// NewCareerUsecase creates the career lifecycle manager.
func NewCareerUsecase(careerRepo domain.CareerRepository) domain.CareerUsecase {
	return &careerUsecase{careerRepo: careerRepo}
}

// Create validates the required bilingual fields and persists the posting,
// active by default.
func (uc *careerUsecase) Create(ctx context.Context, career *domain.Career) (*domain.Career, error) {
	if !career.Title.Complete() || !career.Department.Complete() ||
		!career.Location.Complete() || !career.EmploymentType.Complete() {
		return nil, apperror.BadRequest("title, department, location and employment type (en & ar) are required")
	}

	career.IsActive = true
	career.CustomID = shortid.New()

	if err := uc.careerRepo.Create(ctx, career); err != nil {
		return nil, apperror.Internal(err)
	}
	return career, nil
}

func (uc *careerUsecase) List(ctx context.Context, filter domain.CareerFilter) ([]domain.Career, error) {
	careers, err := uc.careerRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return careers, nil
}

// ListByLanguage projects every posting into a single language.
func (uc *careerUsecase) ListByLanguage(ctx context.Context, lang string) ([]domain.CareerView, error) {
	careers, err := uc.careerRepo.List(ctx, domain.CareerFilter{})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]domain.CareerView, 0, len(careers))
	for i := range careers {
		c := &careers[i]
		views = append(views, domain.CareerView{
			ID:               c.ID,
			Title:            c.Title.Pick(lang),
			Department:       c.Department.Pick(lang),
			Location:         c.Location.Pick(lang),
			EmploymentType:   c.EmploymentType.Pick(lang),
			ShortDescription: c.ShortDescription.Pick(lang),
			Description:      c.Description.Pick(lang),
			Responsibilities: c.Responsibilities.PickList(lang),
			Requirements:     c.Requirements.PickList(lang),
			IsActive:         c.IsActive,
			Order:            c.Order,
		})
	}
	return views, nil
}

func (uc *careerUsecase) Get(ctx context.Context, id string) (*domain.Career, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid career ID")
	}
	career, err := uc.careerRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Career not found")
	}
	return career, nil
}

// Update applies partial changes; only provided fields are touched.
func (uc *careerUsecase) Update(ctx context.Context, id string, input domain.UpdateCareerInput) (*domain.Career, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid career ID")
	}
	career, err := uc.careerRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Career not found")
	}

	if input.Title != nil {
		career.Title = *input.Title
	}
	if input.Department != nil {
		career.Department = *input.Department
	}
	if input.Location != nil {
		career.Location = *input.Location
	}
	if input.EmploymentType != nil {
		career.EmploymentType = *input.EmploymentType
	}
	if input.ShortDescription != nil {
		career.ShortDescription = *input.ShortDescription
	}
	if input.Description != nil {
		career.Description = *input.Description
	}
	if input.Responsibilities != nil {
		career.Responsibilities = *input.Responsibilities
	}
	if input.Requirements != nil {
		career.Requirements = *input.Requirements
	}
	if input.IsActive != nil {
		career.IsActive = *input.IsActive
	}
	if input.Order != nil {
		career.Order = *input.Order
	}

	if err := uc.careerRepo.Update(ctx, career); err != nil {
		return nil, apperror.Internal(err)
	}
	return career, nil
}

// ToggleActive flips the active flag; toggling twice restores the original
// value.
func (uc *careerUsecase) ToggleActive(ctx context.Context, id string) (*domain.Career, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid career ID")
	}
	career, err := uc.careerRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Career not found")
	}

	career.IsActive = !career.IsActive
	if err := uc.careerRepo.Update(ctx, career); err != nil {
		return nil, apperror.Internal(err)
	}
	return career, nil
}

func (uc *careerUsecase) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid career ID")
	}
	if err := uc.careerRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Career not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// BulkDelete removes every posting that resolves from ids and reports the
// count actually deleted.
func (uc *careerUsecase) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, apperror.BadRequest("Invalid IDs provided")
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, raw := range ids {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return 0, apperror.BadRequest("Invalid IDs provided")
		}
		oids = append(oids, oid)
	}

	careers, err := uc.careerRepo.FindByIDs(ctx, oids)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if len(careers) == 0 {
		return 0, apperror.NotFound("No careers found to delete")
	}

	deleted := 0
	for i := range careers {
		if err := uc.careerRepo.Delete(ctx, careers[i].ID); err != nil {
			logger.Log.Warn("bulk delete: career removal failed",
				"career_id", careers[i].ID.Hex(), "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
