package usecase

import (
	"context"
	"errors"
	"path"
	"strings"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/shortid"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const cvFolder = "Careers/CVs"

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	careerRepo      domain.CareerRepository
	attachments     domain.AttachmentStore
	strictFlow      bool
}

// NewApplicationUsecase creates the application lifecycle manager.
// strictFlow enforces forward-only status transitions; the default
// (false) allows any status to move to any other.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	careerRepo domain.CareerRepository,
	attachments domain.AttachmentStore,
	strictFlow bool,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		careerRepo:      careerRepo,
		attachments:     attachments,
		strictFlow:      strictFlow,
	}
}

// Submit validates a submission, stores the CV and creates the record in
// Pending status. The CV is uploaded before the insert; if the insert then
// hits the (email, career) unique index the uploaded blob is left behind.
// Accepted limitation of the at-least-once attachment store.
func (uc *applicationUsecase) Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error) {
	if input.FullName == "" || input.Email == "" || input.Phone == "" {
		return nil, apperror.BadRequest("All fields are required")
	}
	if input.CV == nil || len(input.CV.Data) == 0 {
		return nil, apperror.BadRequest("CV file is required")
	}

	var careerID *primitive.ObjectID
	if input.CareerID != "" {
		id, err := primitive.ObjectIDFromHex(input.CareerID)
		if err != nil {
			return nil, apperror.BadRequest("Invalid career ID")
		}
		career, err := uc.careerRepo.GetByID(ctx, id)
		if err != nil || !career.IsActive {
			return nil, apperror.NotFound("Career not available")
		}
		careerID = &id
	}

	customID := shortid.New()
	fileURL, fileID, err := uc.attachments.Upload(ctx, path.Join(cvFolder, customID), input.CV.Name, input.CV.Data)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		CareerID: careerID,
		FullName: input.FullName,
		Email:    strings.ToLower(input.Email),
		Phone:    input.Phone,
		CV:       domain.Attachment{FileURL: fileURL, FileID: fileID},
		CustomID: customID,
		Status:   domain.ApplicationStatusPending,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You already applied for this position")
		}
		return nil, apperror.Internal(err)
	}

	return app, nil
}

// ListAll returns every application, newest first, with a title-only career
// projection attached.
func (uc *applicationUsecase) ListAll(ctx context.Context) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.populate(ctx, apps, false); err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByCareer returns applications for one career, newest first, with a
// wider career projection. An empty result is a NotFound condition: callers
// distinguish "no applicants" from "unknown career" only through this error.
func (uc *applicationUsecase) ListByCareer(ctx context.Context, careerID string) ([]domain.Application, error) {
	id, err := primitive.ObjectIDFromHex(careerID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid career ID")
	}

	apps, err := uc.applicationRepo.ListByCareer(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(apps) == 0 {
		return nil, apperror.NotFound("No applications found for this job")
	}

	if err := uc.populate(ctx, apps, true); err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Get returns one application with the full career document resolved.
func (uc *applicationUsecase) Get(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid application ID")
	}

	app, err := uc.applicationRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}

	detail := &domain.ApplicationDetail{Application: app}
	if app.CareerID != nil {
		if career, err := uc.careerRepo.GetByID(ctx, *app.CareerID); err == nil {
			detail.Career = career
		}
	}
	return detail, nil
}

// SetStatus updates the application status. All four statuses are mutually
// reachable unless strict flow is enabled.
func (uc *applicationUsecase) SetStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be: Pending, Reviewed, Accepted or Rejected")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid application ID")
	}

	app, err := uc.applicationRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}

	if uc.strictFlow && !strictTransitionAllowed(app.Status, status) {
		return nil, apperror.BadRequest("Status cannot move from " + app.Status + " to " + status)
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, oid, status)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	return updated, nil
}

// strictTransitionAllowed enforces the forward-only graph used when
// STRICT_STATUS_FLOW is enabled: Pending → Reviewed → Accepted/Rejected.
func strictTransitionAllowed(from, to string) bool {
	switch from {
	case domain.ApplicationStatusPending:
		return to == domain.ApplicationStatusReviewed
	case domain.ApplicationStatusReviewed:
		return to == domain.ApplicationStatusAccepted || to == domain.ApplicationStatusRejected
	}
	return false
}

// Delete releases the CV attachment and removes the record. A failed
// attachment release is surfaced in the log but never blocks the delete;
// the record is the source of truth.
func (uc *applicationUsecase) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid application ID")
	}

	app, err := uc.applicationRepo.GetByID(ctx, oid)
	if err != nil {
		return apperror.NotFound("Application not found")
	}

	uc.releaseCV(ctx, app)

	if err := uc.applicationRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// BulkDelete removes every application that resolves from ids, releasing
// each CV first, and reports the count actually deleted.
func (uc *applicationUsecase) BulkDelete(ctx context.Context, ids []string) (int, error) {
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

	apps, err := uc.applicationRepo.FindByIDs(ctx, oids)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if len(apps) == 0 {
		return 0, apperror.NotFound("No applications found to delete")
	}

	deleted := 0
	for i := range apps {
		uc.releaseCV(ctx, &apps[i])
		if err := uc.applicationRepo.Delete(ctx, apps[i].ID); err != nil {
			logger.Log.Warn("bulk delete: record removal failed",
				"application_id", apps[i].ID.Hex(), "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (uc *applicationUsecase) releaseCV(ctx context.Context, app *domain.Application) {
	if !app.CV.Present() {
		return
	}
	if err := uc.attachments.Delete(ctx, app.CV.FileID); err != nil {
		logger.Log.Warn("failed to release CV attachment",
			"application_id", app.ID.Hex(), "file_id", app.CV.FileID, "error", err)
	}
}

// populate resolves career references to summaries. wide includes
// department, location and employment type alongside the title.
func (uc *applicationUsecase) populate(ctx context.Context, apps []domain.Application, wide bool) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for i := range apps {
		if apps[i].CareerID != nil {
			idSet[*apps[i].CareerID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	careers, err := uc.careerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*domain.Career, len(careers))
	for i := range careers {
		byID[careers[i].ID] = &careers[i]
	}

	for i := range apps {
		if apps[i].CareerID == nil {
			continue
		}
		career, ok := byID[*apps[i].CareerID]
		if !ok {
			continue
		}
		summary := &domain.CareerSummary{ID: career.ID, Title: career.Title}
		if wide {
			summary.Department = &career.Department
			summary.Location = &career.Location
			summary.EmploymentType = &career.EmploymentType
		}
		apps[i].Career = summary
	}
	return nil
}
