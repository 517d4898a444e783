package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/shortid"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	serviceFolder       = "Services"
	serviceHeaderFolder = "Services/Headers"
)

type serviceUsecase struct {
	serviceRepo domain.ServiceRepository
	attachments domain.AttachmentStore
}

// NewServiceUsecase creates the service catalog manager.
func NewServiceUsecase(serviceRepo domain.ServiceRepository, attachments domain.AttachmentStore) domain.ServiceUsecase {
	return &serviceUsecase{serviceRepo: serviceRepo, attachments: attachments}
}

// mutateSection runs a read-validate-write sequence guarded by the section
// version. On a version miss the section is re-read and the mutation applied
// once more; a second miss surfaces the conflict.
func (uc *serviceUsecase) mutateSection(
	ctx context.Context,
	id primitive.ObjectID,
	mutate func(section *domain.ServiceSection) error,
) (*domain.ServiceSection, error) {
	for attempt := 0; attempt < 2; attempt++ {
		section, err := uc.serviceRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperror.NotFound("Service section not found")
		}
		if err := mutate(section); err != nil {
			return nil, err
		}
		err = uc.serviceRepo.ReplaceVersioned(ctx, section)
		if err == nil {
			return section, nil
		}
		if errors.Is(err, domain.ErrVersionConflict) && attempt == 0 {
			continue
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Service section not found")
		}
		return nil, apperror.Internal(err)
	}
	return nil, apperror.Conflict("Service section was modified concurrently, please retry")
}

func validateItemFields(in domain.ServiceItemInput) error {
	if !in.Title.Complete() || !in.Category.Complete() || !in.Description.Complete() {
		return apperror.BadRequest("title, category and description (en & ar) are required for every service item")
	}
	return nil
}

func validateOrder(section *domain.ServiceSection, order int, excludeID primitive.ObjectID) error {
	if order < 1 {
		return apperror.BadRequest("Order must be at least 1")
	}
	if section.ItemByOrder(order, excludeID) != nil {
		return apperror.Conflict(fmt.Sprintf("Order number %d is already taken by another service in this section", order))
	}
	return nil
}

// CreateSection creates a section, or appends the given items to an existing
// section carrying the same English title. All order and image validation
// happens before any upload.
func (uc *serviceUsecase) CreateSection(ctx context.Context, input domain.CreateSectionInput) (*domain.ServiceSection, error) {
	if !input.Header.Title.Complete() || !input.Header.Subtitle.Complete() || !input.Header.Description.Complete() {
		return nil, apperror.BadRequest("title, subtitle and description (en & ar) are required")
	}
	if len(input.ItemImages) != len(input.Items) {
		return nil, apperror.BadRequest("Each service item requires an image")
	}

	existing, err := uc.serviceRepo.GetByTitle(ctx, input.Header.Title.En)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	seen := make(map[int]bool, len(input.Items))
	for i, item := range input.Items {
		if err := validateItemFields(item); err != nil {
			return nil, err
		}
		if input.ItemImages[i] == nil || len(input.ItemImages[i].Data) == 0 {
			return nil, apperror.BadRequest("Each service item requires an image")
		}
		if item.Order < 1 {
			return nil, apperror.BadRequest("Order must be at least 1")
		}
		if seen[item.Order] {
			return nil, apperror.Conflict(fmt.Sprintf("Order number %d is already taken by another service in this section", item.Order))
		}
		seen[item.Order] = true
		if existing != nil && existing.ItemByOrder(item.Order, primitive.NilObjectID) != nil {
			return nil, apperror.Conflict(fmt.Sprintf("Order number %d is already taken by another service in this section", item.Order))
		}
	}

	items := make([]domain.ServiceItem, 0, len(input.Items))
	for i, in := range input.Items {
		item, err := uc.buildItem(ctx, in, input.ItemImages[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if existing != nil {
		return uc.mutateSection(ctx, existing.ID, func(section *domain.ServiceSection) error {
			for i := range items {
				if err := validateOrder(section, items[i].Order, primitive.NilObjectID); err != nil {
					return err
				}
			}
			section.Services = append(section.Services, items...)
			return nil
		})
	}

	header := input.Header
	if input.HeaderImage != nil && len(input.HeaderImage.Data) > 0 {
		fileURL, fileID, err := uc.attachments.Upload(ctx, serviceHeaderFolder, input.HeaderImage.Name, input.HeaderImage.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		header.Image = domain.Attachment{FileURL: fileURL, FileID: fileID}
	}

	section := &domain.ServiceSection{
		Header:   header,
		Services: items,
		IsActive: true,
		CustomID: shortid.New(),
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	if err := uc.serviceRepo.Create(ctx, section); err != nil {
		return nil, apperror.Internal(err)
	}
	return section, nil
}

// buildItem uploads the item image into its own shortid folder and returns
// the assembled item.
func (uc *serviceUsecase) buildItem(ctx context.Context, in domain.ServiceItemInput, image *domain.FileUpload) (*domain.ServiceItem, error) {
	customID := shortid.New()
	fileURL, fileID, err := uc.attachments.Upload(ctx, serviceFolder+"/"+customID, image.Name, image.Data)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.ServiceItem{
		ItemID:      primitive.NewObjectID(),
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Order:       in.Order,
		Image:       domain.Attachment{FileURL: fileURL, FileID: fileID},
		CustomID:    customID,
	}, nil
}

func (uc *serviceUsecase) List(ctx context.Context) ([]domain.ServiceSection, error) {
	sections, err := uc.serviceRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return sections, nil
}

// ListByLanguage projects every section into a single language.
func (uc *serviceUsecase) ListByLanguage(ctx context.Context, lang string) ([]domain.ServiceSectionView, error) {
	sections, err := uc.serviceRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]domain.ServiceSectionView, 0, len(sections))
	for i := range sections {
		s := &sections[i]
		items := make([]map[string]any, 0, len(s.Services))
		for j := range s.Services {
			it := &s.Services[j]
			items = append(items, map[string]any{
				"id":          it.ItemID,
				"title":       it.Title.Pick(lang),
				"category":    it.Category.Pick(lang),
				"description": it.Description.Pick(lang),
				"order":       it.Order,
				"image":       it.Image,
			})
		}
		views = append(views, domain.ServiceSectionView{
			ID: s.ID,
			Header: map[string]any{
				"title":       s.Header.Title.Pick(lang),
				"subtitle":    s.Header.Subtitle.Pick(lang),
				"description": s.Header.Description.Pick(lang),
				"image":       s.Header.Image,
			},
			Services: items,
			IsActive: s.IsActive,
		})
	}
	return views, nil
}

func (uc *serviceUsecase) Get(ctx context.Context, id string) (*domain.ServiceSection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}
	section, err := uc.serviceRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Service section not found")
	}
	return section, nil
}

// UpdateHeader applies partial header changes. A replacement image deletes
// the previous blob before the new upload.
func (uc *serviceUsecase) UpdateHeader(ctx context.Context, id string, input domain.UpdateServiceHeaderInput, image *domain.FileUpload) (*domain.ServiceSection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}

	var newImage *domain.Attachment
	if image != nil && len(image.Data) > 0 {
		section, err := uc.serviceRepo.GetByID(ctx, oid)
		if err != nil {
			return nil, apperror.NotFound("Service section not found")
		}
		uc.release(ctx, section.ID, section.Header.Image)
		fileURL, fileID, err := uc.attachments.Upload(ctx, serviceHeaderFolder, image.Name, image.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		newImage = &domain.Attachment{FileURL: fileURL, FileID: fileID}
	}

	return uc.mutateSection(ctx, oid, func(section *domain.ServiceSection) error {
		if input.Title != nil {
			section.Header.Title = *input.Title
		}
		if input.Subtitle != nil {
			section.Header.Subtitle = *input.Subtitle
		}
		if input.Description != nil {
			section.Header.Description = *input.Description
		}
		if input.IsActive != nil {
			section.IsActive = *input.IsActive
		}
		if newImage != nil {
			section.Header.Image = *newImage
		}
		return nil
	})
}

// AddItem validates the new item against the section, uploads its image and
// appends it. Validation failures never reach the attachment store.
func (uc *serviceUsecase) AddItem(ctx context.Context, sectionID string, input domain.ServiceItemInput, image *domain.FileUpload) (*domain.ServiceSection, error) {
	oid, err := primitive.ObjectIDFromHex(sectionID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}

	section, err := uc.serviceRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Service section not found")
	}
	if err := validateItemFields(input); err != nil {
		return nil, err
	}
	if image == nil || len(image.Data) == 0 {
		return nil, apperror.BadRequest("Each service item requires an image")
	}
	if err := validateOrder(section, input.Order, primitive.NilObjectID); err != nil {
		return nil, err
	}

	item, err := uc.buildItem(ctx, input, image)
	if err != nil {
		return nil, err
	}

	updated, err := uc.mutateSection(ctx, oid, func(section *domain.ServiceSection) error {
		if err := validateOrder(section, item.Order, primitive.NilObjectID); err != nil {
			return err
		}
		section.Services = append(section.Services, *item)
		return nil
	})
	if err != nil {
		// The image was uploaded optimistically; reclaim it.
		uc.release(ctx, oid, item.Image)
		return nil, err
	}
	return updated, nil
}

// UpdateItem applies partial item changes. A replacement image deletes the
// previous blob and reuses the item's folder.
func (uc *serviceUsecase) UpdateItem(ctx context.Context, sectionID, itemID string, input domain.UpdateServiceItemInput, image *domain.FileUpload) (*domain.ServiceSection, error) {
	oid, err := primitive.ObjectIDFromHex(sectionID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}
	itemOID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service item ID")
	}

	section, err := uc.serviceRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Service section not found")
	}
	current := findItem(section, itemOID)
	if current == nil {
		return nil, apperror.NotFound("Service item not found")
	}
	if input.Order != nil {
		if err := validateOrder(section, *input.Order, itemOID); err != nil {
			return nil, err
		}
	}

	var newImage *domain.Attachment
	if image != nil && len(image.Data) > 0 {
		uc.release(ctx, oid, current.Image)
		folder := current.CustomID
		if folder == "" {
			folder = shortid.New()
		}
		fileURL, fileID, err := uc.attachments.Upload(ctx, serviceFolder+"/"+folder, image.Name, image.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		newImage = &domain.Attachment{FileURL: fileURL, FileID: fileID}
		current.CustomID = folder
	}
	newCustomID := current.CustomID

	return uc.mutateSection(ctx, oid, func(section *domain.ServiceSection) error {
		item := findItem(section, itemOID)
		if item == nil {
			return apperror.NotFound("Service item not found")
		}
		if input.Title != nil {
			item.Title = *input.Title
		}
		if input.Category != nil {
			item.Category = *input.Category
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.Order != nil {
			if err := validateOrder(section, *input.Order, itemOID); err != nil {
				return err
			}
			item.Order = *input.Order
		}
		if newImage != nil {
			item.Image = *newImage
			item.CustomID = newCustomID
		}
		return nil
	})
}

// DeleteItem releases the item image and removes the item from the section.
func (uc *serviceUsecase) DeleteItem(ctx context.Context, sectionID, itemID string) (*domain.ServiceSection, error) {
	oid, err := primitive.ObjectIDFromHex(sectionID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}
	itemOID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service item ID")
	}

	return uc.mutateSection(ctx, oid, func(section *domain.ServiceSection) error {
		for i := range section.Services {
			if section.Services[i].ItemID != itemOID {
				continue
			}
			uc.release(ctx, oid, section.Services[i].Image)
			section.Services = append(section.Services[:i], section.Services[i+1:]...)
			return nil
		}
		return apperror.NotFound("Service item not found")
	})
}

// AddReview uploads the screenshots and appends the review, folding the new
// rating into the section's running average.
func (uc *serviceUsecase) AddReview(ctx context.Context, sectionID string, input domain.ReviewInput) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(sectionID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid service ID")
	}
	if input.AuthorName == "" {
		return nil, apperror.BadRequest("Author name is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperror.BadRequest("Rating must be between 1 and 5")
	}

	section, err := uc.serviceRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("Service section not found")
	}

	// Older sections predate scoped folders; mint one on demand.
	sectionCustomID := section.CustomID
	if sectionCustomID == "" {
		sectionCustomID = shortid.New()
	}

	screenshots := make([]domain.Attachment, 0, len(input.Screenshots))
	for _, shot := range input.Screenshots {
		if shot == nil || len(shot.Data) == 0 {
			continue
		}
		folder := serviceFolder + "/" + sectionCustomID + "/Reviews"
		fileURL, fileID, err := uc.attachments.Upload(ctx, folder, shot.Name, shot.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		screenshots = append(screenshots, domain.Attachment{FileURL: fileURL, FileID: fileID})
	}

	var review domain.Review
	_, err = uc.mutateSection(ctx, oid, func(section *domain.ServiceSection) error {
		oldAvg := section.RatingValue
		oldCount := float64(section.ReviewCount)
		section.RatingValue = (oldAvg*oldCount + input.Rating) / (oldCount + 1)
		section.ReviewCount++

		review = domain.Review{
			AuthorName:  input.AuthorName,
			Rating:      input.Rating,
			Body:        input.Body,
			Screenshots: screenshots,
			CreatedAt:   time.Now().UTC(),
		}
		section.Reviews = append(section.Reviews, review)
		if section.CustomID == "" {
			section.CustomID = sectionCustomID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete releases every attachment the section owns, then removes the record.
func (uc *serviceUsecase) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid service ID")
	}

	section, err := uc.serviceRepo.GetByID(ctx, oid)
	if err != nil {
		return apperror.NotFound("Service section not found")
	}

	uc.releaseAll(ctx, section)

	if err := uc.serviceRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Service section not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// BulkDelete removes every section that resolves from ids and reports the
// count actually deleted.
func (uc *serviceUsecase) BulkDelete(ctx context.Context, ids []string) (int, error) {
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

	sections, err := uc.serviceRepo.FindByIDs(ctx, oids)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if len(sections) == 0 {
		return 0, apperror.NotFound("No services found to delete")
	}

	deleted := 0
	for i := range sections {
		uc.releaseAll(ctx, &sections[i])
		if err := uc.serviceRepo.Delete(ctx, sections[i].ID); err != nil {
			logger.Log.Warn("bulk delete: section removal failed",
				"section_id", sections[i].ID.Hex(), "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func findItem(section *domain.ServiceSection, itemID primitive.ObjectID) *domain.ServiceItem {
	for i := range section.Services {
		if section.Services[i].ItemID == itemID {
			return &section.Services[i]
		}
	}
	return nil
}

// release deletes one attachment; failures are logged, never fatal.
func (uc *serviceUsecase) release(ctx context.Context, sectionID primitive.ObjectID, att domain.Attachment) {
	if !att.Present() {
		return
	}
	if err := uc.attachments.Delete(ctx, att.FileID); err != nil {
		logger.Log.Warn("failed to release service attachment",
			"section_id", sectionID.Hex(), "file_id", att.FileID, "error", err)
	}
}

func (uc *serviceUsecase) releaseAll(ctx context.Context, section *domain.ServiceSection) {
	uc.release(ctx, section.ID, section.Header.Image)
	for i := range section.Services {
		uc.release(ctx, section.ID, section.Services[i].Image)
	}
	for i := range section.Reviews {
		for _, shot := range section.Reviews[i].Screenshots {
			uc.release(ctx, section.ID, shot)
		}
	}
}
