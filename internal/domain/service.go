package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceHeader is the bilingual header of a marketing section.
type ServiceHeader struct {
	Title       Localized  `bson:"title" json:"title"`
	Subtitle    Localized  `bson:"subtitle" json:"subtitle"`
	Description Localized  `bson:"description" json:"description"`
	Image       Attachment `bson:"image,omitempty" json:"image,omitempty"`
}

// ServiceItem is one entry of a section's ordered list. Order is unique and
// >= 1 within a section.
type ServiceItem struct {
	ItemID      primitive.ObjectID `bson:"_id" json:"id"`
	Title       Localized          `bson:"title" json:"title"`
	Category    Localized          `bson:"category" json:"category"`
	Description Localized          `bson:"description" json:"description"`
	Order       int                `bson:"order" json:"order"`
	Image       Attachment         `bson:"image" json:"image"`
	CustomID    string             `bson:"custom_id" json:"custom_id"`
}

// Review is a customer review attached to a section.
type Review struct {
	AuthorName  string       `bson:"author_name" json:"author_name"`
	Rating      float64      `bson:"rating" json:"rating"`
	Body        string       `bson:"body" json:"body"`
	Screenshots []Attachment `bson:"screenshots,omitempty" json:"screenshots,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
}

// ServiceSection groups ordered items and reviews under one bilingual
// header. Version is the optimistic-concurrency token guarding
// read-then-write sequences on the items array.
type ServiceSection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Header      ServiceHeader      `bson:"header" json:"header"`
	Services    []ServiceItem      `bson:"services" json:"services"`
	Reviews     []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	RatingValue float64            `bson:"aggregate_rating_value" json:"aggregate_rating_value"`
	ReviewCount int                `bson:"aggregate_review_count" json:"aggregate_review_count"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CustomID    string             `bson:"custom_id,omitempty" json:"custom_id"`
	Version     int64              `bson:"version" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ItemByOrder returns the item holding the given order, excluding the item
// with excludeID (pass primitive.NilObjectID to exclude nothing).
func (s *ServiceSection) ItemByOrder(order int, excludeID primitive.ObjectID) *ServiceItem {
	for i := range s.Services {
		if s.Services[i].Order == order && s.Services[i].ItemID != excludeID {
			return &s.Services[i]
		}
	}
	return nil
}

// ServiceItemInput carries fields for a new item; the image file travels
// separately so validation can gate the upload.
type ServiceItemInput struct {
	Title       Localized
	Category    Localized
	Description Localized
	Order       int
}

// UpdateServiceItemInput carries partial item updates.
type UpdateServiceItemInput struct {
	Title       *Localized
	Category    *Localized
	Description *Localized
	Order       *int
}

// UpdateServiceHeaderInput carries partial header updates.
type UpdateServiceHeaderInput struct {
	Title       *Localized
	Subtitle    *Localized
	Description *Localized
	IsActive    *bool
}

// CreateSectionInput carries a new section with optional initial items.
type CreateSectionInput struct {
	Header      ServiceHeader
	IsActive    *bool
	Items       []ServiceItemInput
	ItemImages  []*FileUpload // parallel to Items
	HeaderImage *FileUpload
}

// ReviewInput carries a new review submission.
type ReviewInput struct {
	AuthorName  string
	Rating      float64
	Body        string
	Screenshots []*FileUpload
}

// ServiceSectionView is a single-language projection of a section.
type ServiceSectionView struct {
	ID       primitive.ObjectID `json:"id"`
	Header   map[string]any     `json:"header"`
	Services []map[string]any   `json:"services"`
	IsActive bool               `json:"is_active"`
}

// ServiceRepository defines data access for service sections.
// ReplaceVersioned persists the whole document guarded by {_id, version}
// and bumps the version; a miss returns ErrVersionConflict.
type ServiceRepository interface {
	Create(ctx context.Context, section *ServiceSection) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*ServiceSection, error)
	GetByTitle(ctx context.Context, titleEn string) (*ServiceSection, error)
	List(ctx context.Context) ([]ServiceSection, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]ServiceSection, error)
	ReplaceVersioned(ctx context.Context, section *ServiceSection) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// ServiceUsecase defines the service catalog operations.
type ServiceUsecase interface {
	CreateSection(ctx context.Context, input CreateSectionInput) (*ServiceSection, error)
	List(ctx context.Context) ([]ServiceSection, error)
	ListByLanguage(ctx context.Context, lang string) ([]ServiceSectionView, error)
	Get(ctx context.Context, id string) (*ServiceSection, error)
	UpdateHeader(ctx context.Context, id string, input UpdateServiceHeaderInput, image *FileUpload) (*ServiceSection, error)
	AddItem(ctx context.Context, sectionID string, input ServiceItemInput, image *FileUpload) (*ServiceSection, error)
	UpdateItem(ctx context.Context, sectionID, itemID string, input UpdateServiceItemInput, image *FileUpload) (*ServiceSection, error)
	DeleteItem(ctx context.Context, sectionID, itemID string) (*ServiceSection, error)
	AddReview(ctx context.Context, sectionID string, input ReviewInput) (*Review, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}
