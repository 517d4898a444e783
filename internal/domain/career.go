package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Career represents a job posting with bilingual fields.
type Career struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            Localized          `bson:"title" json:"title"`
	Department       Localized          `bson:"department" json:"department"`
	Location         Localized          `bson:"location" json:"location"`
	EmploymentType   Localized          `bson:"employment_type" json:"employment_type"`
	ShortDescription Localized          `bson:"short_description,omitempty" json:"short_description"`
	Description      Localized          `bson:"description,omitempty" json:"description"`
	Responsibilities LocalizedList      `bson:"responsibilities,omitempty" json:"responsibilities"`
	Requirements     LocalizedList      `bson:"requirements,omitempty" json:"requirements"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	Order            int                `bson:"order,omitempty" json:"order"`
	CustomID         string             `bson:"custom_id,omitempty" json:"custom_id"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// CareerFilter narrows career listings. Filter values match the leg
// selected by Lang ("en" by default).
type CareerFilter struct {
	Department     string
	Location       string
	EmploymentType string
	IsActive       *bool
	Lang           string
}

// CareerView is a single-language projection of a Career.
type CareerView struct {
	ID               primitive.ObjectID `json:"id"`
	Title            string             `json:"title"`
	Department       string             `json:"department"`
	Location         string             `json:"location"`
	EmploymentType   string             `json:"employment_type"`
	ShortDescription string             `json:"short_description,omitempty"`
	Description      string             `json:"description,omitempty"`
	Responsibilities []string           `json:"responsibilities,omitempty"`
	Requirements     []string           `json:"requirements,omitempty"`
	IsActive         bool               `json:"is_active"`
	Order            int                `json:"order"`
}

// UpdateCareerInput carries partial updates; nil means "leave unchanged".
type UpdateCareerInput struct {
	Title            *Localized
	Department       *Localized
	Location         *Localized
	EmploymentType   *Localized
	ShortDescription *Localized
	Description      *Localized
	Responsibilities *LocalizedList
	Requirements     *LocalizedList
	IsActive         *bool
	Order            *int
}

// CareerRepository defines data access for job postings.
type CareerRepository interface {
	Create(ctx context.Context, career *Career) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Career, error)
	List(ctx context.Context, filter CareerFilter) ([]Career, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Career, error)
	Update(ctx context.Context, career *Career) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CareerUsecase defines business logic for job postings.
type CareerUsecase interface {
	Create(ctx context.Context, career *Career) (*Career, error)
	List(ctx context.Context, filter CareerFilter) ([]Career, error)
	ListByLanguage(ctx context.Context, lang string) ([]CareerView, error)
	Get(ctx context.Context, id string) (*Career, error)
	Update(ctx context.Context, id string, input UpdateCareerInput) (*Career, error)
	ToggleActive(ctx context.Context, id string) (*Career, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}
