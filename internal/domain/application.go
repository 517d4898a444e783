package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application status values.
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusReviewed = "Reviewed"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
)

// ValidApplicationStatus reports whether s is one of the enumerated values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a submission against a Career, or a general submission
// when CareerID is nil. Exactly one CV attachment is kept per application.
type Application struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CareerID  *primitive.ObjectID `bson:"career,omitempty" json:"career_id,omitempty"`
	FullName  string              `bson:"full_name" json:"full_name"`
	Email     string              `bson:"email" json:"email"`
	Phone     string              `bson:"phone" json:"phone"`
	CV        Attachment          `bson:"cv" json:"cv"`
	CustomID  string              `bson:"custom_id" json:"custom_id"`
	Status    string              `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`

	// Career reference resolved for list responses; not persisted.
	Career *CareerSummary `bson:"-" json:"career,omitempty"`
}

// CareerSummary is the minimal career projection attached to application
// listings. Optional fields are present only on the wider per-career view.
type CareerSummary struct {
	ID             primitive.ObjectID `json:"id"`
	Title          Localized          `json:"title"`
	Department     *Localized         `json:"department,omitempty"`
	Location       *Localized         `json:"location,omitempty"`
	EmploymentType *Localized         `json:"employment_type,omitempty"`
}

// ApplicationDetail is the full single-application view with the complete
// career document resolved.
type ApplicationDetail struct {
	Application *Application `json:"application"`
	Career      *Career      `json:"career,omitempty"`
}

// SubmitApplicationInput carries a validated submission.
type SubmitApplicationInput struct {
	CareerID string // empty for general applications
	FullName string
	Email    string
	Phone    string
	CV       *FileUpload
}

// ApplicationRepository defines data access for applications. Create maps a
// unique-index violation on (email, career) to ErrDuplicate.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByCareer(ctx context.Context, careerID primitive.ObjectID) ([]Application, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Application, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Application, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, email string, careerID *primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationUsecase defines the application lifecycle.
type ApplicationUsecase interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListByCareer(ctx context.Context, careerID string) ([]Application, error)
	Get(ctx context.Context, id string) (*ApplicationDetail, error)
	SetStatus(ctx context.Context, id, status string) (*Application, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}
