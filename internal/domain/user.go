package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// System roles.
const (
	RoleAdmin = "admin"
	RoleHR    = "hr"
	RoleUser  = "user"
)

// HasRole is the authorization capability check: it reports whether the
// identity's role is in the required set. Handlers receive this gate
// through middleware instead of scattering role conditionals.
func HasRole(role string, required ...string) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// User is an authenticated account.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName      string             `bson:"user_name" json:"user_name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	Role          string             `bson:"role" json:"role"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	Image         Attachment         `bson:"image,omitempty" json:"image,omitempty"`
	CustomID      string             `bson:"custom_id,omitempty" json:"custom_id,omitempty"`
	Token         string             `bson:"token,omitempty" json:"token,omitempty"`
	ResetCodeHash string             `bson:"reset_code_hash,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateUserInput carries an admin-created account.
type CreateUserInput struct {
	UserName string
	Email    string
	Password string
	Role     string
	Image    *FileUpload
}

// UpdateUserInput carries partial account updates.
type UpdateUserInput struct {
	UserName *string
	Email    *string
	Password *string
	Role     *string
	IsActive *bool
	Image    *FileUpload
}

// UserRepository defines data access for accounts. Create maps a unique
// email violation to ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// AuthUsecase defines authentication and account management.
type AuthUsecase interface {
	Register(ctx context.Context, userName, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context, token string) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)

	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	BulkDeleteUsers(ctx context.Context, ids []string) (int, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
