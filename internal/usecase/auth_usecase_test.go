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
	"golang.org/x/crypto/bcrypt"
)

func newAuthUC(repo domain.UserRepository, store domain.AttachmentStore) domain.AuthUsecase {
	return usecase.NewAuthUsecase(repo, store, nil, usecase.AuthConfig{
		SignInSecret: "sign-in-secret",
		ResetSecret:  "reset-secret",
		BcryptCost:   bcrypt.MinCost,
	})
}

func activeUser(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:       primitive.NewObjectID(),
		UserName: "jane",
		Email:    "jane@example.com",
		Password: string(hash),
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should issue and persist a token on success", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		repo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		loggedIn, err := uc.Login(ctx, "Jane@Example.com", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, loggedIn.Token)
		repo.AssertCalled(t, "Update", ctx, user)
	})

	t.Run("Should report unknown users distinctly", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "ghost@example.com", "whatever")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "user not found", appErr.Message)
	})

	t.Run("Should report inactive users distinctly", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		user.IsActive = false
		repo.On("GetByEmail", ctx, mock.Anything).Return(user, nil)

		_, err := uc.Login(ctx, user.Email, "secret123")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "user is not active", appErr.Message)
	})

	t.Run("Should report wrong passwords distinctly", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		repo.On("GetByEmail", ctx, mock.Anything).Return(user, nil)

		_, err := uc.Login(ctx, user.Email, "wrong")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "password incorrect", appErr.Message)
	})

	t.Run("Should reject empty credentials with 422", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		_, err := uc.Login(ctx, "", "")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.Code)
		repo.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuthLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Should clear the persisted token even when expired", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		repo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		repo.On("GetByID", ctx, user.ID).Return(user, nil)

		loggedIn, err := uc.Login(ctx, user.Email, "secret123")
		assert.NoError(t, err)

		err = uc.Logout(ctx, loggedIn.Token)
		assert.NoError(t, err)
		assert.Empty(t, user.Token)
	})

	t.Run("Should reject garbage tokens", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		err := uc.Logout(ctx, "not-a-jwt")
		assert.Error(t, err)
	})
}

func TestAuthPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Should succeed silently for unknown addresses", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound)

		err := uc.ForgotPassword(ctx, "ghost@example.com")
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Should store a keyed hash, never the code", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		repo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		err := uc.ForgotPassword(ctx, user.Email)
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ResetCodeHash)
		assert.Len(t, user.ResetCodeHash, 64) // hex sha256
	})

	t.Run("Should reject a wrong code", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		user := activeUser("secret123")
		user.ResetCodeHash = "deadbeef"
		repo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		err := uc.ResetPassword(ctx, user.Email, "wrong-code", "newpassword1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid reset code")
		repo.AssertNotCalled(t, "Update")
	})
}

func TestAuthCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown roles", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newAuthUC(repo, nil)

		_, err := uc.CreateUser(ctx, domain.CreateUserInput{
			UserName: "x", Email: "x@example.com", Password: "password1", Role: "superadmin",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should scope the profile image to the user folder", func(t *testing.T) {
		repo := new(MockUserRepo)
		store := new(MockStore)
		uc := newAuthUC(repo, store)

		store.On("Upload", ctx, mock.MatchedBy(func(folder string) bool {
			return len(folder) > len("User/") && folder[:5] == "User/"
		}), "avatar.png", mock.Anything).Return("https://cdn/avatar.png", "key", nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.CreateUser(ctx, domain.CreateUserInput{
			UserName: "jane",
			Email:    "jane@example.com",
			Password: "password1",
			Role:     domain.RoleHR,
			Image:    &domain.FileUpload{Name: "avatar.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn/avatar.png", user.Image.FileURL)
		store.AssertExpectations(t)
	})
}
