package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/email"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/shortid"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const userImageFolder = "User"

// AuthConfig carries the signing material and knobs for the auth manager.
// SignInSecret and ResetSecret are independent keys; compromising one never
// exposes the other flow.
type AuthConfig struct {
	SignInSecret string
	ResetSecret  string
	BcryptCost   int
	TokenTTL     time.Duration
}

type authUsecase struct {
	userRepo    domain.UserRepository
	attachments domain.AttachmentStore
	mailer      *email.EmailService
	cfg         AuthConfig
}

// NewAuthUsecase creates the authentication and account manager.
func NewAuthUsecase(
	userRepo domain.UserRepository,
	attachments domain.AttachmentStore,
	mailer *email.EmailService,
	cfg AuthConfig,
) domain.AuthUsecase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &authUsecase{
		userRepo:    userRepo,
		attachments: attachments,
		mailer:      mailer,
		cfg:         cfg,
	}
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (uc *authUsecase) issueToken(user *domain.User) (string, error) {
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(uc.cfg.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.SignInSecret))
}

// Register creates a self-service account in the default role.
func (uc *authUsecase) Register(ctx context.Context, userName, email, password string) (*domain.User, error) {
	if userName == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		UserName: userName,
		Email:    strings.ToLower(email),
		Password: string(hash),
		Role:     domain.RoleUser,
		IsActive: true,
		CustomID: shortid.New(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed token, persisted on the
// user record. The three failure modes are reported distinctly but all carry
// 401.
func (uc *authUsecase) Login(ctx context.Context, userEmail, password string) (*domain.User, error) {
	if userEmail == "" || password == "" {
		return nil, apperror.Unprocessable("Email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(userEmail))
	if err != nil {
		return nil, apperror.Unauthorized("user not found")
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("user is not active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("password incorrect")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Token = token
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Logout clears the persisted token. Expired tokens are still accepted;
// a user must always be able to log out.
func (uc *authUsecase) Logout(ctx context.Context, tokenString string) error {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(uc.cfg.SignInSecret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return apperror.Unauthorized("Invalid token")
	}

	oid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return apperror.Unauthorized("Invalid token")
	}
	user, err := uc.userRepo.GetByID(ctx, oid)
	if err != nil {
		return apperror.Unauthorized("Invalid token")
	}

	user.Token = ""
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}
	user, err := uc.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// CreateUser provisions an account with an explicit role and an optional
// profile image.
func (uc *authUsecase) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if input.UserName == "" || input.Email == "" || input.Password == "" {
		return nil, apperror.BadRequest("All fields are required")
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.HasRole(role, domain.RoleAdmin, domain.RoleHR, domain.RoleUser) {
		return nil, apperror.BadRequest("Invalid role. Must be: admin, hr or user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		UserName: input.UserName,
		Email:    strings.ToLower(input.Email),
		Password: string(hash),
		Role:     role,
		IsActive: true,
		CustomID: shortid.New(),
	}

	if input.Image != nil && len(input.Image.Data) > 0 {
		fileURL, fileID, err := uc.attachments.Upload(ctx, userImageFolder+"/"+user.CustomID, input.Image.Name, input.Image.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Image = domain.Attachment{FileURL: fileURL, FileID: fileID}
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *authUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// UpdateUser applies partial account changes. A replacement image deletes
// the previous blob and reuses the user's folder.
func (uc *authUsecase) UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user ID")
	}
	user, err := uc.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	if input.UserName != nil {
		user.UserName = *input.UserName
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), uc.cfg.BcryptCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Password = string(hash)
	}
	if input.Role != nil {
		if !domain.HasRole(*input.Role, domain.RoleAdmin, domain.RoleHR, domain.RoleUser) {
			return nil, apperror.BadRequest("Invalid role. Must be: admin, hr or user")
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Image != nil && len(input.Image.Data) > 0 {
		uc.releaseImage(ctx, user)
		if user.CustomID == "" {
			user.CustomID = shortid.New()
		}
		fileURL, fileID, err := uc.attachments.Upload(ctx, userImageFolder+"/"+user.CustomID, input.Image.Name, input.Image.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Image = domain.Attachment{FileURL: fileURL, FileID: fileID}
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// DeleteUser releases the profile image and removes the account.
func (uc *authUsecase) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid user ID")
	}
	user, err := uc.userRepo.GetByID(ctx, oid)
	if err != nil {
		return apperror.NotFound("User not found")
	}

	uc.releaseImage(ctx, user)

	if err := uc.userRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// BulkDeleteUsers removes every account that resolves from ids, releasing
// profile images first, and reports the count actually deleted.
func (uc *authUsecase) BulkDeleteUsers(ctx context.Context, ids []string) (int, error) {
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

	users, err := uc.userRepo.FindByIDs(ctx, oids)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if len(users) == 0 {
		return 0, apperror.NotFound("No users found to delete")
	}

	found := make([]primitive.ObjectID, 0, len(users))
	for i := range users {
		uc.releaseImage(ctx, &users[i])
		found = append(found, users[i].ID)
	}

	deleted, err := uc.userRepo.DeleteMany(ctx, found)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return int(deleted), nil
}

// hashResetCode keys the digest with the dedicated reset secret so stored
// hashes are useless without it.
func (uc *authUsecase) hashResetCode(code string) string {
	mac := hmac.New(sha256.New, []byte(uc.cfg.ResetSecret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// ForgotPassword generates a one-time code, stores its keyed hash and mails
// the code. Unknown addresses get the same success to avoid enumeration.
func (uc *authUsecase) ForgotPassword(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperror.BadRequest("Email is required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(userEmail))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return apperror.Internal(err)
	}

	code := shortid.NewWithLength(8)
	user.ResetCodeHash = uc.hashResetCode(code)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}

	if uc.mailer == nil || !uc.mailer.IsConfigured() {
		logger.Log.Warn("password reset requested but mail is not configured", "user_id", user.ID.Hex())
		return nil
	}
	if err := uc.mailer.SendResetEmail(user.Email, email.ResetEmailData{
		UserName:  user.UserName,
		ResetCode: code,
	}); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ResetPassword verifies the one-time code and replaces the password,
// clearing the code and any persisted session token.
func (uc *authUsecase) ResetPassword(ctx context.Context, userEmail, code, newPassword string) error {
	if userEmail == "" || code == "" || newPassword == "" {
		return apperror.BadRequest("All fields are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(userEmail))
	if err != nil {
		return apperror.BadRequest("Invalid reset code")
	}
	if user.ResetCodeHash == "" ||
		!hmac.Equal([]byte(user.ResetCodeHash), []byte(uc.hashResetCode(code))) {
		return apperror.BadRequest("Invalid reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), uc.cfg.BcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	user.Password = string(hash)
	user.ResetCodeHash = ""
	user.Token = ""
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *authUsecase) releaseImage(ctx context.Context, user *domain.User) {
	if !user.Image.Present() {
		return
	}
	if err := uc.attachments.Delete(ctx, user.Image.FileID); err != nil {
		logger.Log.Warn("failed to release user image",
			"user_id", user.ID.Hex(), "file_id", user.Image.FileID, "error", err)
	}
}
