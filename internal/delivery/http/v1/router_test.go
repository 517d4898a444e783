package v1_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	v1 "go-careers-cms/internal/delivery/http/v1"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSignInSecret = "router-test-secret"

func TestMain(m *testing.M) {
	logger.Init()
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	os.Exit(m.Run())
}

type stubAuthUC struct {
	domain.AuthUsecase
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthUC) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubApplicationUC struct {
	domain.ApplicationUsecase
	submitFn func(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error)
}

func (s *stubApplicationUC) Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error) {
	return s.submitFn(ctx, input)
}

func newTestRouter(authUC domain.AuthUsecase, applicationUC domain.ApplicationUsecase) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: applicationUC,
		SignInSecret:  testSignInSecret,
	})
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestLogoutAcceptsExpiredToken(t *testing.T) {
	var received string
	authUC := &stubAuthUC{logoutFn: func(_ context.Context, token string) error {
		received = token
		return nil
	}}
	router := newTestRouter(authUC, &stubApplicationUC{})

	claims := jwt.RegisteredClaims{
		Subject:   "64f000000000000000000001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignInSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, received)
}

func TestOversizedFormFieldRejected(t *testing.T) {
	router := newTestRouter(&stubAuthUC{}, &stubApplicationUC{})

	// Field values count against MaxMultipartMemory plus the parser's
	// fixed 10MB reserve, so 21MB of field data is over the line.
	body, contentType := multipartBody(t, map[string]string{
		"fullName": strings.Repeat("a", 21<<20),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/apply-general", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestApplyRejectsMalformedPhone(t *testing.T) {
	submitted := false
	appUC := &stubApplicationUC{submitFn: func(context.Context, domain.SubmitApplicationInput) (*domain.Application, error) {
		submitted = true
		return &domain.Application{}, nil
	}}
	router := newTestRouter(&stubAuthUC{}, appUC)

	body, contentType := multipartBody(t, map[string]string{
		"fullName": "Jane Roe",
		"email":    "jane@example.com",
		"phone":    "not-a-phone",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/apply-general", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone must be a valid phone number")
	assert.False(t, submitted)
}

func TestApplyEndpointsRateLimited(t *testing.T) {
	appUC := &stubApplicationUC{submitFn: func(context.Context, domain.SubmitApplicationInput) (*domain.Application, error) {
		return &domain.Application{}, nil
	}}
	router := newTestRouter(&stubAuthUC{}, appUC)

	var first, last int
	for i := 0; i < 12; i++ {
		body, contentType := multipartBody(t, map[string]string{
			"fullName": "Jane Roe",
			"email":    "jane@example.com",
			"phone":    "+15550100200",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/apply-general", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if i == 0 {
			first = w.Code
		}
		last = w.Code
	}

	assert.Equal(t, http.StatusCreated, first)
	assert.Equal(t, http.StatusTooManyRequests, last)
}
