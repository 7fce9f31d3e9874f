package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/config"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type stubAuthService struct {
	signupErr error
	loginErr  error
	user      domain.User
}

func (s *stubAuthService) Signup(_ context.Context, user domain.User) (domain.User, error) {
	if s.signupErr != nil {
		return domain.User{}, s.signupErr
	}
	user.ID = s.user.ID
	user.Credits = s.user.Credits

	return user, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (domain.User, error) {
	if s.loginErr != nil {
		return domain.User{}, s.loginErr
	}

	return s.user, nil
}

func newAuthTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	conf := &config.APIConfig{JWTSigningKey: "test-signing-key"}
	handler := NewAuthHandler(conf, svc)

	router := gin.New()
	router.POST("/api/auth/register", handler.HandleSignup)
	router.POST("/api/auth/login", handler.HandleLogin)

	return router
}

func TestHandleSignup(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{user: domain.User{ID: 1, Credits: 1}})

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","password":"compiler1"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Registration successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, resp.User.Credits)
}

func TestHandleSignupInvalidPayload(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","password":"short"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSignupDuplicateEmail(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{signupErr: service.ErrUserEmailExists})

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","password":"compiler1"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Email is already registered"}`, rec.Body.String())
}

func TestHandleLoginWrongCredentials(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{loginErr: service.ErrWrongPassword})

	body := `{"email":"grace@example.com","password":"compiler1"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
}

func TestHandleLoginSuccess(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{user: domain.User{ID: 7, Email: "grace@example.com"}})

	body := `{"email":"grace@example.com","password":"compiler1"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}
