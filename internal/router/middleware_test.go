package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func openMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func signTestToken(t *testing.T, secret string, userID uint, email string) string {
	t.Helper()
	now := time.Now()
	claims := &service.AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return signed
}

func setupAuthTestRouter(t *testing.T, secret string, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserJWTAuthMiddleware(secret, repository.NewUserRepository(db)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return r
}

func getWithBearer(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	const secret = "middleware-test-secret-0123456789"
	db := openMiddlewareTestDB(t)
	user := &models.User{Email: "auth@example.com", EmailVerified: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	r := setupAuthTestRouter(t, secret, db)

	if w := getWithBearer(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header want 401 got %d", w.Code)
	}
	if w := getWithBearer(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token want 401 got %d", w.Code)
	}
	if w := getWithBearer(r, signTestToken(t, "wrong-secret-wrong-secret-wrong", user.ID, user.Email)); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong signature want 401 got %d", w.Code)
	}
	if w := getWithBearer(r, signTestToken(t, secret, 9999, "ghost@example.com")); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user want 401 got %d", w.Code)
	}

	w := getWithBearer(r, signTestToken(t, secret, user.ID, user.Email))
	if w.Code != http.StatusOK {
		t.Fatalf("valid token want 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID uint `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != user.ID {
		t.Fatalf("user_id want %d got %d", user.ID, resp.UserID)
	}
}

func TestUserJWTAuthMiddlewareSuspendedUser(t *testing.T) {
	const secret = "middleware-test-secret-0123456789"
	db := openMiddlewareTestDB(t)
	user := &models.User{Email: "banned@example.com", EmailVerified: true, IsSuspended: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	r := setupAuthTestRouter(t, secret, db)

	w := getWithBearer(r, signTestToken(t, secret, user.ID, user.Email))
	if w.Code != http.StatusForbidden {
		t.Fatalf("suspended user want 403 got %d", w.Code)
	}
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserJWTAuthMiddleware("", nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret want 401 got %d", w.Code)
	}
}
