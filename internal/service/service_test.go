package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key-0123456789abcdef",
			ExpireMinutes: 15,
		},
		RefreshToken: config.RefreshTokenConfig{ExpireDays: 7},
		Verification: config.VerificationConfig{TokenTTLHours: 24},
		Security: config.SecurityConfig{
			PasswordPolicy: defaultPasswordPolicy(),
		},
		Discovery: config.DiscoveryConfig{FeedPageSize: 20},
	}
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ProfilePhoto{},
		&models.RefreshToken{},
		&models.Swipe{},
		&models.Match{},
		&models.Message{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createVerifiedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	now := time.Now()
	user := &models.User{
		Email:         email,
		PasswordHash:  string(hash),
		EmailVerified: true,
		DisplayName:   "Test User",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createCompleteUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := createVerifiedUser(t, db, email, "Abcdef1!")
	user.ProfileComplete = true
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("save user failed: %v", err)
	}
	return user
}
