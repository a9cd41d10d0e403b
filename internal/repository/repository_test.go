package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/heartlink/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepoTestDB(t *testing.T, name string) *gorm.DB {
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
	return db
}

func createRepoTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, ProfileComplete: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
