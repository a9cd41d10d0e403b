package service

import (
	"errors"
	"testing"

	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"

	"gorm.io/gorm"
)

func setupProfileServiceTest(t *testing.T) (*ProfileService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "profile_service_test")
	svc := NewProfileService(
		testConfig(),
		repository.NewUserRepository(db),
		repository.NewProfilePhotoRepository(db),
	)
	return svc, db
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := setupProfileServiceTest(t)
	if _, err := svc.GetProfile(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfileOverwritesFields(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	user := createVerifiedUser(t, db, "edit@example.com", "Abcdef1!")

	view, err := svc.UpdateProfile(user.ID, ProfileUpdateInput{
		DisplayName: "  Mara ",
		Age:         29,
		Bio:         "Hello there",
		Location:    "Munich",
		Interests:   []string{"tennis", "jazz"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.DisplayName != "Mara" || view.Age != 29 || view.Location != "Munich" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Interests) != 2 || view.Interests[0] != "tennis" || view.Interests[1] != "jazz" {
		t.Fatalf("unexpected interests: %v", view.Interests)
	}

	// 再次更新整体覆盖，nil 兴趣清空为 []
	view, err = svc.UpdateProfile(user.ID, ProfileUpdateInput{DisplayName: "Mara", Age: 29})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if view.Bio != "" || view.Location != "" {
		t.Fatalf("expected fields overwritten, got %+v", view)
	}
	if view.Interests == nil || len(view.Interests) != 0 {
		t.Fatalf("expected empty interests slice, got %v", view.Interests)
	}
}

func TestAddPhotoFlipsProfileComplete(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	user := createVerifiedUser(t, db, "photos@example.com", "Abcdef1!")

	first, err := svc.AddPhoto(user.ID, "https://cdn.example.com/a.jpg", 0)
	if err != nil {
		t.Fatalf("first photo failed: %v", err)
	}
	if first.Position != 1 {
		t.Fatalf("expected position 1, got %d", first.Position)
	}
	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.ProfileComplete {
		t.Fatal("one photo must not complete the profile")
	}

	second, err := svc.AddPhoto(user.ID, "https://cdn.example.com/b.jpg", 0)
	if err != nil {
		t.Fatalf("second photo failed: %v", err)
	}
	if second.Position != 2 {
		t.Fatalf("expected position 2, got %d", second.Position)
	}
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if !stored.ProfileComplete {
		t.Fatal("second photo must complete the profile")
	}

	// 标记只进不退，删到一张也保持完整
	if err := svc.DeletePhoto(user.ID, second.ID); err != nil {
		t.Fatalf("delete photo failed: %v", err)
	}
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if !stored.ProfileComplete {
		t.Fatal("profile complete flag must not be cleared by photo deletion")
	}
}

func TestAddPhotoAfterMiddleDelete(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	user := createVerifiedUser(t, db, "gaps@example.com", "Abcdef1!")

	first, err := svc.AddPhoto(user.ID, "https://cdn.example.com/a.jpg", 0)
	if err != nil {
		t.Fatalf("first photo failed: %v", err)
	}
	if _, err := svc.AddPhoto(user.ID, "https://cdn.example.com/b.jpg", 0); err != nil {
		t.Fatalf("second photo failed: %v", err)
	}

	// 删掉第一张后继续追加，展示位排在现有最大位之后，不能撞唯一索引
	if err := svc.DeletePhoto(user.ID, first.ID); err != nil {
		t.Fatalf("delete photo failed: %v", err)
	}
	third, err := svc.AddPhoto(user.ID, "https://cdn.example.com/c.jpg", 0)
	if err != nil {
		t.Fatalf("upload after delete failed: %v", err)
	}
	if third.Position != 3 {
		t.Fatalf("expected position 3 after gap, got %d", third.Position)
	}
}

func TestAddPhotoExplicitPosition(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	user := createVerifiedUser(t, db, "explicit@example.com", "Abcdef1!")

	photo, err := svc.AddPhoto(user.ID, "https://cdn.example.com/five.jpg", 5)
	if err != nil {
		t.Fatalf("explicit position failed: %v", err)
	}
	if photo.Position != 5 {
		t.Fatalf("expected position 5, got %d", photo.Position)
	}

	// 指定已占用的展示位被拒绝
	if _, err := svc.AddPhoto(user.ID, "https://cdn.example.com/dup.jpg", 5); !errors.Is(err, ErrPhotoPositionTaken) {
		t.Fatalf("expected ErrPhotoPositionTaken, got %v", err)
	}

	// 缺省追加排到显式位之后
	next, err := svc.AddPhoto(user.ID, "https://cdn.example.com/six.jpg", 0)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if next.Position != 6 {
		t.Fatalf("expected position 6, got %d", next.Position)
	}
}

func TestDeletePhotoOwnerOnly(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	owner := createVerifiedUser(t, db, "owner@example.com", "Abcdef1!")
	intruder := createVerifiedUser(t, db, "intruder@example.com", "Abcdef1!")

	photo, err := svc.AddPhoto(owner.ID, "https://cdn.example.com/mine.jpg", 0)
	if err != nil {
		t.Fatalf("add photo failed: %v", err)
	}

	if err := svc.DeletePhoto(intruder.ID, photo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign photo, got %v", err)
	}
	if err := svc.DeletePhoto(owner.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing photo, got %v", err)
	}
	if err := svc.DeletePhoto(owner.ID, photo.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestGetProfileIncludesOrderedPhotos(t *testing.T) {
	svc, db := setupProfileServiceTest(t)
	user := createVerifiedUser(t, db, "gallery@example.com", "Abcdef1!")

	urls := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
	}
	for _, u := range urls {
		if _, err := svc.AddPhoto(user.ID, u, 0); err != nil {
			t.Fatalf("add photo failed: %v", err)
		}
	}

	view, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if len(view.Photos) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(view.Photos))
	}
	for i, p := range view.Photos {
		if p.Position != i+1 || p.URL != urls[i] {
			t.Fatalf("photo %d out of order: %+v", i, p)
		}
	}
}
