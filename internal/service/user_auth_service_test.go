package service

import (
	"errors"
	"testing"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/queue"
	"github.com/heartlink/internal/repository"

	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "user_auth_service_test")
	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	tokenService := NewTokenService(cfg, repository.NewRefreshTokenRepository(db))
	verificationService := NewVerificationService(cfg, userRepo)
	emailService := NewEmailService(&config.EmailConfig{})
	queueClient, err := queue.NewClient(&config.QueueConfig{})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewUserAuthService(cfg, userRepo, tokenService, verificationService, emailService, queueClient)
	return svc, db
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register("New.User@Example.com ", "Abcdef1!", " Nina ")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "Nina" {
		t.Fatalf("expected trimmed display name, got %q", user.DisplayName)
	}
	if user.EmailVerified {
		t.Fatal("new user must start unverified")
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.VerificationToken == nil || *stored.VerificationToken == "" {
		t.Fatal("expected verification token to be issued")
	}
	if stored.PasswordHash == "Abcdef1!" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("dup@example.com", "Abcdef1!", "First"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// 大小写不同也算同一个邮箱
	if _, err := svc.Register("DUP@example.com", "Abcdef1!", "Second"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("not-an-email", "Abcdef1!", "X"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register("weak@example.com", "short", "X"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginFlow(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createVerifiedUser(t, db, "login@example.com", "Abcdef1!")

	user, pair, err := svc.Login("login@example.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if user.Email != "login@example.com" {
		t.Fatalf("unexpected user: %q", user.Email)
	}

	if _, _, err := svc.Login("login@example.com", "WrongPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("missing@example.com", "Abcdef1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginRejectsUnverifiedEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register("pending@example.com", "Abcdef1!", "Pending"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login("pending@example.com", "Abcdef1!"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestLoginChecksAccountStateBeforePassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	// 未验证账号密码错也要报未验证，不暴露密码是否正确
	if _, err := svc.Register("state@example.com", "Abcdef1!", "S"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login("state@example.com", "WrongPass1!"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified with wrong password, got %v", err)
	}

	// 已验证但被封禁的账号同理，封禁优先于密码核对
	banned := createVerifiedUser(t, db, "banned-state@example.com", "Abcdef1!")
	if err := db.Model(banned).Update("is_suspended", true).Error; err != nil {
		t.Fatalf("suspend user failed: %v", err)
	}
	if _, _, err := svc.Login("banned-state@example.com", "WrongPass1!"); !errors.Is(err, ErrUserSuspended) {
		t.Fatalf("expected ErrUserSuspended with wrong password, got %v", err)
	}
}

func TestLoginRejectsSuspendedUser(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := createVerifiedUser(t, db, "banned@example.com", "Abcdef1!")
	if err := db.Model(user).Update("is_suspended", true).Error; err != nil {
		t.Fatalf("suspend user failed: %v", err)
	}

	if _, _, err := svc.Login("banned@example.com", "Abcdef1!"); !errors.Is(err, ErrUserSuspended) {
		t.Fatalf("expected ErrUserSuspended, got %v", err)
	}
}

func TestVerifyEmailIsOneShot(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register("verify@example.com", "Abcdef1!", "V")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	token := *stored.VerificationToken

	verified, err := svc.VerifyEmail(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !verified.EmailVerified {
		t.Fatal("expected EmailVerified true after verify")
	}

	// 令牌消费后立即失效
	if _, err := svc.VerifyEmail(token); !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected ErrVerificationTokenInvalid on reuse, got %v", err)
	}

	if _, _, err := svc.Login("verify@example.com", "Abcdef1!"); err != nil {
		t.Fatalf("login after verify failed: %v", err)
	}
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.VerifyEmail("bogus-token"); !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected ErrVerificationTokenInvalid, got %v", err)
	}
}

func TestResendVerification(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register("resend@example.com", "Abcdef1!", "R")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	var before models.User
	if err := db.First(&before, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}

	if err := svc.ResendVerification("resend@example.com"); err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	var after models.User
	if err := db.First(&after, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if *after.VerificationToken == *before.VerificationToken {
		t.Fatal("resend must rotate the verification token")
	}

	// 旧令牌被覆盖后不再可用
	if _, err := svc.VerifyEmail(*before.VerificationToken); !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected old token invalid, got %v", err)
	}

	if err := svc.ResendVerification("missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	createVerifiedUser(t, db, "done@example.com", "Abcdef1!")
	if err := svc.ResendVerification("done@example.com"); !errors.Is(err, ErrEmailAlreadyVerified) {
		t.Fatalf("expected ErrEmailAlreadyVerified, got %v", err)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createVerifiedUser(t, db, "session@example.com", "Abcdef1!")

	user, pair, err := svc.Login("session@example.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 归属不符的用户 ID 换不到新令牌
	if _, _, err := svc.Refresh(user.ID+1, pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected foreign user id to be rejected, got %v", err)
	}

	refreshedUser, next, err := svc.Refresh(user.ID, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshedUser.ID != user.ID {
		t.Fatalf("unexpected user after refresh: %d", refreshedUser.ID)
	}
	if _, _, err := svc.Refresh(user.ID, pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected rotated token to be rejected, got %v", err)
	}

	if err := svc.Logout(user.ID, next.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, _, err := svc.Refresh(user.ID, next.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("expected logged-out token to be rejected, got %v", err)
	}
}
