package service

import (
	"time"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"
)

// VerificationService 邮箱验证令牌服务
type VerificationService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewVerificationService 创建邮箱验证服务实例
func NewVerificationService(cfg *config.Config, userRepo repository.UserRepository) *VerificationService {
	return &VerificationService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// IssueToken 为用户生成并存储新的验证令牌，覆盖之前未消费的令牌
func (s *VerificationService) IssueToken(userID uint) (string, error) {
	token, err := randomHexToken(32)
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(time.Duration(s.cfg.Verification.TokenTTLHours) * time.Hour)
	if err := s.userRepo.StoreVerificationToken(userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// Consume 消费验证令牌并置位邮箱验证标记。
// 令牌未知、已过期、已消费统一返回 ErrVerificationTokenInvalid。
func (s *VerificationService) Consume(token string) (*models.User, error) {
	user, err := s.userRepo.FindByValidVerificationToken(token, time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrVerificationTokenInvalid
	}
	if err := s.userRepo.MarkEmailVerified(user.ID); err != nil {
		return nil, err
	}
	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpires = nil
	return user, nil
}
