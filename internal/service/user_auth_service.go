package service

import (
	"context"
	"strings"
	"time"

	"github.com/heartlink/internal/cache"
	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/queue"
	"github.com/heartlink/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg                 *config.Config
	userRepo            repository.UserRepository
	tokenService        *TokenService
	verificationService *VerificationService
	emailService        *EmailService
	queueClient         *queue.Client
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenService *TokenService,
	verificationService *VerificationService,
	emailService *EmailService,
	queueClient *queue.Client,
) *UserAuthService {
	return &UserAuthService{
		cfg:                 cfg,
		userRepo:            userRepo,
		tokenService:        tokenService,
		verificationService: verificationService,
		emailService:        emailService,
		queueClient:         queueClient,
	}
}

// Register 用户注册。
// 创建账号后签发验证令牌并投递验证邮件，邮件失败不阻断注册。
func (s *UserAuthService) Register(email, password, displayName string) (*models.User, error) {
	normalized := normalizeEmail(email)
	if err := validateEmail(normalized); err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.verificationService.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	s.dispatchVerificationEmail(user, token)

	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// Login 用户登录，成功后签发令牌对
func (s *UserAuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	normalized := normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	// 第三方登录账号没有本地密码，不能走密码登录
	if !user.HasPasswordCredential() {
		return nil, nil, ErrInvalidCredentials
	}
	// 账号状态先于密码核对：未验证邮箱即使密码正确也拒绝
	if !user.EmailVerified {
		return nil, nil, ErrEmailNotVerified
	}
	if user.IsSuspended {
		return nil, nil, ErrUserSuspended
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, pair, nil
}

// VerifyEmail 消费验证令牌，验证通过后投递欢迎邮件
func (s *UserAuthService) VerifyEmail(token string) (*models.User, error) {
	user, err := s.verificationService.Consume(token)
	if err != nil {
		return nil, err
	}
	s.dispatchWelcomeEmail(user)
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// ResendVerification 重新签发验证令牌并投递验证邮件
func (s *UserAuthService) ResendVerification(email string) error {
	normalized := normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.EmailVerified {
		return ErrEmailAlreadyVerified
	}

	token, err := s.verificationService.IssueToken(user.ID)
	if err != nil {
		return err
	}
	s.dispatchVerificationEmail(user, token)
	return nil
}

// Refresh 刷新令牌换取新令牌对，旧刷新令牌随即失效。
// 令牌必须属于请求声明的用户，归属不符一律视为无效。
func (s *UserAuthService) Refresh(userID uint, rawRefresh string) (*models.User, *TokenPair, error) {
	pair, user, err := s.tokenService.RotateRefreshToken(userID, rawRefresh, s.userRepo.GetByID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout 吊销指定刷新令牌并清除鉴权快照
func (s *UserAuthService) Logout(userID uint, rawRefresh string) error {
	if strings.TrimSpace(rawRefresh) != "" {
		if err := s.tokenService.RevokeRefreshToken(userID, rawRefresh); err != nil {
			return err
		}
	}
	_ = cache.DelUserAuthState(context.Background(), userID)
	return nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

// dispatchVerificationEmail 投递验证邮件。
// 队列可用走异步任务，否则后台直发，失败只记日志。
func (s *UserAuthService) dispatchVerificationEmail(user *models.User, token string) {
	payload := queue.VerificationEmailPayload{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueVerificationEmail(payload); err == nil {
			return
		} else {
			logger.Warnw("verification_email_enqueue_failed", "user_id", user.ID, "error", err)
		}
	}
	go func() {
		if err := s.emailService.SendVerificationEmail(payload.Email, payload.Token); err != nil {
			logger.Warnw("verification_email_send_failed", "user_id", payload.UserID, "error", err)
		}
	}()
}

// dispatchWelcomeEmail 投递欢迎邮件
func (s *UserAuthService) dispatchWelcomeEmail(user *models.User) {
	payload := queue.WelcomeEmailPayload{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueWelcomeEmail(payload); err == nil {
			return
		} else {
			logger.Warnw("welcome_email_enqueue_failed", "user_id", user.ID, "error", err)
		}
	}
	go func() {
		if err := s.emailService.SendWelcomeEmail(payload.Email, payload.DisplayName); err != nil {
			logger.Warnw("welcome_email_send_failed", "user_id", payload.UserID, "error", err)
		}
	}()
}

// normalizeEmail 统一邮箱格式
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
