package repository

import (
	"errors"
	"time"

	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error
	StoreVerificationToken(userID uint, token string, expiresAt time.Time) error
	FindByValidVerificationToken(token string, now time.Time) (*models.User, error)
	MarkEmailVerified(userID uint) error
	SetProfileComplete(userID uint) error
	ListDiscoverCandidates(userID uint, limit int) ([]models.User, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateProfile 整行覆盖可变资料字段
func (r *GormUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// StoreVerificationToken 写入验证令牌，覆盖该用户之前的令牌
func (r *GormUserRepository) StoreVerificationToken(userID uint, token string, expiresAt time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"verification_token":         token,
		"verification_token_expires": expiresAt,
	}).Error
}

// FindByValidVerificationToken 查找持有未过期令牌且邮箱尚未验证的用户。
// 令牌未知、已过期、邮箱已验证统一视为未找到。
func (r *GormUserRepository) FindByValidVerificationToken(token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("verification_token = ?", token).
		Where("verification_token_expires > ?", now).
		Where("email_verified = ?", false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// MarkEmailVerified 置位验证标记并清除令牌字段（一次性消费）
func (r *GormUserRepository) MarkEmailVerified(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_verified":             true,
		"verification_token":         nil,
		"verification_token_expires": nil,
	}).Error
}

// SetProfileComplete 置位资料完整标记（单向）
func (r *GormUserRepository) SetProfileComplete(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_complete", true).Error
}

// ListDiscoverCandidates 返回发现页候选用户：
// 排除自己、被封禁账号、资料不完整账号，以及该用户已滑过的对象。
func (r *GormUserRepository) ListDiscoverCandidates(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	swiped := r.db.Model(&models.Swipe{}).
		Select("swiped_id").
		Where("swiper_id = ?", userID)
	err := r.db.
		Where("id != ?", userID).
		Where("profile_complete = ?", true).
		Where("is_suspended = ?", false).
		Where("id NOT IN (?)", swiped).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
