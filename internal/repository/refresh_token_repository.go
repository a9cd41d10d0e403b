package repository

import (
	"errors"
	"time"

	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository 刷新令牌数据访问接口
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindActiveByUserAndHash(userID uint, tokenHash string, now time.Time) (*models.RefreshToken, error)
	Revoke(id uint) error
	RevokeByHash(userID uint, tokenHash string) error
	RevokeAllForUser(userID uint) error
}

// GormRefreshTokenRepository GORM 实现
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository 创建刷新令牌仓库
func NewRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Create 写入刷新令牌记录
func (r *GormRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindActiveByUserAndHash 查找该用户名下哈希匹配、未过期且未吊销的令牌
func (r *GormRefreshTokenRepository) FindActiveByUserAndHash(userID uint, tokenHash string, now time.Time) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.
		Where("user_id = ?", userID).
		Where("token_hash = ?", tokenHash).
		Where("expires_at > ?", now).
		Where("revoked = ?", false).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// Revoke 按 ID 吊销令牌
func (r *GormRefreshTokenRepository) Revoke(id uint) error {
	return r.db.Model(&models.RefreshToken{}).Where("id = ?", id).
		Update("revoked", true).Error
}

// RevokeByHash 按哈希吊销该用户的令牌
func (r *GormRefreshTokenRepository) RevokeByHash(userID uint, tokenHash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Update("revoked", true).Error
}

// RevokeAllForUser 吊销该用户的全部令牌（全设备下线）
func (r *GormRefreshTokenRepository) RevokeAllForUser(userID uint) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}
