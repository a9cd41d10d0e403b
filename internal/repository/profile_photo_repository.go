package repository

import (
	"errors"

	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
)

// ProfilePhotoRepository 资料照片数据访问接口
type ProfilePhotoRepository interface {
	Create(photo *models.ProfilePhoto) error
	GetByID(id uint) (*models.ProfilePhoto, error)
	ListByUser(userID uint) ([]models.ProfilePhoto, error)
	PrimaryByUser(userID uint) (*models.ProfilePhoto, error)
	CountByUser(userID uint) (int64, error)
	MaxPosition(userID uint) (int, error)
	ExistsAtPosition(userID uint, position int) (bool, error)
	Delete(id uint) error
}

// GormProfilePhotoRepository GORM 实现
type GormProfilePhotoRepository struct {
	db *gorm.DB
}

// NewProfilePhotoRepository 创建资料照片仓库
func NewProfilePhotoRepository(db *gorm.DB) *GormProfilePhotoRepository {
	return &GormProfilePhotoRepository{db: db}
}

// Create 追加一张照片
func (r *GormProfilePhotoRepository) Create(photo *models.ProfilePhoto) error {
	return r.db.Create(photo).Error
}

// GetByID 按 ID 获取照片
func (r *GormProfilePhotoRepository) GetByID(id uint) (*models.ProfilePhoto, error) {
	var photo models.ProfilePhoto
	if err := r.db.First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// ListByUser 按展示顺序返回用户的全部照片
func (r *GormProfilePhotoRepository) ListByUser(userID uint) ([]models.ProfilePhoto, error) {
	var photos []models.ProfilePhoto
	err := r.db.Where("user_id = ?", userID).
		Order("position ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// PrimaryByUser 返回用户的主照片（position 最小的一张）
func (r *GormProfilePhotoRepository) PrimaryByUser(userID uint) (*models.ProfilePhoto, error) {
	var photo models.ProfilePhoto
	err := r.db.Where("user_id = ?", userID).
		Order("position ASC").
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// CountByUser 统计用户照片数
func (r *GormProfilePhotoRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProfilePhoto{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// MaxPosition 返回用户照片的最大展示位，无照片时为 0。
// 删除中间照片会留下空位，追加时用 max+1 而不是照片数推位置。
func (r *GormProfilePhotoRepository) MaxPosition(userID uint) (int, error) {
	var max int
	err := r.db.Model(&models.ProfilePhoto{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// ExistsAtPosition 判断该展示位是否已被占用
func (r *GormProfilePhotoRepository) ExistsAtPosition(userID uint, position int) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProfilePhoto{}).
		Where("user_id = ? AND position = ?", userID, position).
		Count(&count).Error
	return count > 0, err
}

// Delete 删除照片
func (r *GormProfilePhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProfilePhoto{}, id).Error
}
