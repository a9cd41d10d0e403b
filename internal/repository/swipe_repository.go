package repository

import (
	"github.com/heartlink/internal/constants"
	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeRepository 滑动数据访问接口
type SwipeRepository interface {
	Upsert(swiperID, swipedID uint, direction string) error
	HasRightSwipe(swiperID, swipedID uint) (bool, error)
	Get(swiperID, swipedID uint) (*models.Swipe, error)
}

// GormSwipeRepository GORM 实现
type GormSwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository 创建滑动仓库
func NewSwipeRepository(db *gorm.DB) *GormSwipeRepository {
	return &GormSwipeRepository{db: db}
}

// Upsert 写入滑动决定：
// (swiper_id, swiped_id) 已存在时覆盖 direction，否则插入新行。
func (r *GormSwipeRepository) Upsert(swiperID, swipedID uint, direction string) error {
	swipe := models.Swipe{
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Direction: direction,
	}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "swiped_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
		}).
		Create(&swipe).Error
}

// HasRightSwipe 判断 swiper 是否右滑过 swiped（互滑检查用）
func (r *GormSwipeRepository) HasRightSwipe(swiperID, swipedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Swipe{}).
		Where("swiper_id = ? AND swiped_id = ? AND direction = ?",
			swiperID, swipedID, constants.SwipeDirectionRight).
		Count(&count).Error
	return count > 0, err
}

// Get 获取一条滑动记录
func (r *GormSwipeRepository) Get(swiperID, swipedID uint) (*models.Swipe, error) {
	var swipe models.Swipe
	err := r.db.
		Where("swiper_id = ? AND swiped_id = ?", swiperID, swipedID).
		First(&swipe).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}
