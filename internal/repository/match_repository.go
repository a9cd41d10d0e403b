package repository

import (
	"errors"

	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository 配对数据访问接口
type MatchRepository interface {
	CreateIfAbsent(userA, userB uint) (*models.Match, error)
	GetByID(id uint) (*models.Match, error)
	GetByPair(userA, userB uint) (*models.Match, error)
	ListForUser(userID uint) ([]models.Match, error)
	DeleteIfParticipant(matchID, userID uint) (bool, error)
}

// GormMatchRepository GORM 实现
type GormMatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建配对仓库
func NewMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// CreateIfAbsent 幂等插入配对：
// 用户对先归一化排序，再以 ON CONFLICT DO NOTHING 插入，
// 两个同时到达的互滑请求也不会产生第二行。
func (r *GormMatchRepository) CreateIfAbsent(userA, userB uint) (*models.Match, error) {
	a, b := models.CanonicalPair(userA, userB)
	match := models.Match{UserAID: a, UserBID: b}
	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&match).Error
	if err != nil {
		return nil, err
	}
	// 冲突分支下 Create 不回填主键，统一回读保证返回已存在的行
	return r.GetByPair(a, b)
}

// GetByID 按 ID 获取配对
func (r *GormMatchRepository) GetByID(id uint) (*models.Match, error) {
	var match models.Match
	if err := r.db.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// GetByPair 按归一化用户对获取配对
func (r *GormMatchRepository) GetByPair(userA, userB uint) (*models.Match, error) {
	a, b := models.CanonicalPair(userA, userB)
	var match models.Match
	err := r.db.
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// ListForUser 返回用户的全部配对，最新的在前
func (r *GormMatchRepository) ListForUser(userID uint) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteIfParticipant 仅当请求者是参与方时删除配对，返回是否删除了行
func (r *GormMatchRepository) DeleteIfParticipant(matchID, userID uint) (bool, error) {
	result := r.db.
		Where("id = ? AND (user_a_id = ? OR user_b_id = ?)", matchID, userID, userID).
		Delete(&models.Match{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
