package repository

import (
	"github.com/heartlink/internal/models"

	"gorm.io/gorm"
)

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	Create(message *models.Message) error
	ListByMatch(matchID uint) ([]models.Message, error)
}

// GormMessageRepository GORM 实现
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create 追加一条消息
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByMatch 按时间正序返回配对内的全部消息
func (r *GormMessageRepository) ListByMatch(matchID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
