package models

import "time"

// ProfilePhoto 资料照片表：同一用户内 position 唯一，最小 position 为主照片
type ProfilePhoto struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_photo_user_position" json:"user_id"`  // 所属用户
	URL       string    `gorm:"column:photo_url;not null" json:"url"`                         // 照片地址
	Position  int       `gorm:"not null;uniqueIndex:idx_photo_user_position" json:"position"` // 展示顺序
	CreatedAt time.Time `json:"created_at"`                                                   // 创建时间
}

// TableName 指定表名
func (ProfilePhoto) TableName() string {
	return "profile_photos"
}
