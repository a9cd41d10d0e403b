package models

import "time"

// Message 消息表：只追加，按创建时间升序读取
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // 主键
	MatchID   uint      `gorm:"index;not null" json:"match_id"` // 所属配对
	SenderID  uint      `gorm:"not null" json:"sender_id"`      // 发送者（必须是配对参与方）
	Content   string    `gorm:"not null" json:"content"`        // 消息内容
	CreatedAt time.Time `gorm:"index" json:"created_at"`        // 发送时间
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
