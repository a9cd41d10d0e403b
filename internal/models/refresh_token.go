package models

import "time"

// RefreshToken 刷新令牌表
//
// 只保存令牌的 SHA-256 哈希，原始值仅在签发时返回给客户端一次。
// 同一用户可同时持有多条记录（多设备登录）；刷新时旧记录置 revoked，
// 不存在从 revoked 恢复的路径。
type RefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`                 // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`        // 所属用户
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`        // 令牌哈希
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`     // 过期时间
	Revoked   bool      `gorm:"not null;default:false" json:"-"`      // 是否已吊销
	CreatedAt time.Time `json:"created_at"`                           // 签发时间
}

// TableName 指定表名
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
