package models

import (
	"time"

	"gorm.io/datatypes"
)

// User 用户表：账号凭证、邮箱验证状态与公开资料字段
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`              // 主键
	Email        string `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash string `gorm:"default:''" json:"-"`               // 密码哈希（社交登录账号为空）

	EmailVerified            bool       `gorm:"not null;default:false" json:"email_verified"` // 邮箱是否已验证
	VerificationToken        *string    `gorm:"index" json:"-"`                               // 当前有效的验证令牌（同一时间最多一个）
	VerificationTokenExpires *time.Time `json:"-"`                                            // 验证令牌过期时间

	GoogleID    *string `gorm:"uniqueIndex" json:"-"` // Google 账号 ID
	AppleID     *string `gorm:"uniqueIndex" json:"-"` // Apple 账号 ID
	FacebookID  *string `gorm:"uniqueIndex" json:"-"` // Facebook 账号 ID
	InstagramID *string `gorm:"uniqueIndex" json:"-"` // Instagram 账号 ID

	IsVerifiedUser  bool `gorm:"not null;default:false" json:"is_verified_user"`  // 人工认证标记
	IsSuspended     bool `gorm:"not null;default:false" json:"-"`                 // 是否封禁
	ProfileComplete bool `gorm:"not null;default:false" json:"profile_complete"`  // 资料是否完整（至少两张照片，单向置位）

	DisplayName string         `gorm:"default:''" json:"display_name"` // 昵称
	Age         int            `gorm:"default:0" json:"age"`           // 年龄
	Bio         string         `gorm:"default:''" json:"bio"`          // 个人简介
	Location    string         `gorm:"default:''" json:"location"`     // 所在地
	Interests   datatypes.JSON `json:"interests"`                      // 兴趣标签（有序字符串数组）

	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"`              // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// HasPasswordCredential 是否持有密码凭证（社交登录账号不能走密码登录）
func (u *User) HasPasswordCredential() bool {
	return u != nil && u.PasswordHash != ""
}
