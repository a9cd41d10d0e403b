package models

import "time"

// Swipe 滑动决定表
//
// 复合主键 (SwiperID, SwipedID)：同一对用户只保留一行，重复滑动覆盖方向。
type Swipe struct {
	SwiperID  uint      `gorm:"primaryKey" json:"swiper_id"`          // 发起滑动的用户
	SwipedID  uint      `gorm:"primaryKey" json:"swiped_id"`          // 被滑动的用户
	Direction string    `gorm:"size:16;not null" json:"direction"`    // 方向（left/right）
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`     // 首次滑动时间
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`     // 最近一次滑动时间
}

// TableName 指定表名
func (Swipe) TableName() string {
	return "swipes"
}
