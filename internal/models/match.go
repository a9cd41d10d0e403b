package models

import "time"

// Match 配对表
//
// (UserAID, UserBID) 按升序归一化存储并加唯一索引，
// 配合幂等插入保证同一对用户最多一行，与双方互滑的先后顺序无关。
type Match struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserAID   uint      `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_a_id"`     // 较小的用户 ID
	UserBID   uint      `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_b_id"`     // 较大的用户 ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                  // 配对时间
}

// TableName 指定表名
func (Match) TableName() string {
	return "matches"
}

// CanonicalPair 返回按升序归一化后的用户对
func CanonicalPair(userA, userB uint) (uint, uint) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// Involves 判断用户是否为该配对的参与方
func (m *Match) Involves(userID uint) bool {
	return m != nil && (m.UserAID == userID || m.UserBID == userID)
}

// Counterpart 返回配对中的另一方用户 ID
func (m *Match) Counterpart(userID uint) uint {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
