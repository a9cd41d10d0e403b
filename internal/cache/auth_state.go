package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/heartlink/internal/models"
)

const authStateCacheTTL = 5 * time.Minute

// UserAuthState 用户鉴权快照
// 缓存封禁与验证标记，让每个请求不必回表
type UserAuthState struct {
	UserID        uint  `json:"user_id"`
	IsSuspended   bool  `json:"is_suspended"`
	EmailVerified bool  `json:"email_verified"`
	UpdatedAt     int64 `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:        user.ID,
		IsSuspended:   user.IsSuspended,
		EmailVerified: user.EmailVerified,
		UpdatedAt:     time.Now().Unix(),
	}
}

// GetUserAuthState 获取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState 删除用户鉴权快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
