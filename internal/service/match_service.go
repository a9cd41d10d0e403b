package service

import (
	"time"

	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/repository"
)

// MatchService 配对服务
type MatchService struct {
	userRepo  repository.UserRepository
	photoRepo repository.ProfilePhotoRepository
	matchRepo repository.MatchRepository
}

// NewMatchService 创建配对服务
func NewMatchService(
	userRepo repository.UserRepository,
	photoRepo repository.ProfilePhotoRepository,
	matchRepo repository.MatchRepository,
) *MatchService {
	return &MatchService{
		userRepo:  userRepo,
		photoRepo: photoRepo,
		matchRepo: matchRepo,
	}
}

// MatchView 配对视图，携带对方的摘要信息
type MatchView struct {
	MatchID     uint      `json:"match_id"`
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Age         int       `json:"age"`
	PhotoURL    string    `json:"photo_url"`
	MatchedAt   time.Time `json:"matched_at"`
}

// ListMatches 返回用户的配对列表，最新配对在前
func (s *MatchService) ListMatches(userID uint) ([]MatchView, error) {
	matches, err := s.matchRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		otherID := m.Counterpart(userID)
		view := MatchView{
			MatchID:   m.ID,
			UserID:    otherID,
			MatchedAt: m.CreatedAt,
		}
		if other, err := s.userRepo.GetByID(otherID); err == nil && other != nil {
			view.DisplayName = other.DisplayName
			view.Age = other.Age
		}
		if photo, err := s.photoRepo.PrimaryByUser(otherID); err == nil && photo != nil {
			view.PhotoURL = photo.URL
		}
		views = append(views, view)
	}
	return views, nil
}

// Unmatch 解除配对，仅参与方可操作。
// 配对不存在与非参与方不作区分，统一返回未找到。
func (s *MatchService) Unmatch(matchID, userID uint) error {
	deleted, err := s.matchRepo.DeleteIfParticipant(matchID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Infow("match_removed", "match_id", matchID, "user_id", userID)
	return nil
}
