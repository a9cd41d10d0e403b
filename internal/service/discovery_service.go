package service

import (
	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/constants"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/repository"
)

// DiscoveryService 发现与滑动服务
type DiscoveryService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	photoRepo repository.ProfilePhotoRepository
	swipeRepo repository.SwipeRepository
	matchRepo repository.MatchRepository
}

// NewDiscoveryService 创建发现服务
func NewDiscoveryService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	photoRepo repository.ProfilePhotoRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
) *DiscoveryService {
	return &DiscoveryService{
		cfg:       cfg,
		userRepo:  userRepo,
		photoRepo: photoRepo,
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
	}
}

// FeedCandidate 发现页候选项
type FeedCandidate struct {
	UserID         uint     `json:"user_id"`
	DisplayName    string   `json:"display_name"`
	Age            int      `json:"age"`
	Bio            string   `json:"bio"`
	Location       string   `json:"location"`
	Interests      []string `json:"interests"`
	IsVerifiedUser bool     `json:"is_verified_user"`
	PhotoURL       string   `json:"photo_url"`
}

// SwipeResult 滑动结果
type SwipeResult struct {
	Matched       bool  `json:"matched"`
	MatchID       uint  `json:"match_id,omitempty"`
	MatchedUserID uint  `json:"matched_user_id,omitempty"`
}

// Feed 返回发现页候选列表。
// 排除自己、已滑过、被封禁与资料不完整的用户，条数由配置封顶。
func (s *DiscoveryService) Feed(userID uint) ([]FeedCandidate, error) {
	limit := s.cfg.Discovery.FeedPageSize
	if limit <= 0 {
		limit = constants.DefaultFeedPageSize
	}
	users, err := s.userRepo.ListDiscoverCandidates(userID, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]FeedCandidate, 0, len(users))
	for _, u := range users {
		photoURL := ""
		if photo, err := s.photoRepo.PrimaryByUser(u.ID); err == nil && photo != nil {
			photoURL = photo.URL
		}
		candidates = append(candidates, FeedCandidate{
			UserID:         u.ID,
			DisplayName:    u.DisplayName,
			Age:            u.Age,
			Bio:            u.Bio,
			Location:       u.Location,
			Interests:      decodeInterests(u.Interests),
			IsVerifiedUser: u.IsVerifiedUser,
			PhotoURL:       photoURL,
		})
	}
	return candidates, nil
}

// Swipe 记录滑动决定，互相右滑时创建配对。
// 对同一目标重复滑动会覆盖之前的方向；配对创建是幂等的，
// 两边同时右滑也只会有一条配对记录。
func (s *DiscoveryService) Swipe(swiperID, swipedID uint, direction string) (*SwipeResult, error) {
	if direction != constants.SwipeDirectionLeft && direction != constants.SwipeDirectionRight {
		return nil, ErrInvalidSwipeDirection
	}
	if swiperID == swipedID {
		return nil, ErrSelfSwipe
	}

	target, err := s.userRepo.GetByID(swipedID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	if err := s.swipeRepo.Upsert(swiperID, swipedID, direction); err != nil {
		return nil, err
	}

	if direction != constants.SwipeDirectionRight {
		return &SwipeResult{Matched: false}, nil
	}

	reciprocal, err := s.swipeRepo.HasRightSwipe(swipedID, swiperID)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		return &SwipeResult{Matched: false}, nil
	}

	match, err := s.matchRepo.CreateIfAbsent(swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	logger.Infow("match_created", "match_id", match.ID, "user_a", match.UserAID, "user_b", match.UserBID)

	return &SwipeResult{
		Matched:       true,
		MatchID:       match.ID,
		MatchedUserID: swipedID,
	}, nil
}
