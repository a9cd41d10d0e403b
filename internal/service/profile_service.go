package service

import (
	"encoding/json"
	"strings"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"
)

// profileCompleteMinPhotos 资料完整所需的最少照片数
const profileCompleteMinPhotos = 2

// ProfileService 用户资料服务
type ProfileService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	photoRepo repository.ProfilePhotoRepository
}

// NewProfileService 创建资料服务
func NewProfileService(cfg *config.Config, userRepo repository.UserRepository, photoRepo repository.ProfilePhotoRepository) *ProfileService {
	return &ProfileService{
		cfg:       cfg,
		userRepo:  userRepo,
		photoRepo: photoRepo,
	}
}

// ProfilePhotoView 资料照片视图
type ProfilePhotoView struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// ProfileView 资料视图
type ProfileView struct {
	UserID          uint               `json:"user_id"`
	DisplayName     string             `json:"display_name"`
	Age             int                `json:"age"`
	Bio             string             `json:"bio"`
	Location        string             `json:"location"`
	Interests       []string           `json:"interests"`
	IsVerifiedUser  bool               `json:"is_verified_user"`
	ProfileComplete bool               `json:"profile_complete"`
	Photos          []ProfilePhotoView `json:"photos"`
}

// ProfileUpdateInput 资料更新输入，整体覆盖可编辑字段
type ProfileUpdateInput struct {
	DisplayName string
	Age         int
	Bio         string
	Location    string
	Interests   []string
}

// GetProfile 获取用户资料和照片
func (s *ProfileService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	photos, err := s.photoRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildProfileView(user, photos), nil
}

// UpdateProfile 覆盖更新资料字段，返回更新后的资料
func (s *ProfileService) UpdateProfile(userID uint, input ProfileUpdateInput) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	interests := input.Interests
	if interests == nil {
		interests = []string{}
	}
	interestsJSON, err := json.Marshal(interests)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"display_name": strings.TrimSpace(input.DisplayName),
		"age":          input.Age,
		"bio":          input.Bio,
		"location":     strings.TrimSpace(input.Location),
		"interests":    interestsJSON,
	}
	if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// AddPhoto 添加照片。position 大于 0 时用请求指定的展示位，
// 已占用则拒绝；不指定时排到当前最大展示位之后。
// 照片数首次达到门槛时置位资料完整标记，该标记只进不退。
func (s *ProfileService) AddPhoto(userID uint, url string, position int) (*ProfilePhotoView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if position > 0 {
		taken, err := s.photoRepo.ExistsAtPosition(userID, position)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhotoPositionTaken
		}
	} else {
		max, err := s.photoRepo.MaxPosition(userID)
		if err != nil {
			return nil, err
		}
		position = max + 1
	}

	count, err := s.photoRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	photo := &models.ProfilePhoto{
		UserID:   userID,
		URL:      strings.TrimSpace(url),
		Position: position,
	}
	if err := s.photoRepo.Create(photo); err != nil {
		return nil, err
	}

	if !user.ProfileComplete && count+1 >= profileCompleteMinPhotos {
		if err := s.userRepo.SetProfileComplete(userID); err != nil {
			return nil, err
		}
		logger.Infow("profile_complete", "user_id", userID, "photo_count", count+1)
	}

	return &ProfilePhotoView{ID: photo.ID, URL: photo.URL, Position: photo.Position}, nil
}

// DeletePhoto 删除本人的照片
func (s *ProfileService) DeletePhoto(userID, photoID uint) error {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		return err
	}
	if photo == nil || photo.UserID != userID {
		return ErrNotFound
	}
	return s.photoRepo.Delete(photoID)
}

func buildProfileView(user *models.User, photos []models.ProfilePhoto) *ProfileView {
	view := &ProfileView{
		UserID:          user.ID,
		DisplayName:     user.DisplayName,
		Age:             user.Age,
		Bio:             user.Bio,
		Location:        user.Location,
		Interests:       decodeInterests(user.Interests),
		IsVerifiedUser:  user.IsVerifiedUser,
		ProfileComplete: user.ProfileComplete,
		Photos:          make([]ProfilePhotoView, 0, len(photos)),
	}
	for _, p := range photos {
		view.Photos = append(view.Photos, ProfilePhotoView{
			ID:       p.ID,
			URL:      p.URL,
			Position: p.Position,
		})
	}
	return view
}

func decodeInterests(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var interests []string
	if err := json.Unmarshal(raw, &interests); err != nil {
		return []string{}
	}
	return interests
}
