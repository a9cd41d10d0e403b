package service

import (
	"strings"

	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"
)

// MessageService 配对内消息服务
type MessageService struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

// NewMessageService 创建消息服务
func NewMessageService(matchRepo repository.MatchRepository, messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

// MessageView 消息视图
type MessageView struct {
	ID        uint   `json:"id"`
	MatchID   uint   `json:"match_id"`
	SenderID  uint   `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// ListMessages 返回配对内的全部消息，时间正序。
// 仅参与方可读；配对不存在返回未找到，非参与方返回禁止访问。
func (s *MessageService) ListMessages(matchID, userID uint) ([]MessageView, error) {
	if err := s.requireParticipant(matchID, userID); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.ListByMatch(matchID)
	if err != nil {
		return nil, err
	}
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, buildMessageView(&m))
	}
	return views, nil
}

// SendMessage 在配对内发送消息，仅参与方可写
func (s *MessageService) SendMessage(matchID, senderID uint, content string) (*MessageView, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.requireParticipant(matchID, senderID); err != nil {
		return nil, err
	}

	message := &models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  trimmed,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	view := buildMessageView(message)
	return &view, nil
}

func (s *MessageService) requireParticipant(matchID, userID uint) error {
	match, err := s.matchRepo.GetByID(matchID)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrNotFound
	}
	if !match.Involves(userID) {
		return ErrNotMatchParticipant
	}
	return nil
}

func buildMessageView(m *models.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Unix(),
	}
}
