package queue

import (
	"encoding/json"

	"github.com/heartlink/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerificationEmail 邮箱验证邮件任务
	TaskVerificationEmail = constants.TaskVerificationEmail
	// TaskWelcomeEmail 欢迎邮件任务
	TaskWelcomeEmail = constants.TaskWelcomeEmail
)

// VerificationEmailPayload 验证邮件任务载荷
type VerificationEmailPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// WelcomeEmailPayload 欢迎邮件任务载荷
type WelcomeEmailPayload struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// NewVerificationEmailTask 创建验证邮件任务
func NewVerificationEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerificationEmail, body), nil
}

// NewWelcomeEmailTask 创建欢迎邮件任务
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWelcomeEmail, body), nil
}
