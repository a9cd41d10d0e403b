package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/provider"
	"github.com/heartlink/internal/queue"
	"github.com/heartlink/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVerificationEmail, c.handleVerificationEmail)
	mux.HandleFunc(queue.TaskWelcomeEmail, c.handleWelcomeEmail)
}

func (c *Consumer) handleVerificationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verification_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verification_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Email) == "" || strings.TrimSpace(payload.Token) == "" {
		logger.Debugw("worker_verification_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_verification_email_skip_email_service_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.EmailService.SendVerificationEmail(payload.Email, payload.Token); err != nil {
		if isEmailConfigError(err) {
			logger.Debugw("worker_verification_email_skip_disabled", "user_id", payload.UserID)
			return nil
		}
		logger.Warnw("worker_verification_email_send_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_welcome_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_welcome_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Email) == "" {
		logger.Debugw("worker_welcome_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_welcome_email_skip_email_service_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.EmailService.SendWelcomeEmail(payload.Email, payload.DisplayName); err != nil {
		if isEmailConfigError(err) {
			logger.Debugw("worker_welcome_email_skip_disabled", "user_id", payload.UserID)
			return nil
		}
		logger.Warnw("worker_welcome_email_send_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}

// isEmailConfigError 配置类与收件人拒收类失败重试无意义，直接丢弃任务
func isEmailConfigError(err error) bool {
	return errors.Is(err, service.ErrEmailServiceDisabled) ||
		errors.Is(err, service.ErrEmailServiceNotConfigured) ||
		errors.Is(err, service.ErrEmailRecipientRejected)
}
