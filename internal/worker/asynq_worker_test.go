package worker

import (
	"context"
	"testing"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/provider"
	"github.com/heartlink/internal/queue"
	"github.com/heartlink/internal/service"

	"github.com/hibiken/asynq"
)

func newTestConsumer() *Consumer {
	return NewConsumer(&provider.Container{
		EmailService: service.NewEmailService(&config.EmailConfig{}),
	})
}

func TestHandleVerificationEmailNilTask(t *testing.T) {
	c := newTestConsumer()
	if err := c.handleVerificationEmail(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}

func TestHandleVerificationEmailInvalidJSON(t *testing.T) {
	c := newTestConsumer()
	task := asynq.NewTask(queue.TaskVerificationEmail, []byte("{not json"))
	if err := c.handleVerificationEmail(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for retry visibility")
	}
}

func TestHandleVerificationEmailEmptyPayload(t *testing.T) {
	c := newTestConsumer()
	task, err := queue.NewVerificationEmailTask(queue.VerificationEmailPayload{UserID: 1})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleVerificationEmail(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be dropped, got %v", err)
	}
}

func TestHandleVerificationEmailDisabledServiceDropsTask(t *testing.T) {
	c := newTestConsumer()
	task, err := queue.NewVerificationEmailTask(queue.VerificationEmailPayload{
		UserID: 1,
		Email:  "user@example.com",
		Token:  "token-123",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 邮件服务未启用属于配置问题，任务不应进入重试
	if err := c.handleVerificationEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email service should drop task, got %v", err)
	}
}

func TestHandleWelcomeEmailNilEmailService(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task, err := queue.NewWelcomeEmailTask(queue.WelcomeEmailPayload{
		UserID:      2,
		Email:       "user@example.com",
		DisplayName: "User",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("nil email service should be skipped, got %v", err)
	}
}

func TestHandleWelcomeEmailEmptyPayload(t *testing.T) {
	c := newTestConsumer()
	task, err := queue.NewWelcomeEmailTask(queue.WelcomeEmailPayload{UserID: 3})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be dropped, got %v", err)
	}
}
