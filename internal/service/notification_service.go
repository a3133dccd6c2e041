package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/grade-genius-api/pkg/errors"
	"github.com/noah-isme/grade-genius-api/pkg/jobs"
)

const notificationJobType = "grade_summary"

// NotificationConfig configures webhook delivery.
type NotificationConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

type webhookPayload struct {
	Content string `json:"content"`
}

// NotificationService posts exported summaries to a chat webhook in the background.
type NotificationService struct {
	queue   *jobs.Queue
	client  *http.Client
	metrics *MetricsService
	logger  *zap.Logger
	cfg     NotificationConfig
}

// NewNotificationService constructs a NotificationService. The queue is not started.
func NewNotificationService(cfg NotificationConfig, client *http.Client, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.WebhookURL == "" {
		cfg.Enabled = false
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	svc := &NotificationService{client: client, metrics: metrics, logger: logger, cfg: cfg}
	svc.queue = jobs.NewQueue("notifications", svc.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Enabled reports whether summaries are posted.
func (s *NotificationService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Start launches the delivery workers when notifications are enabled.
func (s *NotificationService) Start(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	s.queue.Start(ctx)
}

// Stop waits for in-flight deliveries to finish.
func (s *NotificationService) Stop() {
	if !s.Enabled() {
		return
	}
	s.queue.Stop()
}

// Notify schedules text for delivery and returns immediately.
func (s *NotificationService) Notify(text string) error {
	if !s.Enabled() {
		return appErrors.ErrNotificationsDisabled
	}
	job := jobs.Job{ID: uuid.NewString(), Type: notificationJobType, Payload: text}
	if err := s.queue.TryEnqueue(job); err != nil {
		s.metrics.RecordNotification("dropped")
		s.logger.Warn("notification dropped", zap.String("job_id", job.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	text, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	body, err := json.Marshal(webhookPayload{Content: text})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.RecordNotification("failed")
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.metrics.RecordNotification("failed")
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	s.metrics.RecordNotification("sent")
	s.logger.Debug("notification sent", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}
