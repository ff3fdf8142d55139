package services

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils/logger"
	"strconv"
)

type MessageService struct {
	jobs         JobServiceInterface
	ai           AIServiceInterface
	notifier     NotifierInterface
	businessName string
	logger       logger.Logger
}

func NewMessageService(jobs JobServiceInterface, ai AIServiceInterface, notifier NotifierInterface, businessName string, log logger.Logger) *MessageService {
	if businessName == "" {
		businessName = "GreenRoute"
	}
	return &MessageService{
		jobs:         jobs,
		ai:           ai,
		notifier:     notifier,
		businessName: businessName,
		logger:       log,
	}
}

// DraftETA prepares an on-my-way text for a job and optionally sends it by SMS
func (s *MessageService) DraftETA(ctx context.Context, orgID, jobID string, minutes int, send bool) (*models.DraftMessage, error) {
	if minutes <= 0 {
		return nil, newValidationError("minutes", "minutes must be positive")
	}
	job, err := s.jobs.GetJob(ctx, orgID, jobID)
	if err != nil {
		return nil, err
	}

	data := map[string]string{
		"name":     job.CustomerName,
		"business": s.businessName,
		"minutes":  strconv.Itoa(minutes),
	}
	msg := &models.DraftMessage{JobID: job.JobID, Kind: string(MessageETA), Source: "template"}

	if s.ai != nil {
		if text, err := s.ai.DraftText(ctx, MessageETA, data); err == nil {
			msg.Text = text
			msg.Source = "ai"
		} else {
			s.logger.Debugf("ETA draft falling back to template: %v", err)
		}
	}
	if msg.Text == "" {
		msg.Text = CannedText(MessageETA, data)
	}

	if send {
		if job.CustomerPhone == "" {
			return nil, newValidationError("customerPhone", "job has no customer phone number")
		}
		if s.notifier == nil {
			return msg, nil
		}
		if err := s.notifier.SendSMS(ctx, job.CustomerPhone, msg.Text); err != nil {
			s.logger.Errorf("Failed to send ETA for job %s: %v", job.JobID, err)
			return msg, nil
		}
		msg.Sent = true
	}
	return msg, nil
}

type LogService struct {
	repo repository.SystemLogRepositoryInterface
}

func NewLogService(repo repository.SystemLogRepositoryInterface) *LogService {
	return &LogService{repo: repo}
}

// ListLogs returns the newest entries first. limit <= 0 means no limit.
func (s *LogService) ListLogs(ctx context.Context, orgID, jobID string, limit int) ([]*models.SystemLog, error) {
	logs, err := s.repo.ListLogs(ctx, orgID, jobID, limit)
	if err != nil {
		return nil, persistenceError("list logs", err)
	}
	return logs, nil
}
