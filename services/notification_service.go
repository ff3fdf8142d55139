package services

import (
	"context"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const notifyTimeout = 30 * time.Second

// NotifierInterface sends customer messages. Implementations never block the caller's
// state change; Notify* methods dispatch in the background.
type NotifierInterface interface {
	NotifyBookingConfirmed(job *models.Job)
	NotifyLeadDeclined(job *models.Job)
	NotifyReviewRequest(job *models.Job)
	NotifyRainDelay(job *models.Job)
	SendSMS(ctx context.Context, to, body string) error
	SendEmail(ctx context.Context, toName, toAddr, subject, body string) error
}

// NotificationService sends SMS through Twilio and email through SendGrid. Either client
// may be nil, in which case that channel is skipped with a warning.
type NotificationService struct {
	twilio       *twilio.RestClient
	fromPhone    string
	sendgrid     *sendgrid.Client
	fromEmail    string
	sandbox      bool
	businessName string
	ai           AIServiceInterface
	logger       logger.Logger
}

func NewNotificationService(cfg *models.Config, ai AIServiceInterface, log logger.Logger) *NotificationService {
	s := &NotificationService{
		fromPhone:    cfg.TwilioFromPhone,
		fromEmail:    cfg.SendGridFromEmail,
		sandbox:      cfg.SendGridSandbox,
		businessName: cfg.BusinessName,
		ai:           ai,
		logger:       log,
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	if cfg.SendGridAPIKey != "" {
		s.sendgrid = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	if s.businessName == "" {
		s.businessName = "GreenRoute"
	}
	return s
}

func (s *NotificationService) SendSMS(ctx context.Context, to, body string) error {
	if s.twilio == nil {
		s.logger.Warnf("Twilio client is nil; skipping SMS to %s", to)
		return nil
	}
	if to == "" {
		return newValidationError("customerPhone", "no phone number on record")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromPhone)
	params.SetBody(body)

	if _, err := s.twilio.Api.CreateMessage(params); err != nil {
		metrics.ExternalCalls.WithLabelValues("sms", "error").Inc()
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	metrics.ExternalCalls.WithLabelValues("sms", "ok").Inc()
	s.logger.Infof("SMS sent to %s", to)
	return nil
}

func (s *NotificationService) SendEmail(ctx context.Context, toName, toAddr, subject, body string) error {
	if s.sendgrid == nil {
		s.logger.Warnf("SendGrid client is nil; skipping email to %s", toAddr)
		return nil
	}
	if toAddr == "" {
		return newValidationError("customerEmail", "no email address on record")
	}

	from := mail.NewEmail(s.businessName, s.fromEmail)
	to := mail.NewEmail(toName, toAddr)
	msg := mail.NewSingleEmail(from, subject, to, body, htmlBody(body))
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := s.sendgrid.SendWithContext(ctx, msg)
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("email", "error").Inc()
		return fmt.Errorf("sendgrid send to %s: %w", toAddr, err)
	}
	if resp.StatusCode >= 300 {
		metrics.ExternalCalls.WithLabelValues("email", "error").Inc()
		return fmt.Errorf("sendgrid send to %s: status %d", toAddr, resp.StatusCode)
	}
	metrics.ExternalCalls.WithLabelValues("email", "ok").Inc()
	s.logger.Infof("Email sent to %s", toAddr)
	return nil
}

// htmlBody escapes body for the HTML part; drafts carry customer input and model output
func htmlBody(body string) string {
	return "<p>" + html.EscapeString(body) + "</p>"
}

// draft asks the AI service for text and falls back to the canned template
func (s *NotificationService) draft(ctx context.Context, kind MessageKind, data map[string]string) string {
	data["business"] = s.businessName
	if s.ai != nil {
		text, err := s.ai.DraftText(ctx, kind, data)
		if err == nil {
			return text
		}
		s.logger.Debugf("AI draft for %s unavailable, using template: %v", kind, err)
	}
	return CannedText(kind, data)
}

func jobMessageData(job *models.Job) map[string]string {
	data := map[string]string{"name": job.CustomerName}
	if job.ScheduledDate != nil {
		data["date"] = job.ScheduledDate.Format("Monday 2 January")
	}
	return data
}

func (s *NotificationService) dispatch(job *models.Job, kind MessageKind, subject string) {
	j := job.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		body := s.draft(ctx, kind, jobMessageData(j))
		if j.CustomerPhone != "" {
			if err := s.SendSMS(ctx, j.CustomerPhone, body); err != nil {
				s.logger.Errorf("Failed to send %s SMS for job %s: %v", kind, j.JobID, err)
			}
		}
		if j.CustomerEmail != "" {
			if err := s.SendEmail(ctx, j.CustomerName, j.CustomerEmail, subject, body); err != nil {
				s.logger.Errorf("Failed to send %s email for job %s: %v", kind, j.JobID, err)
			}
		}
	}()
}

func (s *NotificationService) NotifyBookingConfirmed(job *models.Job) {
	s.dispatch(job, MessageBookingConfirmation, "Your lawn visit is booked")
}

func (s *NotificationService) NotifyLeadDeclined(job *models.Job) {
	s.dispatch(job, MessageLeadDeclined, "Your enquiry with "+s.businessName)
}

func (s *NotificationService) NotifyReviewRequest(job *models.Job) {
	s.dispatch(job, MessageReviewRequest, "Thanks from "+s.businessName)
}

func (s *NotificationService) NotifyRainDelay(job *models.Job) {
	s.dispatch(job, MessageRainDelay, "Your lawn visit has moved")
}
