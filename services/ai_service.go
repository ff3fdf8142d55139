package services

import (
	"context"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

type MessageKind string

const (
	MessageETA                 MessageKind = "eta"
	MessageReviewRequest       MessageKind = "review_request"
	MessageBookingConfirmation MessageKind = "booking_confirmation"
	MessageLeadDeclined        MessageKind = "lead_declined"
	MessageRainDelay           MessageKind = "rain_delay"
)

// Canned templates used whenever the AI service is absent or fails.
// Placeholders are {name}, {business}, {date}, {minutes}.
var cannedTemplates = map[MessageKind]string{
	MessageETA:                 "Hi {name}, this is {business}. We're on our way and should be with you in about {minutes} minutes.",
	MessageReviewRequest:       "Hi {name}, thanks for choosing {business}! If you were happy with your lawn, we'd really appreciate a quick review.",
	MessageBookingConfirmation: "Hi {name}, your lawn visit with {business} is booked for {date}. Reply to this message if you need to change it.",
	MessageLeadDeclined:        "Hi {name}, thank you for contacting {business}. Unfortunately we can't take on this job at the moment.",
	MessageRainDelay:           "Hi {name}, due to rain {business} has moved your lawn visit to {date}. Sorry for the inconvenience.",
}

// CannedText renders the fallback template for kind
func CannedText(kind MessageKind, data map[string]string) string {
	tmpl, ok := cannedTemplates[kind]
	if !ok {
		tmpl = "Hi {name}, this is a message from {business}."
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// AIServiceInterface drafts customer messages and suggests route orders. Every method
// returns ErrExternalServiceUnavailable when no model is configured.
type AIServiceInterface interface {
	DraftText(ctx context.Context, kind MessageKind, data map[string]string) (string, error)
	SuggestRouteOrder(ctx context.Context, jobs []*models.Job) ([]string, error)
}

// OpenAIService wraps the OpenAI client. If client is nil, calls are skipped.
type OpenAIService struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAIService creates the service. Pass an empty apiKey to disable calls.
func NewOpenAIService(apiKey, model string, log logger.Logger) *OpenAIService {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	if apiKey == "" {
		return &OpenAIService{model: model, logger: log}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{client: &c, model: model, logger: log}
}

func (s *OpenAIService) complete(ctx context.Context, system, user string) (string, error) {
	if s.client == nil {
		return "", ErrExternalServiceUnavailable
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("ai", "error").Inc()
		return "", fmt.Errorf("%w: openai: %v", ErrExternalServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		metrics.ExternalCalls.WithLabelValues("ai", "empty").Inc()
		return "", fmt.Errorf("%w: openai returned no choices", ErrExternalServiceUnavailable)
	}
	metrics.ExternalCalls.WithLabelValues("ai", "ok").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (s *OpenAIService) DraftText(ctx context.Context, kind MessageKind, data map[string]string) (string, error) {
	system := "You write short, friendly SMS messages for a small lawn-care business. " +
		"Plain text only, under 320 characters, no placeholders."
	var details strings.Builder
	for k, v := range data {
		fmt.Fprintf(&details, "%s: %s\n", k, v)
	}
	user := fmt.Sprintf("Write a %s message.\n%s", strings.ReplaceAll(string(kind), "_", " "), details.String())

	text, err := s.complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty draft", ErrExternalServiceUnavailable)
	}
	return text, nil
}

// SuggestRouteOrder asks the model for a visiting order. Only IDs of the given jobs are returned.
func (s *OpenAIService) SuggestRouteOrder(ctx context.Context, jobs []*models.Job) ([]string, error) {
	if len(jobs) < 2 {
		ids := make([]string, 0, len(jobs))
		for _, j := range jobs {
			ids = append(ids, j.JobID)
		}
		return ids, nil
	}

	system := "You order lawn-care visits to minimise driving. Respond with JSON only: " +
		`{"order": ["<jobID>", ...]}`
	var stops strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&stops, "- jobID=%s address=%q postcode=%q zone=%q\n", j.JobID, j.Address, j.Postcode, j.Zone)
	}

	content, err := s.complete(ctx, system, "Stops:\n"+stops.String())
	if err != nil {
		return nil, err
	}
	return parseRouteOrder(content, jobs)
}

func parseRouteOrder(content string, jobs []*models.Job) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")

	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: route suggestion is not JSON", ErrExternalServiceUnavailable)
	}

	known := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		known[j.JobID] = true
	}

	var ids []string
	for _, v := range gjson.Get(content, "order").Array() {
		if id := v.String(); known[id] {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: route suggestion named no known jobs", ErrExternalServiceUnavailable)
	}
	return ids, nil
}
