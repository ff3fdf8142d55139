package services

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
)

type QuoteService struct {
	settings SettingsServiceInterface
	logger   logger.Logger
}

func NewQuoteService(settings SettingsServiceInterface, log logger.Logger) *QuoteService {
	return &QuoteService{settings: settings, logger: log}
}

// Quote prices req with the organization's settings. Only a settings lookup failure is an error.
func (s *QuoteService) Quote(ctx context.Context, orgID string, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}

	mode := "size"
	if UsesAreaPricing(req, settings) {
		mode = "area"
	}
	metrics.QuotesComputed.WithLabelValues(mode).Inc()

	quote := ComputeQuote(req, settings)
	s.logger.Debugf("Quote for org %s (%s pricing): %.2f", orgID, mode, quote.EstimatedPrice)
	return &quote, nil
}
