package services

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils/logger"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
)

// DefaultSettings returns the settings an organization starts with
func DefaultSettings(orgID string) *models.BusinessSettings {
	return &models.BusinessSettings{
		OrgID:                      orgID,
		Prices:                     defaultSizePrices,
		ExtraPrices:                defaultExtras,
		PricePerSqMetre:            defaultPricePerSqMetre,
		OvergrownDurationThreshold: 90,
		OvergrownSurcharge:         15,
		FuelSurchargeRadiusKm:      10,
		FuelSurcharge:              5,
		AutoCreateRecurring:        true,
		ScheduleStartHour:          8,
		ScheduleEndHour:            17,
		WorkingDays:                models.WorkingDayMask(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		HolidayRegion:              "gb",
		TimeZone:                   "Europe/London",
		Mowability: models.MowabilityThreshold{
			MaxRainChance: 70,
			MaxWindKmh:    30,
			MinTempC:      5,
			MaxTempC:      30,
		},
		RainDelayScoreThreshold: 40,
	}
}

type SettingsServiceInterface interface {
	GetSettings(ctx context.Context, orgID string) (*models.BusinessSettings, error)
	UpdateSettings(ctx context.Context, orgID string, settings *models.BusinessSettings, updatedBy string) (*models.BusinessSettings, error)
	ListSettings(ctx context.Context) ([]*models.BusinessSettings, error)
}

type SettingsService struct {
	repo     repository.SettingsRepositoryInterface
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]*models.BusinessSettings
}

func NewSettingsService(repo repository.SettingsRepositoryInterface, log logger.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		validate: validator.New(),
		logger:   log,
		now:      time.Now,
		cache:    make(map[string]*models.BusinessSettings),
	}
}

func cloneSettings(s *models.BusinessSettings) *models.BusinessSettings {
	c := *s
	return &c
}

// load returns the cached settings for orgID; caller holds mu
func (s *SettingsService) load(ctx context.Context, orgID string) (*models.BusinessSettings, error) {
	if cached, ok := s.cache[orgID]; ok {
		return cached, nil
	}
	settings, err := s.repo.GetSettings(ctx, orgID)
	if errors.Is(err, repository.ErrNotFound) {
		settings = DefaultSettings(orgID)
	} else if err != nil {
		return nil, persistenceError("load settings", err)
	}
	s.cache[orgID] = settings
	return settings, nil
}

// GetSettings returns a copy of the organization's settings, or the defaults if none were saved
func (s *SettingsService) GetSettings(ctx context.Context, orgID string) (*models.BusinessSettings, error) {
	if strings.TrimSpace(orgID) == "" {
		return nil, newValidationError("orgID", "organization ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return cloneSettings(settings), nil
}

// UpdateSettings replaces the organization's settings after validation
func (s *SettingsService) UpdateSettings(ctx context.Context, orgID string, req *models.BusinessSettings, updatedBy string) (*models.BusinessSettings, error) {
	if req == nil {
		return nil, newValidationError("settings", "settings are required")
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, newValidationError(verrs[0].Field(), fmt.Sprintf("failed on '%s' validation", verrs[0].Tag()))
		}
		return nil, newValidationError("settings", err.Error())
	}
	if req.TimeZone != "" {
		if _, err := time.LoadLocation(req.TimeZone); err != nil {
			return nil, newValidationError("timeZone", "unknown time zone")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, orgID)
	if err != nil {
		return nil, err
	}

	err = applyOptimistic(current, cloneSettings,
		func(target *models.BusinessSettings) error {
			*target = *req
			target.OrgID = orgID
			target.UpdatedAt = s.now()
			target.UpdatedBy = updatedBy
			return nil
		},
		func(target *models.BusinessSettings) error {
			return s.repo.SaveSettings(ctx, target)
		},
	)
	if err != nil {
		s.logger.Errorf("Failed to update settings for organization %s: %v", orgID, err)
		return nil, err
	}

	s.logger.Infof("Settings updated for organization %s by %s", orgID, updatedBy)
	return cloneSettings(current), nil
}

// ListSettings returns every organization that has saved settings
func (s *SettingsService) ListSettings(ctx context.Context) ([]*models.BusinessSettings, error) {
	all, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, persistenceError("list settings", err)
	}
	return all, nil
}
