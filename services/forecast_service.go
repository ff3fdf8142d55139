package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
)

const dailyFields = "temperature_2m_max,precipitation_probability_max,wind_speed_10m_max,relative_humidity_2m_mean,weather_code"

// ForecastServiceInterface fetches daily forecasts for a city
type ForecastServiceInterface interface {
	Forecast(ctx context.Context, city string) ([]models.DailyForecast, error)
	Outlook(ctx context.Context, city string, thresholds models.MowabilityThreshold) *models.Outlook
}

// ForecastCache stores encoded forecasts by key
type ForecastCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisForecastCache keeps forecasts in Redis
type RedisForecastCache struct {
	client *redis.Client
}

func NewRedisForecastCache(cfg *models.Config) *RedisForecastCache {
	return &RedisForecastCache{client: redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})}
}

func (c *RedisForecastCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisForecastCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// ForecastService talks to the Open-Meteo geocoding and forecast endpoints
type ForecastService struct {
	httpClient   *http.Client
	forecastURL  string
	geocodingURL string
	days         int
	cache        ForecastCache
	cacheTTL     time.Duration
	logger       logger.Logger
}

// NewForecastService builds the client. cache may be nil.
func NewForecastService(cfg *models.Config, cache ForecastCache, log logger.Logger) *ForecastService {
	days := cfg.ForecastDays
	if days <= 0 {
		days = 7
	}
	return &ForecastService{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		forecastURL:  cfg.WeatherBaseURL,
		geocodingURL: cfg.GeocodingBaseURL,
		days:         days,
		cache:        cache,
		cacheTTL:     cfg.ForecastCacheTTL,
		logger:       log,
	}
}

// Forecast returns one sample per day starting today. Any provider failure is
// reported as ErrExternalServiceUnavailable.
func (s *ForecastService) Forecast(ctx context.Context, city string) ([]models.DailyForecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: no weather city configured", ErrExternalServiceUnavailable)
	}

	key := fmt.Sprintf("forecast:%s:%d", strings.ToLower(city), s.days)
	if days, ok := s.fromCache(ctx, key); ok {
		return days, nil
	}

	lat, lon, err := s.geocode(ctx, city)
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrExternalServiceUnavailable, err)
	}

	days, err := s.fetchDaily(ctx, lat, lon)
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrExternalServiceUnavailable, err)
	}
	metrics.ExternalCalls.WithLabelValues("weather", "ok").Inc()

	s.toCache(ctx, key, days)
	return days, nil
}

// Outlook scores the forecast for city. It never fails; an unreachable provider
// yields Available=false.
func (s *ForecastService) Outlook(ctx context.Context, city string, thresholds models.MowabilityThreshold) *models.Outlook {
	days, err := s.Forecast(ctx, city)
	if err != nil {
		s.logger.Warnf("Weather outlook unavailable for %q: %v", city, err)
		return &models.Outlook{City: city, Available: false}
	}
	return &models.Outlook{City: city, Available: true, Days: ScoreOutlook(days, thresholds)}
}

func (s *ForecastService) fromCache(ctx context.Context, key string) ([]models.DailyForecast, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warnf("Forecast cache read failed: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var days []models.DailyForecast
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (s *ForecastService) toCache(ctx context.Context, key string, days []models.DailyForecast) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warnf("Forecast cache write failed: %v", err)
	}
}

func (s *ForecastService) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, gjson.GetBytes(body, "reason").String())
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s returned invalid JSON", endpoint)
	}
	return body, nil
}

func (s *ForecastService) geocode(ctx context.Context, city string) (float64, float64, error) {
	body, err := s.get(ctx, s.geocodingURL, url.Values{
		"name":     {city},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", city, err)
	}

	first := gjson.GetBytes(body, "results.0")
	if !first.Exists() {
		return 0, 0, fmt.Errorf("geocode %q: no results", city)
	}
	return first.Get("latitude").Float(), first.Get("longitude").Float(), nil
}

func (s *ForecastService) fetchDaily(ctx context.Context, lat, lon float64) ([]models.DailyForecast, error) {
	body, err := s.get(ctx, s.forecastURL, url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', 4, 64)},
		"daily":         {dailyFields},
		"timezone":      {"auto"},
		"forecast_days": {strconv.Itoa(s.days)},
	})
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	return parseDaily(body)
}

// parseDaily reads Open-Meteo's column-oriented "daily" block into rows
func parseDaily(body []byte) ([]models.DailyForecast, error) {
	daily := gjson.GetBytes(body, "daily")
	dates := daily.Get("time").Array()
	if len(dates) == 0 {
		return nil, errors.New("forecast: no daily data")
	}

	temps := daily.Get("temperature_2m_max").Array()
	rain := daily.Get("precipitation_probability_max").Array()
	wind := daily.Get("wind_speed_10m_max").Array()
	humidity := daily.Get("relative_humidity_2m_mean").Array()
	codes := daily.Get("weather_code").Array()

	at := func(col []gjson.Result, i int) gjson.Result {
		if i < len(col) {
			return col[i]
		}
		return gjson.Result{}
	}

	days := make([]models.DailyForecast, 0, len(dates))
	for i, d := range dates {
		date, err := time.Parse("2006-01-02", d.String())
		if err != nil {
			return nil, fmt.Errorf("forecast: bad date %q: %w", d.String(), err)
		}
		days = append(days, models.DailyForecast{
			Date:          date,
			TempC:         at(temps, i).Float(),
			RainChancePct: at(rain, i).Float(),
			WindKmh:       at(wind, i).Float(),
			HumidityPct:   at(humidity, i).Float(),
			Condition:     weatherCondition(int(at(codes, i).Int())),
		})
	}
	return days, nil
}

// weatherCondition maps a WMO weather code to a short label
func weatherCondition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67, code >= 80 && code <= 82:
		return "rain"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "cloudy"
	}
}
