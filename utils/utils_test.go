package utils

import (
	"greenroute-backend/models"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite defines a test suite for utils functions
type UtilsTestSuite struct {
	suite.Suite
	originalEnv map[string]string
}

// SetupTest runs before each test
func (suite *UtilsTestSuite) SetupTest() {
	suite.originalEnv = make(map[string]string)
	envVars := []string{
		"APP_NAME", "APP_ENV", "APP_PORT",
		"JWT_SECRET", "JWT_EXPIRES_IN",
		"DATABASE_DRIVER", "DYNAMODB_TABLE_PREFIX",
		"REDIS_ADDR", "FORECAST_DAYS",
		"OPENAI_API_KEY", "WEATHER_CHECK_SCHEDULE",
		"LOG_LEVEL", "LOG_FORMAT",
	}

	for _, envVar := range envVars {
		suite.originalEnv[envVar] = os.Getenv(envVar)
		os.Unsetenv(envVar)
	}
}

// TearDownTest runs after each test
func (suite *UtilsTestSuite) TearDownTest() {
	for envVar, value := range suite.originalEnv {
		if value != "" {
			os.Setenv(envVar, value)
		} else {
			os.Unsetenv(envVar)
		}
	}
}

func (suite *UtilsTestSuite) TestGetConfigDefaults() {
	config, err := GetConfig()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "GreenRoute Backend", config.AppName)
	assert.Equal(suite.T(), "dynamodb", config.DatabaseDriver)
	assert.Equal(suite.T(), "/api/v1", config.BasePath)
	assert.Equal(suite.T(), 7, config.ForecastDays)
	assert.Equal(suite.T(), 30*time.Minute, config.ForecastCacheTTL)
	assert.ElementsMatch(suite.T(), []string{"jobs", "settings", "system_logs"}, config.Tables)
}

func (suite *UtilsTestSuite) TestEnvironmentOverride() {
	os.Setenv("DATABASE_DRIVER", "memory")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("JWT_EXPIRES_IN", "45m")

	config, err := Load()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "memory", config.DatabaseDriver)
	assert.Equal(suite.T(), "debug", config.LogLevel)
	assert.Equal(suite.T(), 45*time.Minute, config.JWTExpiresIn)
}

func (suite *UtilsTestSuite) TestInvalidDriverRejected() {
	os.Setenv("DATABASE_DRIVER", "postgres")

	_, err := Load()
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unsupported database_driver")
}

func (suite *UtilsTestSuite) TestInvalidScheduleRejected() {
	os.Setenv("WEATHER_CHECK_SCHEDULE", "every morning")

	_, err := Load()
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "weather_check_schedule")
}

func (suite *UtilsTestSuite) TestProductionRequiresSecret() {
	os.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "JWT_SECRET")
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func TestValidateForecastDays(t *testing.T) {
	cfg := &models.Config{
		DatabaseDriver:       "memory",
		WeatherCheckSchedule: "0 0 6 * * *",
		ForecastDays:         0,
	}
	assert.Error(t, validate(cfg))

	cfg.ForecastDays = 16
	assert.NoError(t, validate(cfg))
}

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, id, GenerateUUID())
}

func TestPrintPrettyJSON(t *testing.T) {
	out := PrintPrettyJSON(map[string]interface{}{"status": "scheduled"})
	assert.Contains(t, out, "\"status\": \"scheduled\"")

	assert.Equal(t, "", PrintPrettyJSON(make(chan int)))
}
