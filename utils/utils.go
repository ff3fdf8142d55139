package utils

import (
	"encoding/json"
	"fmt"
	"greenroute-backend/models"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-this-jwt-secret-in-production"

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "GreenRoute Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expires_in", 12*time.Hour)

	v.SetDefault("database_driver", "dynamodb")
	v.SetDefault("aws_region", "eu-west-2")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("forecast_cache_ttl", 30*time.Minute)

	v.SetDefault("weather_base_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("geocoding_base_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("forecast_days", 7)

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")

	v.SetDefault("twilio_account_sid", "")
	v.SetDefault("twilio_auth_token", "")
	v.SetDefault("twilio_from_phone", "")
	v.SetDefault("sendgrid_api_key", "")
	v.SetDefault("sendgrid_from_email", "")
	v.SetDefault("sendgrid_sandbox", false)
	v.SetDefault("business_name", "GreenRoute")

	v.SetDefault("weather_check_schedule", "0 0 6 * * *")
	v.SetDefault("worker_lock_path", "/tmp/greenroute-worker.lock")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("basePath", "/api/v1")
	v.SetDefault("swagger_doc_path", "./docs/swagger.json")

	v.SetDefault("tables", []string{"jobs", "settings", "system_logs"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.JWTSecret == defaultJWTSecret && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	switch c.DatabaseDriver {
	case "dynamodb", "memory":
	default:
		return fmt.Errorf("unsupported database_driver %q", c.DatabaseDriver)
	}

	if _, err := cron.Parse(c.WeatherCheckSchedule); err != nil {
		return fmt.Errorf("invalid weather_check_schedule: %w", err)
	}

	if c.ForecastDays < 1 || c.ForecastDays > 16 {
		return fmt.Errorf("forecast_days must be between 1 and 16")
	}

	if c.AppEnv == "production" && c.AWSAccessKeyID == "" && c.DatabaseDriver == "dynamodb" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	sections := map[string]string{
		"app.name":    "app_name",
		"app.version": "app_version",
		"app.env":     "app_env",
		"app.host":    "app_host",
		"app.port":    "app_port",

		"jwt.secret":     "jwt_secret",
		"jwt.expires_in": "jwt_expires_in",

		"database.driver":            "database_driver",
		"aws.region":                 "aws_region",
		"aws.access_key_id":          "aws_access_key_id",
		"aws.secret_access_key":      "aws_secret_access_key",
		"aws.dynamodb_endpoint":      "dynamodb_endpoint",
		"aws.dynamodb_table_prefix":  "dynamodb_table_prefix",
		"redis.addr":                 "redis_addr",
		"redis.password":             "redis_password",
		"redis.db":                   "redis_db",
		"weather.base_url":           "weather_base_url",
		"weather.geocoding_base_url": "geocoding_base_url",
		"weather.forecast_days":      "forecast_days",
		"weather.cache_ttl":          "forecast_cache_ttl",
		"openai.api_key":             "openai_api_key",
		"openai.model":               "openai_model",
		"twilio.account_sid":         "twilio_account_sid",
		"twilio.auth_token":          "twilio_auth_token",
		"twilio.from_phone":          "twilio_from_phone",
		"sendgrid.api_key":           "sendgrid_api_key",
		"sendgrid.from_email":        "sendgrid_from_email",
		"sendgrid.sandbox":           "sendgrid_sandbox",

		"worker.weather_check_schedule": "weather_check_schedule",
		"worker.lock_path":              "worker_lock_path",

		"logging.level":  "log_level",
		"logging.format": "log_format",
	}

	for nested, flat := range sections {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}

	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
