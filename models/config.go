package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// JWT
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	// Storage: "dynamodb" or "memory"
	DatabaseDriver string `mapstructure:"database_driver"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Redis (forecast cache)
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	ForecastCacheTTL time.Duration `mapstructure:"forecast_cache_ttl"`

	// Weather provider
	WeatherBaseURL   string `mapstructure:"weather_base_url"`
	GeocodingBaseURL string `mapstructure:"geocoding_base_url"`
	ForecastDays     int    `mapstructure:"forecast_days"`

	// OpenAI
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`

	// Twilio
	TwilioAccountSID string `mapstructure:"twilio_account_sid"`
	TwilioAuthToken  string `mapstructure:"twilio_auth_token"`
	TwilioFromPhone  string `mapstructure:"twilio_from_phone"`

	// SendGrid
	SendGridAPIKey    string `mapstructure:"sendgrid_api_key"`
	SendGridFromEmail string `mapstructure:"sendgrid_from_email"`
	SendGridSandbox   bool   `mapstructure:"sendgrid_sandbox"`
	BusinessName      string `mapstructure:"business_name"`

	// Worker
	WeatherCheckSchedule string `mapstructure:"weather_check_schedule"`
	WorkerLockPath       string `mapstructure:"worker_lock_path"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	// Generated by `swag init`
	SwaggerDocPath string `mapstructure:"swagger_doc_path"`

	Tables []string `mapstructure:"tables"`
}

// TableName returns the prefixed table name for a base table.
func (c *Config) TableName(base string) string {
	if c.DynamoDBTablePrefix == "" {
		return base
	}
	return c.DynamoDBTablePrefix + "_" + base
}
