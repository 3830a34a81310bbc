// Package config provides configuration management for the Super Predictor application.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// competitionCodePattern matches football-data.org competition codes
// (e.g. PL, BL1, FL1, CL): two to four upper-case letters or digits.
var competitionCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,4}$`)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)
	v.RegisterValidation("competitions", validateCompetitions)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// ValidateIngestion performs the checks that must pass before the
// ingestion pipeline does any network activity. A missing API token is
// a fatal configuration error, not a retryable condition.
func ValidateIngestion(cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if cfg.FootballData.APIToken == "" {
		return fmt.Errorf("football_data.api_token is required for ingestion (set SUPER_PREDICTOR_FOOTBALL_DATA_API_TOKEN)")
	}
	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCompetitions validates the competition code list
func validateCompetitions(fl validator.FieldLevel) bool {
	codes := fl.Field().Interface().([]string)
	if len(codes) == 0 {
		return false
	}
	for _, code := range codes {
		if !competitionCodePattern.MatchString(code) {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Storage.Backend == "csv" && cfg.Storage.PredictionsPath == "" {
		return fmt.Errorf("storage.predictions_path is required for the csv backend")
	}

	if cfg.Storage.Backend == "postgres" {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required for the postgres backend")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	if cfg.Picks.RateThreshold > 1 || cfg.Picks.ConfidenceThreshold > 1 {
		return fmt.Errorf("pick thresholds must be between 0 and 1")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "competitions":
			errMsg += fmt.Sprintf("- Field '%s' must be a non-empty list of competition codes like PL, BL1\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
