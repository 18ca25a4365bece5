package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/guikcd/sensu-plugins-aws/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by the check
const EnvPrefix = "TA_ASG"

const (
	// DefaultCheckID is the Trusted Advisor "Auto Scaling Group Resources" check
	DefaultCheckID       = "8CNsSllI5v"
	DefaultLanguage      = "en"
	DefaultRegion        = "us-east-1"
	DefaultHealthyStatus = "Green"
	DefaultOutputFormat  = "plugin"
	DefaultTimeout       = 60 * time.Second
)

// Keys shared by flags, environment variables and the config file
const (
	KeyLanguage      = "language"
	KeyProfile       = "profile"
	KeyRegion        = "region"
	KeyCheckID       = "check-id"
	KeyHealthyStatus = "healthy-status"
	KeyOutput        = "output"
	KeyTimeout       = "timeout"
	KeyVerbose       = "verbose"
	KeyAssumeRole    = "assume-role"
	KeySessionName   = "session-name"
	KeyDuration      = "duration"
	KeyExternalID    = "external-id"
)

// Config holds the application configuration
type Config struct {
	Profile       string
	Region        string
	Language      string
	CheckID       string
	HealthyStatus string
	OutputFormat  string
	Timeout       time.Duration
	Verbose       bool

	// AssumeRole configuration
	AssumeRole *AssumeRoleConfig
}

// AssumeRoleConfig holds AssumeRole-specific configuration
type AssumeRoleConfig struct {
	RoleARN     string `json:"roleArn"`
	SessionName string `json:"sessionName"`
	Duration    int32  `json:"duration"`

	ExternalID string `json:"externalId,omitempty"`
}

// ConfigurationError reports an invalid setting detected before any API call
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NewViper returns a viper instance reading TA_ASG_* environment variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a yaml, toml or json config file into v
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return &ConfigurationError{
			Field:   "config",
			Message: fmt.Sprintf("failed to read config file '%s': %v", path, err),
		}
	}
	return nil
}

// FromViper builds a Config from flags, environment and config file values
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		Profile:       v.GetString(KeyProfile),
		Region:        v.GetString(KeyRegion),
		Language:      v.GetString(KeyLanguage),
		CheckID:       v.GetString(KeyCheckID),
		HealthyStatus: v.GetString(KeyHealthyStatus),
		OutputFormat:  v.GetString(KeyOutput),
		Timeout:       v.GetDuration(KeyTimeout),
		Verbose:       v.GetBool(KeyVerbose),
	}

	if roleARN := v.GetString(KeyAssumeRole); roleARN != "" {
		cfg.AssumeRole = &AssumeRoleConfig{
			RoleARN:     roleARN,
			SessionName: v.GetString(KeySessionName),
			Duration:    v.GetInt32(KeyDuration),
			ExternalID:  v.GetString(KeyExternalID),
		}
	}

	return cfg
}

// Request returns the advisory check request described by the configuration
func (c Config) Request() models.CheckRequest {
	return models.CheckRequest{
		CheckID:       c.CheckID,
		Language:      c.Language,
		HealthyStatus: c.HealthyStatus,
	}
}

// Validate checks every setting and returns the first ConfigurationError found
func (c Config) Validate() error {
	if !ValidateLanguage(c.Language) {
		return &ConfigurationError{
			Field:   KeyLanguage,
			Message: fmt.Sprintf("invalid language '%s'. Supported languages: en, ja", c.Language),
		}
	}

	if !ValidateOutputFormat(c.OutputFormat) {
		return &ConfigurationError{
			Field:   KeyOutput,
			Message: fmt.Sprintf("invalid output format '%s'. Supported formats: plugin, json", c.OutputFormat),
		}
	}

	if c.Region == "" {
		return &ConfigurationError{Field: KeyRegion, Message: "region is required"}
	}

	if c.CheckID == "" {
		return &ConfigurationError{Field: KeyCheckID, Message: "check id is required"}
	}

	if c.Timeout <= 0 {
		return &ConfigurationError{
			Field:   KeyTimeout,
			Message: fmt.Sprintf("timeout must be positive, got %s", c.Timeout),
		}
	}

	if c.AssumeRole != nil {
		if err := c.AssumeRole.Validate(); err != nil {
			return &ConfigurationError{
				Field:   KeyAssumeRole,
				Message: fmt.Sprintf("AssumeRole configuration invalid: %v", err),
			}
		}
	}

	return nil
}

// ValidateLanguage checks if Trusted Advisor supports the language code
func ValidateLanguage(language string) bool {
	switch language {
	case "en", "ja":
		return true
	default:
		return false
	}
}

// ValidateOutputFormat checks if the output format is supported
func ValidateOutputFormat(format string) bool {
	switch format {
	case "plugin", "json":
		return true
	default:
		return false
	}
}

// Validate validates the AssumeRole configuration
func (arc *AssumeRoleConfig) Validate() error {
	if arc.RoleARN == "" {
		return fmt.Errorf("role ARN cannot be empty when using AssumeRole")
	}

	if arc.Duration < 900 || arc.Duration > 43200 {
		return fmt.Errorf("session duration must be between 900 and 43200 seconds, got %d", arc.Duration)
	}

	if arc.SessionName == "" {
		return fmt.Errorf("session name cannot be empty")
	}

	return nil
}
