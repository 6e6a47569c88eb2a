package config

import "github.com/spf13/viper"

// Redaction holds the masking settings for credentials that end up in log
// fields, most often as query parameters of page URLs.
type Redaction struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	SensitiveParams []string `json:"sensitive_params" yaml:"sensitive_params"`
	MaskChar        string   `json:"mask_char" yaml:"mask_char"`
	MaskLength      int      `json:"mask_length" yaml:"mask_length"`
}

var defaultSensitiveFields = []string{
	"password", "token", "access_token", "refresh_token",
	"secret", "api_key", "apikey", "authorization",
}

var defaultSensitiveParams = []string{
	"access_token", "token", "api_key", "apikey", "client_secret", "sig", "signature",
}

const (
	defaultMaskChar   = "*"
	defaultMaskLength = 6
)

// getRedactionConfig reads and returns redaction configuration
func getRedactionConfig(v *viper.Viper) *Redaction {
	cfg := &Redaction{
		Enabled:         true,
		SensitiveFields: v.GetStringSlice("logger.redaction.sensitive_fields"),
		SensitiveParams: v.GetStringSlice("logger.redaction.sensitive_params"),
		MaskChar:        v.GetString("logger.redaction.mask_char"),
		MaskLength:      v.GetInt("logger.redaction.mask_length"),
	}
	if v.IsSet("logger.redaction.enabled") {
		cfg.Enabled = v.GetBool("logger.redaction.enabled")
	}

	if len(cfg.SensitiveFields) == 0 {
		cfg.SensitiveFields = defaultSensitiveFields
	}
	if len(cfg.SensitiveParams) == 0 {
		cfg.SensitiveParams = defaultSensitiveParams
	}
	if cfg.MaskChar == "" {
		cfg.MaskChar = defaultMaskChar
	}
	if cfg.MaskLength <= 0 {
		cfg.MaskLength = defaultMaskLength
	}
	return cfg
}

// DefaultRedaction returns the redaction settings used when none are configured
func DefaultRedaction() *Redaction {
	return getRedactionConfig(viper.New())
}
