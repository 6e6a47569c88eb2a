package config

import (
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level      int        `json:"level" yaml:"level" validate:"gte=0,lte=6"`
	Format     string     `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output     string     `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string     `json:"output_file" yaml:"output_file"`
	Redaction  *Redaction `json:"redaction" yaml:"redaction"`
}

// defaultLevel is logrus.InfoLevel
const defaultLevel = 4

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	cfg := &Config{
		Level:      defaultLevel,
		Format:     "text",
		Output:     "stderr",
		OutputFile: v.GetString("logger.output_file"),
		Redaction:  getRedactionConfig(v),
	}
	if v.IsSet("logger.level") {
		cfg.Level = v.GetInt("logger.level")
	}
	if f := v.GetString("logger.format"); f != "" {
		cfg.Format = f
	}
	if o := v.GetString("logger.output"); o != "" {
		cfg.Output = o
	}
	return cfg
}
