package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=100"`
	Format  string `validate:"omitempty,oneof=json text"`
}

func TestValidateStruct(t *testing.T) {
	msgs := ValidateStruct(&sample{BaseURL: "::", PerPage: 500, Format: "xml"})
	assert.Equal(t, "The field 'base_url' must be a valid URL.", msgs["base_url"])
	assert.Equal(t, "The field 'per_page' must be less than or equal to 100.", msgs["per_page"])
	assert.Equal(t, "The field 'Format' must be one of [json text].", msgs["Format"])

	assert.Empty(t, ValidateStruct(&sample{BaseURL: "https://api.example", PerPage: 20}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&sample{BaseURL: "https://api.example"}))

	err := Validate(&sample{})
	assert.EqualError(t, err, "The field 'base_url' is required.")
}
