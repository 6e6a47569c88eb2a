package config

import (
	"time"

	"github.com/spf13/viper"
)

// Client holds the settings of the paged API client
type Client struct {
	BaseURL   string            `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Token     string            `json:"token" yaml:"token" mapstructure:"token"`
	Timeout   time.Duration     `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	UserAgent string            `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
	PerPage   int               `json:"per_page" yaml:"per_page" mapstructure:"per_page" validate:"gte=0,lte=1000"`
	Headers   map[string]string `json:"headers" yaml:"headers" mapstructure:"headers"`
	Breaker   *Breaker          `json:"breaker" yaml:"breaker" mapstructure:"breaker" validate:"required"`
}

// Breaker holds the circuit breaker settings guarding page fetches
type Breaker struct {
	MaxRequests  uint32        `json:"max_requests" yaml:"max_requests"`
	Interval     time.Duration `json:"interval" yaml:"interval"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	MinRequests  uint32        `json:"min_requests" yaml:"min_requests"`
	FailureRatio float64       `json:"failure_ratio" yaml:"failure_ratio" validate:"gte=0,lte=1"`
}

// DefaultBreaker returns the breaker settings used when none are configured
func DefaultBreaker() *Breaker {
	return &Breaker{
		MaxRequests:  1,
		Interval:     5 * time.Second,
		Timeout:      3 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// getClientConfig get client config
func getClientConfig(v *viper.Viper) *Client {
	d := DefaultBreaker()
	return &Client{
		BaseURL:   v.GetString("client.base_url"),
		Token:     v.GetString("client.token"),
		Timeout:   getDurationOrDefault(v, "client.timeout", 30*time.Second),
		UserAgent: v.GetString("client.user_agent"),
		PerPage:   getIntOrDefault(v, "client.per_page", 0),
		Headers:   v.GetStringMapString("client.headers"),
		Breaker: &Breaker{
			MaxRequests:  getUint32OrDefault(v, "client.breaker.max_requests", d.MaxRequests),
			Interval:     getDurationOrDefault(v, "client.breaker.interval", d.Interval),
			Timeout:      getDurationOrDefault(v, "client.breaker.timeout", d.Timeout),
			MinRequests:  getUint32OrDefault(v, "client.breaker.min_requests", d.MinRequests),
			FailureRatio: getFloat64OrDefault(v, "client.breaker.failure_ratio", d.FailureRatio),
		},
	}
}
