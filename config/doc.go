// Package config loads pagelink settings with viper.
//
// Settings come from a YAML file (the --conf flag, or config.yaml in
// /etc/pagelink, $HOME/.pagelink or the working directory) and can be
// overridden by PAGELINK_* environment variables:
//
//	app_name: pagewalk
//	client:
//	  base_url: https://api.example.com
//	  token: ${PAGELINK_CLIENT_TOKEN}
//	  timeout: 15s
//	  per_page: 50
//	  breaker:
//	    failure_ratio: 0.6
//	logger:
//	  level: 4
//	  format: json
//
// Load and validate:
//
//	cfg, err := config.LoadConfig(path)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
