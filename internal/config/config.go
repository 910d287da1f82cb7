package config

import "github.com/pkg/errors"

type Config interface {
	EnvConfig
	XeroConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Xero
	Session
}

func New() Config {
	return mainConfig{}
}

// Validate checks the configuration that must be present at startup. A
// missing value here is a fatal configuration error, not a runtime error.
func Validate(c Config) error {
	if c.GetClientID() == "" {
		return errors.New("XERO_CLIENT_ID is not set")
	}
	if c.GetClientSecret() == "" {
		return errors.New("XERO_CLIENT_SECRET is not set")
	}
	if c.GetRedirectURI() == "" {
		return errors.New("XERO_REDIRECT_URI is not set")
	}
	if c.GetWebhookKey() == "" {
		return errors.New("WEBHOOK_KEY is not set")
	}
	return nil
}
