package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for environment parsing. Duration variables
// accept Go duration strings ("1h", "15m").
type envConfig struct {
	EndpointAddr        string        `env:"ENDPOINT_ADDR"`
	DatabaseDSN         string        `env:"DATABASE_DSN"`
	SecretKey           string        `env:"JWT_SECRET_KEY"`
	EncryptionKey       string        `env:"ENCRYPTION_SECRET_KEY"`
	AccessTokenValidity time.Duration `env:"JWT_EXPIRATION_TIME"`
	ResetTokenValidity  time.Duration `env:"RESET_TOKEN_LIFETIME"`
	SMTPHost            string        `env:"SMTP_HOST"`
	SMTPPort            int           `env:"SMTP_PORT"`
	SMTPUsername        string        `env:"SMTP_USERNAME"`
	SMTPPassword        string        `env:"SMTP_PASSWORD"`
	MailFrom            string        `env:"MAIL_FROM"`
}

// parseEnv overlays environment variables onto the provided Config.
// Only variables that are actually set override earlier values, so
// defaults and JSON-file settings survive an empty environment.
func parseEnv(config *Config) {
	c := &envConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.EncryptionKey != "" {
		config.EncryptionKey = c.EncryptionKey
	}
	if c.AccessTokenValidity != 0 {
		config.AccessTokenValidity = c.AccessTokenValidity
	}
	if c.ResetTokenValidity != 0 {
		config.ResetTokenValidity = c.ResetTokenValidity
	}
	if c.SMTPHost != "" {
		config.SMTPHost = c.SMTPHost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPUsername != "" {
		config.SMTPUsername = c.SMTPUsername
	}
	if c.SMTPPassword != "" {
		config.SMTPPassword = c.SMTPPassword
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
}
