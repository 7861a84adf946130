package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {

	t.Run("overrides set variables only", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "postgres://env")
		t.Setenv("JWT_SECRET_KEY", "env_secret")
		t.Setenv("JWT_EXPIRATION_TIME", "2h")
		t.Setenv("RESET_TOKEN_LIFETIME", "20m")
		t.Setenv("SMTP_HOST", "smtp.env")
		t.Setenv("SMTP_PORT", "2525")

		cfg := &Config{
			EndpointAddr: ":8080",
			DatabaseDSN:  "postgres://defaults",
			SecretKey:    "defaultKey",
			MailFrom:     "defaults@example.com",
		}
		parseEnv(cfg)

		assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
		assert.Equal(t, "env_secret", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidity)
		assert.Equal(t, 20*time.Minute, cfg.ResetTokenValidity)
		assert.Equal(t, "smtp.env", cfg.SMTPHost)
		assert.Equal(t, 2525, cfg.SMTPPort)

		// untouched
		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.Equal(t, "defaults@example.com", cfg.MailFrom)
	})

	t.Run("empty environment leaves config intact", func(t *testing.T) {
		cfg := &Config{
			EndpointAddr:        ":9090",
			DatabaseDSN:         "postgres://defaults",
			SecretKey:           "defaultKey",
			AccessTokenValidity: time.Hour,
		}
		parseEnv(cfg)

		assert.Equal(t, ":9090", cfg.EndpointAddr)
		assert.Equal(t, "postgres://defaults", cfg.DatabaseDSN)
		assert.Equal(t, "defaultKey", cfg.SecretKey)
		assert.Equal(t, time.Hour, cfg.AccessTokenValidity)
	})
}
