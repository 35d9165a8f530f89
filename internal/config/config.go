package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EmailTransportSES = "ses"
	EmailTransportLog = "log"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE"`

	Port          int     `env:"PORT" envDefault:"4000"`
	BaseURL       url.URL `env:"BASE_URL,required"`
	PostgresqlURL string  `env:"POSTGRESQL_URL,required"`

	Secret           string `env:"SECRET,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"12"`

	VerificationTokenValidDuration time.Duration `env:"VERIFICATION_TOKEN_VALID_DURATION" envDefault:"1h"`

	EmailTransport string `env:"EMAIL_TRANSPORT" envDefault:"ses"`
	EmailSender    string `env:"EMAIL_SENDER" envDefault:"no-reply@memberd.local"`
	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	// A missing .env file is fine, the environment may be set directly.
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if config.EmailTransport != EmailTransportSES && config.EmailTransport != EmailTransportLog {
		return nil, fmt.Errorf("invalid EMAIL_TRANSPORT value: %s", config.EmailTransport)
	}
	return config, nil
}
