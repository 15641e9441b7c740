package config

import "github.com/kelseyhightower/envconfig"

// Config holds everything the service reads from the environment.
type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	LogMode    string `envconfig:"LOGGING_MODE" default:"DEVELOPMENT"`

	DbHost     string `envconfig:"DB_HOST" default:"localhost"`
	DbUser     string `envconfig:"DB_USER" default:"chat_user"`
	DbPassword string `envconfig:"DB_PW" default:""`
	DbName     string `envconfig:"DB_NAME" default:"chat_service"`
	DbTls      bool   `envconfig:"DB_TLS" default:"false"`

	JwkAuthEnabled bool   `envconfig:"JWK_AUTH_ENABLED" default:"false"`
	JwkUrl         string `envconfig:"JWK_URL" default:""`
	JwtSecret      string `envconfig:"JWT_SECRET" default:""`

	SqsQueueUrl string `envconfig:"SQS_QUEUE_URL" default:""`

	RateLimitRps   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
