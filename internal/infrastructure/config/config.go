package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	JWTSecret     string `env:"JWT_SECRET"`
	InviteCode    string `env:"INVITE_CODE"`
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`

	// UploadMaxSizeMB bounds the multipart request body on item writes.
	UploadMaxSizeMB int `env:"UPLOAD_MAX_SIZE_MB, default=10"`

	Mongo MongoConfig
	Redis RedisConfig
	Image ImageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tidystash"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ImageConfig struct {
	MaxDimension int `env:"IMAGE_MAX_DIMENSION, default=1024"`
	JPEGQuality  int `env:"IMAGE_JPEG_QUALITY,  default=80"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
