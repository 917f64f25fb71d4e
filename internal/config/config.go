package config

import (
	"fmt"
	"time"
)

const (
	defaultUploadDir      = "uploads"
	defaultLogLevel       = "info"
	defaultMaxOpenConns   = 10
	defaultMaxIdleConns   = 5
	defaultRedisPrefix    = "clubs:"
	defaultKafkaTopic     = "club-events"
	defaultShutdownWindow = 10 * time.Second
)

// S3 holds the settings for the S3 banner store. An empty Bucket
// means banners are kept on the local filesystem.
type S3 struct {
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	AllowedOrigins []string
	LogLevel       string

	MaxOpenConns int
	MaxIdleConns int

	UploadDir string
	S3        S3

	RedisAddr     string
	RedisPassword string
	RedisPrefix   string

	KafkaBrokers []string
	KafkaTopic   string

	ShutdownTimeout time.Duration
}

type Option func(*Config)

func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

func WithDBPool(maxOpen, maxIdle int) Option {
	return func(c *Config) {
		if maxOpen > 0 {
			c.MaxOpenConns = maxOpen
		}
		if maxIdle > 0 {
			c.MaxIdleConns = maxIdle
		}
	}
}

func WithUploadDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.UploadDir = dir
		}
	}
}

func WithS3(s3 S3) Option {
	return func(c *Config) {
		c.S3 = s3
	}
}

func WithRedis(addr, password string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
		c.RedisPassword = password
	}
}

func WithKafka(brokers []string, topic string) Option {
	return func(c *Config) {
		c.KafkaBrokers = brokers
		if topic != "" {
			c.KafkaTopic = topic
		}
	}
}

func NewConfig(serverAddr, databaseDSN string, allowedOrigins []string, opts ...Option) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}

	cfg := &Config{
		ServerAddr:      serverAddr,
		DatabaseDSN:     databaseDSN,
		AllowedOrigins:  allowedOrigins,
		LogLevel:        defaultLogLevel,
		MaxOpenConns:    defaultMaxOpenConns,
		MaxIdleConns:    defaultMaxIdleConns,
		UploadDir:       defaultUploadDir,
		RedisPrefix:     defaultRedisPrefix,
		KafkaTopic:      defaultKafkaTopic,
		ShutdownTimeout: defaultShutdownWindow,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.S3.Bucket != "" && cfg.S3.Region == "" {
		return nil, fmt.Errorf("s3 region cannot be empty when a bucket is set")
	}

	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		return nil, fmt.Errorf("max idle connections (%d) exceeds max open connections (%d)", cfg.MaxIdleConns, cfg.MaxOpenConns)
	}

	return cfg, nil
}
