package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/npezzotti/go-clubs/internal/api"
	"github.com/npezzotti/go-clubs/internal/blob"
	"github.com/npezzotti/go-clubs/internal/config"
	"github.com/npezzotti/go-clubs/internal/database"
	"github.com/npezzotti/go-clubs/internal/identity"
	"github.com/npezzotti/go-clubs/internal/logger"
	"github.com/npezzotti/go-clubs/internal/server"
	"github.com/npezzotti/go-clubs/internal/service"
	"github.com/npezzotti/go-clubs/internal/stats"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	var allowedOrigins, kafkaBrokers stringSliceFlag
	allowedOrigins.Set(getEnv("ALLOWED_ORIGINS", ""))
	kafkaBrokers.Set(getEnv("KAFKA_BROKERS", ""))

	addr := flag.String("addr", getEnv("SERVER_ADDR", "localhost:8000"), "server address")
	dsn := flag.String("dsn", getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=clubs sslmode=disable"), "database connection string")
	logLevel := flag.String("log-level", getEnv("LOG_LEVEL", "info"), "log level")
	maxOpen := flag.Int("db-max-open-conns", getEnvInt("DB_MAX_OPEN_CONNS", 10), "maximum open database connections")
	maxIdle := flag.Int("db-max-idle-conns", getEnvInt("DB_MAX_IDLE_CONNS", 5), "maximum idle database connections")
	uploadDir := flag.String("upload-dir", getEnv("UPLOAD_DIR", "uploads"), "directory for banner uploads")
	s3Bucket := flag.String("s3-bucket", getEnv("S3_BUCKET", ""), "store banners in this S3 bucket instead of the upload directory")
	s3Region := flag.String("s3-region", getEnv("S3_REGION", ""), "S3 region")
	s3Endpoint := flag.String("s3-endpoint", getEnv("S3_ENDPOINT", ""), "custom S3 endpoint")
	s3PathStyle := flag.Bool("s3-path-style", getEnv("S3_FORCE_PATH_STYLE", "") == "true", "use path-style S3 addressing")
	redisAddr := flag.String("redis-addr", getEnv("REDIS_ADDR", ""), "redis address for fanning out events across instances")
	redisPassword := flag.String("redis-password", getEnv("REDIS_PASSWORD", ""), "redis password")
	kafkaTopic := flag.String("kafka-topic", getEnv("KAFKA_TOPIC", ""), "kafka topic that mirrors published events")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Var(&kafkaBrokers, "kafka-brokers", "comma-separated list of kafka brokers")
	flag.Parse()

	if len(allowedOrigins) == 0 {
		allowedOrigins = stringSliceFlag{"http://localhost:3000"}
	}

	cfg, err := config.NewConfig(*addr, *dsn, allowedOrigins,
		config.WithLogLevel(*logLevel),
		config.WithDBPool(*maxOpen, *maxIdle),
		config.WithUploadDir(*uploadDir),
		config.WithS3(config.S3{
			Bucket:         *s3Bucket,
			Region:         *s3Region,
			Endpoint:       *s3Endpoint,
			ForcePathStyle: *s3PathStyle,
		}),
		config.WithRedis(*redisAddr, *redisPassword),
		config.WithKafka(kafkaBrokers, *kafkaTopic),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatalw("server exited", "error", err)
	}
	log.Info("shutdown complete")
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.DatabaseDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, log)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorw("db close", "error", err)
		}
	}()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	blobs, err := newBlobStore(cfg, log)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	var hubOpts []server.Option

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		hubOpts = append(hubOpts, server.WithRelay(server.NewRedisRelay(rdb, cfg.RedisPrefix, log)))
		log.Infow("fanning out events through redis", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
	}

	if len(cfg.KafkaBrokers) > 0 {
		sink := server.NewKafkaSink(server.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), log)
		defer func() {
			if err := sink.Close(); err != nil {
				log.Errorw("kafka writer close", "error", err)
			}
		}()
		hubOpts = append(hubOpts, server.WithSink(sink))
		log.Infow("mirroring events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	r := chi.NewRouter()

	statsUpdater := stats.NewStatsUpdater(r)
	statsUpdater.Run()
	defer statsUpdater.Stop()

	hub := server.NewHub(log, statsUpdater, hubOpts...)
	go hub.Run()

	directory := identity.NewDirectory(db.Users(), log)
	svc := api.Services{
		Users:    directory,
		Clubs:    service.NewClubService(db.Clubs(), directory, blobs, hub, log),
		Books:    service.NewBookService(db.Books(), directory, log),
		Messages: service.NewMessageService(db.Messages(), directory, hub, log),
	}

	app := api.NewApp(r, log, hub, db, svc, blobs, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigs:
		log.Infow("received signal", "signal", sig.String())
	case serveErr = <-errCh:
		log.Errorw("server stopped", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown", "error", err)
	}

	if err := hub.Shutdown(shutdownCtx); err != nil {
		log.Errorw("hub shutdown", "error", err)
	}

	return serveErr
}

func newBlobStore(cfg *config.Config, log *zap.SugaredLogger) (blob.Store, error) {
	if cfg.S3.Bucket != "" {
		log.Infow("storing banners in s3", "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)
		return blob.NewS3Store(blob.S3Config{
			Bucket:         cfg.S3.Bucket,
			Region:         cfg.S3.Region,
			Endpoint:       cfg.S3.Endpoint,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		}, log)
	}

	log.Infow("storing banners on disk", "dir", cfg.UploadDir)
	return blob.NewFileStore(cfg.UploadDir, log)
}
