package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rajeshboldtribe/boldserve/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port    string
	Env     string
	LogFile string
	JWT     JWT
	DB      DB
	Redis   Redis
	Kafka   Kafka
	Payment Payment
	Upload  Upload
	Admin   Admin
	CORS    CORS
	Sweeper Sweeper
	Mail    Mail
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Payment — параметры платёжного шлюза (IDFC).
type Payment struct {
	MerchantID  string
	AccessKey   string
	SecretKey   string
	Currency    string
	BackendURL  string
	FrontendURL string
	TTL         time.Duration
}

type Upload struct {
	Dir      string
	MaxBytes int64
}

type Admin struct {
	APIKey string
}

type CORS struct {
	AllowedOrigins []string
}

type Sweeper struct {
	Enabled  bool
	Schedule string
}

type Mail struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	TMPLDir      string
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:    getEnvDefault("APP_PORT", ":8003"),
		Env:     getEnvDefault("ENV", "development"),
		LogFile: getEnvDefault("LOG_FILE", ""),
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "boldserve"),
			Audience:  getEnvDefault("JWT_AUDIENCE", "boldserve-web"),
			AccessExp: parseDurationWithDays(getEnvDefault("ACCESS_EXP", "1d")),
		},
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
			},
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		},
		Kafka: Kafka{
			Brokers: splitAndTrim(getEnvDefault("KAFKA_BROKERS", "")),
			Topic:   getEnvDefault("KAFKA_TOPIC", "boldserve.notifications"),
			GroupID: getEnvDefault("KAFKA_GROUP_ID", "boldserve-notifier"),
		},
		Payment: Payment{
			MerchantID:  getEnv("IDFC_MERCHANT_ID", log),
			AccessKey:   getEnv("IDFC_ACCESS_KEY", log),
			SecretKey:   getEnv("IDFC_SECRET_KEY", log),
			Currency:    getEnvDefault("PAYMENT_CURRENCY", "INR"),
			BackendURL:  strings.TrimRight(getEnv("BACKEND_URL", log), "/"),
			FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", log), "/"),
			TTL:         parseDurationWithDays(getEnvDefault("PAYMENT_TTL", "2h")),
		},
		Upload: Upload{
			Dir:      getEnvDefault("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(atoiDefault(getEnvDefault("UPLOAD_MAX_BYTES", ""), 10<<20)),
		},
		Admin: Admin{
			APIKey: getEnvDefault("ADMIN_API_KEY", ""),
		},
		CORS: CORS{
			AllowedOrigins: splitAndTrim(getEnvDefault("ALLOWED_ORIGINS", "*")),
		},
		Sweeper: Sweeper{
			Enabled:  getEnvDefault("SWEEPER_ENABLED", "true") == "true",
			Schedule: getEnvDefault("SWEEPER_SCHEDULE", "@every 15m"),
		},
		Mail: Mail{
			SMTPHost:     getEnvDefault("SMTP_HOST", ""),
			SMTPPort:     atoiDefault(getEnvDefault("SMTP_PORT", "465"), 465),
			SMTPUser:     getEnvDefault("SMTP_USER", ""),
			SMTPPassword: getEnvDefault("SMTP_PASSWORD", ""),
			SMTPFrom:     getEnvDefault("SMTP_FROM", ""),
			TMPLDir:      getEnvDefault("TEMPLATES_DIR", "templates"),
		},
	}
}

// LoadNotifier читает только то, что нужно воркеру уведомлений: Kafka и SMTP.
func LoadNotifier(log *zap.Logger) *Config {
	return &Config{
		Env: getEnvDefault("ENV", "development"),
		Kafka: Kafka{
			Brokers: splitAndTrim(getEnvDefault("KAFKA_BROKERS", "")),
			Topic:   getEnvDefault("KAFKA_TOPIC", "boldserve.notifications"),
			GroupID: getEnvDefault("KAFKA_GROUP_ID", "boldserve-notifier"),
		},
		Mail: Mail{
			SMTPHost:     getEnv("SMTP_HOST", log),
			SMTPPort:     atoiDefault(getEnvDefault("SMTP_PORT", "465"), 465),
			SMTPUser:     getEnv("SMTP_USER", log),
			SMTPPassword: getEnv("SMTP_PASSWORD", log),
			SMTPFrom:     getEnvDefault("SMTP_FROM", ""),
			TMPLDir:      getEnvDefault("TEMPLATES_DIR", "templates"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := time.ParseDuration(daysStr + "h")
		if err != nil {
			log.Printf("Ошибка парсинга TTL: %v", err)
			return 0
		}
		return time.Duration(24) * days
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
