package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const OrdersTopic = "orders"

// LoadEnv reads a local .env file when one exists. Variables already present
// in the environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// SMTPConfig holds the four transport credentials plus sender and operator
// recipients. Notifications are only attempted when all four credentials are set.
type SMTPConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	From      string
	Operators []string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.User != "" && c.Password != ""
}

func SMTPFromEnv() SMTPConfig {
	user := os.Getenv("SMTP_USER")
	return SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      os.Getenv("SMTP_PORT"),
		User:      user,
		Password:  os.Getenv("SMTP_PASSWORD"),
		From:      GetEnv("SMTP_FROM", user),
		Operators: SplitList(GetEnv("OPERATOR_EMAILS", "orders@fastgrab.local")),
	}
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	SessionKey   []byte
	CSRFKey      []byte
	CookieSecure bool
}

func AdminFromEnv() AdminConfig {
	cfg := AdminConfig{
		Username:     GetEnv("ADMIN_USERNAME", "admin"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionKey:   []byte(os.Getenv("SESSION_KEY")),
		CSRFKey:      []byte(os.Getenv("CSRF_KEY")),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
	}
	if cfg.PasswordHash == "" {
		log.Printf("Warning: ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}
	if len(cfg.SessionKey) < 32 {
		log.Fatal("SESSION_KEY must be at least 32 bytes")
	}
	if len(cfg.CSRFKey) != 32 {
		log.Fatal("CSRF_KEY must be exactly 32 bytes")
	}
	return cfg
}

// SplitList splits a comma separated env value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
