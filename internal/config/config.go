package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	JWTSecret     string
	TokenTTLHours int

	// Telegram is optional: when the token is empty, timer
	// notifications are disabled.
	TelegramToken       string
	TelegramAdminChatID int64
}

var instance *Config
var once sync.Once

func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		instance = &Config{}

		instance.DatabaseURL = getEnv("DATABASE_URL", "dclandscaping.db")
		instance.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

		instance.JWTSecret = getEnv("JWT_SECRET", "dc-landscaping-secret-key-change-in-production")
		if instance.JWTSecret == "" {
			logrus.Fatal("JWT_SECRET must not be empty")
		}

		instance.TokenTTLHours = int(getEnvAsInt("TOKEN_TTL_HOURS", 24*7))

		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		instance.TelegramAdminChatID = getEnvAsInt("TELEGRAM_ADMIN_CHAT_ID", 0)
		if instance.TelegramToken != "" && instance.TelegramAdminChatID == 0 {
			logrus.Fatal("TELEGRAM_ADMIN_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
