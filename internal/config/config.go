package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	HTTPAddr       string
	DatabaseURL    string
	ReviewSLAHours int
	BaseAdminEmail string
	BaseAdminName  string
	TelegramToken  string
}

var instance *ServerConfig
var once sync.Once

func GetServerConfig() *ServerConfig {
	once.Do(func() {
		instance = &ServerConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("no .env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
		instance.ReviewSLAHours = int(getEnvAsInt("REVIEW_SLA_HOURS", 48))
		instance.BaseAdminEmail = getEnv("BASE_ADMIN_EMAIL", "")
		instance.BaseAdminName = getEnv("BASE_ADMIN_NAME", "Administrator")

		// optional, notifications are disabled without it
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
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
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
