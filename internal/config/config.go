package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// Bootstrap admin account, created at startup when all three are set.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

var instance *ServerConfig
var once sync.Once

func GetServerConfig() *ServerConfig {
	once.Do(func() {
		instance = &ServerConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Info("no .env file found, reading environment directly")
		}

		instance.Port = getEnv("PORT", "8080")
		instance.DatabaseURL = getEnv("DATABASE_URL", "absences.db")

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get jwt secret")
		}

		instance.JWTTTL = time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour

		instance.AdminUsername = getEnv("ADMIN_USERNAME", "")
		instance.AdminEmail = getEnv("ADMIN_EMAIL", "")
		instance.AdminPassword = getEnv("ADMIN_PASSWORD", "")
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
