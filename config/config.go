package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Upload     UploadConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SessionConfig struct {
	Secret      string
	CookieName  string
	ExpiryHours int
	Secure      bool
}

type UploadConfig struct {
	Dir             string
	MaxImageSizeMB  int64
	MaxUploadSizeMB int64
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "trustyhands_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Session: SessionConfig{
			Secret:      getEnv("SESSION_SECRET", "trustyhands_secret_key"),
			CookieName:  getEnv("SESSION_COOKIE_NAME", "th_session"),
			ExpiryHours: getEnvAsInt("SESSION_EXPIRY_HOURS", 24*7),
			Secure:      getEnv("GIN_MODE", "debug") == "release",
		},
		Upload: UploadConfig{
			Dir:             getEnv("UPLOAD_DIR", "uploads"),
			MaxImageSizeMB:  int64(getEnvAsInt("MAX_IMAGE_SIZE_MB", 2)),
			MaxUploadSizeMB: int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 5)),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
