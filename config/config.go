package config

import "os"

// Config carries everything the process reads from the environment. It is
// built once in main and handed to the packages that need it, so handlers
// never reach for os.Getenv themselves.
type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string

	// Object storage for product and profile images. Leaving MediaEndpoint
	// empty disables uploads without disabling the rest of the API.
	MediaEndpoint  string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaBaseURL   string
	MediaUseSSL    bool

	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "2025"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MediaEndpoint:  os.Getenv("MEDIA_ENDPOINT"),
		MediaAccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
		MediaSecretKey: os.Getenv("MEDIA_SECRET_KEY"),
		MediaBucket:    getenv("MEDIA_BUCKET", "luxeparfum"),
		MediaBaseURL:   os.Getenv("MEDIA_BASE_URL"),
		MediaUseSSL:    os.Getenv("MEDIA_USE_SSL") == "true",
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
