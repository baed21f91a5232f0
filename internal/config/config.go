package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	StripeSecretKey string
	AllowedOrigins  []string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
}

// Load reads the .env file if present and builds the config from the
// environment, falling back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg := Config{
		Port:            getenv("PORT", "5000"),
		MongoURI:        getenv("MONGODB_URI", "mongodb://localhost:27017/blood_aid"),
		DBName:          getenv("DB_NAME", "blood_aid"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		MinioEndpoint:   getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:  getenv("MINIO_SECRET_KEY", "minioadmin"),
	}

	// Local dev client plus the deployed frontend; CLIENT_URL may carry a
	// trailing slash which browsers never send in the Origin header.
	origins := []string{
		"https://blooddonation20.netlify.app",
		"http://localhost:5173",
	}
	if clientURL := strings.TrimSuffix(os.Getenv("CLIENT_URL"), "/"); clientURL != "" {
		origins = append([]string{clientURL}, origins...)
	}
	cfg.AllowedOrigins = origins

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
