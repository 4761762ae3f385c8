package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP App Password

	// Object storage (S3) settings for presigned uploads
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
	PresignExpirySec int
	UploadMaxBytes   int64

	// External identity provider token verification
	IdPJwksURL  string
	IdPIssuer   string
	IdPAudience string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		S3Region:         getEnv("S3_REGION", "ap-south-1"),
		S3Bucket:         getEnv("S3_BUCKET", "edutok-media"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 60),
		UploadMaxBytes:   int64(getEnvInt("UPLOAD_MAX_BYTES", 150*1024*1024)),

		IdPJwksURL:  getEnv("IDP_JWKS_URL", ""),
		IdPIssuer:   getEnv("IDP_ISSUER", ""),
		IdPAudience: getEnv("IDP_AUDIENCE", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.S3AccessKey == "" {
		log.Println("Warning: S3 credentials are not set. Presigned uploads will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
