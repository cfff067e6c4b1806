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

	EmailSender    string
	Password       string // SMTP App Password
	SendGridAPIKey string // preferred email transport when set

	SMSApiKey   string
	SMSSenderID string

	DeptName string // shown in email templates
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

		EmailSender:    getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:       getEnv("PASSWORD", "defaultSecret"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		SMSApiKey:   getEnv("SMS_API_KEY", ""),
		SMSSenderID: getEnv("SMS_SENDER_ID", "CLGDPT"),

		DeptName: getEnv("DEPT_NAME", "Department of Computer Science"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Falling back to SMTP for outbound email.")
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
