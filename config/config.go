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

	// WhatsApp business gateway
	WhatsAppApiURL string
	WhatsAppApiKey string

	// CEP lookup providers (primary + fallback)
	CepPrimaryURL  string
	CepFallbackURL string

	EmailSender string
	Password    string // SMTP password

	// Certificate rendering/storage
	CertStorageDir string
	CertFontPath   string
	PublicBaseURL  string // base URL for generated document and short links

	// Bulk import pacing (milliseconds between items)
	ImportDelayMs int
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

		WhatsAppApiURL: getEnv("WHATSAPP_API_URL", "https://gateway.example.com/api/v1"),
		WhatsAppApiKey: getEnv("WHATSAPP_API_KEY", ""),

		CepPrimaryURL:  getEnv("CEP_PRIMARY_URL", "https://viacep.com.br/ws"),
		CepFallbackURL: getEnv("CEP_FALLBACK_URL", "https://brasilapi.com.br/api/cep/v1"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),

		CertStorageDir: getEnv("CERT_STORAGE_DIR", "./public/certificates"),
		CertFontPath:   getEnv("CERT_FONT_PATH", "./assets/fonts/DejaVuSans.ttf"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		ImportDelayMs: getEnvInt("IMPORT_DELAY_MS", 500),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WhatsAppApiKey == "" {
		log.Println("Warning: WHATSAPP_API_KEY not set. WhatsApp dispatch will fail.")
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
