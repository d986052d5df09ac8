package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MailProviderConfig holds the OAuth2 endpoints and client credentials for
// the outbound mail provider. Client id/secret come from the environment and
// are read-only at runtime.
type MailProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       string
	AuthURL      string
	TokenURL     string
	SendURL      string
	FromAddress  string
}

// Config is the application configuration.
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	ImportAPIURL string
	ImportAPIKey string

	Mail MailProviderConfig
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	return &Config{
		Port:     port,
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "emi_crm"),
		JWTKey:   getEnv("JWT_KEY", "your-secret-key"),
		Debug:    getEnv("GIN_MODE", "debug") == "debug",

		ImportAPIURL: getEnv("IMPORT_API_URL", "https://leads.emidigital.id/api/search"),
		ImportAPIKey: getEnv("IMPORT_API_KEY", ""),

		Mail: MailProviderConfig{
			ClientID:     getEnv("MAIL_CLIENT_ID", ""),
			ClientSecret: getEnv("MAIL_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("MAIL_REDIRECT_URI", "http://localhost:8080/api/mail/callback"),
			Scopes:       getEnv("MAIL_SCOPES", "https://www.googleapis.com/auth/gmail.send"),
			AuthURL:      getEnv("MAIL_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
			TokenURL:     getEnv("MAIL_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			SendURL:      getEnv("MAIL_SEND_URL", "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"),
			FromAddress:  getEnv("MAIL_FROM_ADDRESS", "marketing@emidigital.id"),
		},
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
