package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	Port        string
	Mode        string

	MongoURI string
	MongoDB  string

	JWTSecret        string
	TokenExpiryHours int
	UniversalOTP     string

	ConsulEnabled bool
	ConsulAddress string

	FirebaseCredentials string

	EscalationSpec     string
	NoResponseMinutes  int

	APIBaseURL string
	TokenFile  string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int
	LogMaxBackups int
}

func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_NAME", "lumi-care-service")
	v.SetDefault("PORT", "8080")
	v.SetDefault("MODE", "debug")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "lumi")
	v.SetDefault("JWT_SECRET", "super_secret_key_for_hackathon_12345")
	v.SetDefault("TOKEN_EXPIRY_HOURS", 24*7)
	v.SetDefault("UNIVERSAL_OTP", "1234")
	v.SetDefault("CONSUL_ENABLED", false)
	v.SetDefault("CONSUL_ADDRESS", "localhost:8500")
	v.SetDefault("ESCALATION_SPEC", "0 */1 * * * *")
	v.SetDefault("NO_RESPONSE_MINUTES", 5)
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("TOKEN_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("LOG_MAX_BACKUPS", 3)

	return &Config{
		ServiceName:         v.GetString("SERVICE_NAME"),
		Port:                v.GetString("PORT"),
		Mode:                v.GetString("MODE"),
		MongoURI:            v.GetString("MONGO_URI"),
		MongoDB:             v.GetString("MONGO_DB"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenExpiryHours:    v.GetInt("TOKEN_EXPIRY_HOURS"),
		UniversalOTP:        v.GetString("UNIVERSAL_OTP"),
		ConsulEnabled:       v.GetBool("CONSUL_ENABLED"),
		ConsulAddress:       v.GetString("CONSUL_ADDRESS"),
		FirebaseCredentials: v.GetString("FIREBASE_CREDENTIALS"),
		EscalationSpec:      v.GetString("ESCALATION_SPEC"),
		NoResponseMinutes:   v.GetInt("NO_RESPONSE_MINUTES"),
		APIBaseURL:          v.GetString("API_BASE_URL"),
		TokenFile:           v.GetString("TOKEN_FILE"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFile:             v.GetString("LOG_FILE"),
		LogMaxSizeMB:        v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxAgeDays:       v.GetInt("LOG_MAX_AGE_DAYS"),
		LogMaxBackups:       v.GetInt("LOG_MAX_BACKUPS"),
	}
}
