package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Draft        DraftConfig
	Audit        AuditConfig
	Collaborator CollaboratorConfig
}

type AppConfig struct {
	Port string
	Env  string
	// AllowedOrigins lists CORS origins; "*" allows any origin without credentials
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type DraftConfig struct {
	// Store is "redis" or "memory"
	Store string
}

type AuditConfig struct {
	Enabled bool
}

type CollaboratorConfig struct {
	UploadEndpoint  string
	DoctorsEndpoint string
	// Timeout of zero means requests run until they finish or fail
	Timeout time.Duration
}

const (
	DraftStoreRedis  = "redis"
	DraftStoreMemory = "memory"
)

// LoadConfig reads .env from the working directory, then the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file, then the environment. A missing
// file is not an error.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	sessionTTL, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	timeout, err := time.ParseDuration(v.GetString("COLLABORATOR_TIMEOUT"))
	if err != nil {
		timeout = 0
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			CookieName: v.GetString("SESSION_COOKIE"),
			TTL:        sessionTTL,
		},
		Draft: DraftConfig{
			Store: v.GetString("DRAFT_STORE"),
		},
		Audit: AuditConfig{
			Enabled: v.GetBool("AUDIT_ENABLED"),
		},
		Collaborator: CollaboratorConfig{
			UploadEndpoint:  v.GetString("UPLOAD_ENDPOINT"),
			DoctorsEndpoint: v.GetString("DOCTORS_ENDPOINT"),
			Timeout:         timeout,
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_COOKIE", "doctor_form_session")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("DRAFT_STORE", DraftStoreMemory)
	v.SetDefault("AUDIT_ENABLED", false)
	v.SetDefault("UPLOAD_ENDPOINT", "http://localhost:3000/api/upload")
	v.SetDefault("DOCTORS_ENDPOINT", "http://localhost:3000/api/doctors")
	v.SetDefault("COLLABORATOR_TIMEOUT", "0s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
