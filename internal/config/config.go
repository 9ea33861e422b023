package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Owner     OwnerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	GST       GSTConfig
	AI        AIConfig
	Vision    VisionConfig
	Storage   StorageConfig
	Seller    SellerConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// OwnerConfig holds the single shop-owner account. The password is stored as
// a bcrypt hash, never in the clear.
type OwnerConfig struct {
	Username     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// GSTConfig holds the tax percentage applied to GST-type bills at finalize.
type GSTConfig struct {
	RatePercent int
}

// AIConfig holds the Gemini credentials for the voice and vision flows.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// VisionConfig holds Google Cloud Vision credentials (JSON key material).
type VisionConfig struct {
	CredentialsJSON string
}

type StorageConfig struct {
	PDFDir string
}

// SellerConfig is the shop identity printed on invoices.
type SellerConfig struct {
	Name     string
	Address  string
	GSTIN    string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "billing-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "billing")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("OWNER_USERNAME", "owner")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("GST_RATE_PERCENT", 18)
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("PDF_DIR", "./generated")
	viper.SetDefault("SELLER_NAME", "ABC Hardware Store")
	viper.SetDefault("SELLER_ADDRESS", "Main Market, Sector 12")
	viper.SetDefault("SELLER_GSTIN", "")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Owner: OwnerConfig{
			Username:     viper.GetString("OWNER_USERNAME"),
			PasswordHash: viper.GetString("OWNER_PASSWORD_HASH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		GST: GSTConfig{
			RatePercent: viper.GetInt("GST_RATE_PERCENT"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			GeminiModel:  viper.GetString("GEMINI_MODEL"),
		},
		Vision: VisionConfig{
			CredentialsJSON: viper.GetString("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		},
		Storage: StorageConfig{
			PDFDir: viper.GetString("PDF_DIR"),
		},
		Seller: SellerConfig{
			Name:    viper.GetString("SELLER_NAME"),
			Address: viper.GetString("SELLER_ADDRESS"),
			GSTIN:   viper.GetString("SELLER_GSTIN"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
