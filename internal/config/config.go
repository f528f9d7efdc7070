package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	Env            string
	AllowedOrigins []string

	// Files
	DataDir   string
	StaticDir string

	// Storefront
	StoreDomain string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string

	// MailerLite
	MailerLiteAPIKey  string
	MailerLiteGroupID string

	// Storage
	StorageDriver string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3PublicURL   string

	// Mockups
	MockupMinScale       float64
	MockupMaxScale       float64
	MockupVerticalAnchor float64
	MockupDefaultScale   float64
	FetchTimeout         time.Duration

	// Logging
	LogLevel string

	// DotEnvLoaded is false when no .env file was found.
	DotEnvLoaded bool
}

// Load reads .env when present, then the process environment. It does not
// log, so it can run before the logger is initialised.
func Load() *Config {
	// logging is not configured yet; main reports DotEnvLoaded after logger.Init
	dotEnvErr := godotenv.Load()

	return &Config{
		DotEnvLoaded: dotEnvErr == nil,

		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "*")),

		DataDir:   getEnv("DATA_DIR", "data"),
		StaticDir: getEnv("STATIC_DIR", "static"),

		StoreDomain: strings.Trim(strings.TrimSpace(getEnv("SHOPIFY_STORE_DOMAIN", "irenart.studio")), "/"),
		UTMSource:   getEnv("UTM_SOURCE", "roomvibe"),
		UTMMedium:   getEnv("UTM_MEDIUM", "app"),
		UTMCampaign: getEnv("UTM_CAMPAIGN", "default"),

		MailerLiteAPIKey:  strings.TrimSpace(getEnv("MAILERLITE_API_KEY", "")),
		MailerLiteGroupID: strings.TrimSpace(getEnv("MAILERLITE_GROUP_ID", "")),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3Region:      getEnv("S3_REGION", "auto"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:   getEnv("S3_PUBLIC_URL", ""),

		MockupMinScale:       parseFloat(getEnv("MOCKUP_MIN_SCALE", "0.2"), 0.2),
		MockupMaxScale:       parseFloat(getEnv("MOCKUP_MAX_SCALE", "0.9"), 0.9),
		MockupVerticalAnchor: parseFloat(getEnv("MOCKUP_VERTICAL_ANCHOR", "0.35"), 0.35),
		MockupDefaultScale:   parseFloat(getEnv("MOCKUP_DEFAULT_SCALE", "0.45"), 0.45),
		FetchTimeout:         time.Duration(parseInt(getEnv("FETCH_TIMEOUT_SECONDS", "10"), 10)) * time.Second,

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	// empty values fall back too; .env templates often leave keys blank
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseFloat(s string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
