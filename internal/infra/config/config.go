package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/joho/godotenv"
)

const (
	defaultPort            = 3000
	defaultAdminIDs        = "848907805"
	defaultSupportContact  = "@astafeva_alisiia"
	defaultPartnersURL     = "https://i.moscow/lomonosov_resident"
	defaultAdminListLimit  = 10
	defaultDailyDigestSpec = "0 10 * * *"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	BotToken            string
	WebAppURL           string
	Port                int
	AdminTelegramIDs    []int64
	LogLevel            string
	Environment         string
	CronSpecDailyDigest string // Empty disables the digest
	SupportContact      string
	PartnersURL         string
	AdminListLimit      int
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.BotToken = os.Getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	cfg.WebAppURL = strings.TrimSpace(os.Getenv("WEBAPP_URL"))
	if cfg.WebAppURL == "" {
		return nil, fmt.Errorf("WEBAPP_URL is not set")
	}

	cfg.Port, err = intFromEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	adminIDsStr, ok := os.LookupEnv("ADMIN_TELEGRAM_IDS")
	if !ok {
		adminIDsStr = defaultAdminIDs
	}
	cfg.AdminTelegramIDs, err = parseIDs(adminIDsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_IDS: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	spec, ok := os.LookupEnv("CRON_SPEC_DAILY_DIGEST")
	if !ok {
		spec = defaultDailyDigestSpec // 10:00 AM daily
	}
	cfg.CronSpecDailyDigest = strings.TrimSpace(spec)

	cfg.SupportContact = os.Getenv("SUPPORT_CONTACT")
	if cfg.SupportContact == "" {
		cfg.SupportContact = defaultSupportContact
	}

	cfg.PartnersURL = os.Getenv("PARTNERS_URL")
	if cfg.PartnersURL == "" {
		cfg.PartnersURL = defaultPartnersURL
	}

	cfg.AdminListLimit, err = intFromEnv("ADMIN_LIST_LIMIT", defaultAdminListLimit)
	if err != nil {
		return nil, err
	}
	if cfg.AdminListLimit <= 0 {
		return nil, fmt.Errorf("invalid ADMIN_LIST_LIMIT: must be positive, got %d", cfg.AdminListLimit)
	}

	return cfg, nil
}

func intFromEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

// parseIDs accepts a comma separated list of Telegram user IDs.
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
