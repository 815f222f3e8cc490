package config

import (
	"log"
	"time"

	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Ledger
	DefaultCurrencyCode string

	// Withdrawals. WithdrawalFeeOverrides maps a payout method to its fee
	// rate; methods without an override use WithdrawalFeePercent.
	WithdrawalFeePercent   fixedpoint.Amount
	WithdrawalFeeOverrides map[string]fixedpoint.Amount
	WithdrawalMinAmount    fixedpoint.Amount
	LocalCurrencyCode      string

	// Referrals
	ReferralDailyPercent  fixedpoint.Amount
	ReferralClaimCooldown time.Duration
	AccrualInterval       time.Duration

	// Rate provider
	RateProviderURL string
	RateTimeout     time.Duration
	RateCacheTTL    time.Duration
	RateFallback    fixedpoint.Amount

	// Misc
	PosthogAPIKey string
	RateLimit     string // ulule/limiter formatted rate, e.g. "100-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_CURRENCY_CODE", "USD")
	viper.SetDefault("WITHDRAWAL_FEE_PERCENT", "0.005")
	viper.SetDefault("WITHDRAWAL_MIN_AMOUNT", "0.000001")
	viper.SetDefault("LOCAL_CURRENCY_CODE", "USD")
	viper.SetDefault("REFERRAL_DAILY_PERCENT", "0.01")
	viper.SetDefault("REFERRAL_CLAIM_COOLDOWN", "24h")
	viper.SetDefault("ACCRUAL_INTERVAL", "24h")
	viper.SetDefault("RATE_PROVIDER_URL", "")
	viper.SetDefault("RATE_TIMEOUT", "3s")
	viper.SetDefault("RATE_CACHE_TTL", "1m")
	viper.SetDefault("RATE_FALLBACK", "1")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DefaultCurrencyCode = viper.GetString("DEFAULT_CURRENCY_CODE")
	cfg.LocalCurrencyCode = viper.GetString("LOCAL_CURRENCY_CODE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RateProviderURL = viper.GetString("RATE_PROVIDER_URL")

	cfg.WithdrawalFeePercent = loadAmount("WITHDRAWAL_FEE_PERCENT", "0.005")
	cfg.WithdrawalFeeOverrides = loadFeeOverrides()
	cfg.WithdrawalMinAmount = loadAmount("WITHDRAWAL_MIN_AMOUNT", "0.000001")
	cfg.ReferralDailyPercent = loadAmount("REFERRAL_DAILY_PERCENT", "0.01")
	cfg.RateFallback = loadAmount("RATE_FALLBACK", "1")

	cfg.ReferralClaimCooldown = loadDuration("REFERRAL_CLAIM_COOLDOWN", 24*time.Hour)
	cfg.AccrualInterval = loadDuration("ACCRUAL_INTERVAL", 24*time.Hour)
	cfg.RateTimeout = loadDuration("RATE_TIMEOUT", 3*time.Second)
	cfg.RateCacheTTL = loadDuration("RATE_CACHE_TTL", time.Minute)

	return cfg, nil
}

// withdrawalMethods lists the payout methods that accept a
// WITHDRAWAL_FEE_PERCENT_<METHOD> fee override.
var withdrawalMethods = []string{"BANK_TRANSFER", "CRYPTO", "PAYPAL"}

func loadFeeOverrides() map[string]fixedpoint.Amount {
	overrides := make(map[string]fixedpoint.Amount)
	for _, method := range withdrawalMethods {
		key := "WITHDRAWAL_FEE_PERCENT_" + method
		raw := viper.GetString(key)
		if raw == "" {
			continue
		}
		amount, err := fixedpoint.Parse(raw)
		if err != nil {
			log.Printf("Warning: Invalid value for %s ('%s'). Ignoring override.\n", key, raw)
			continue
		}
		overrides[method] = amount
	}
	return overrides
}

func loadAmount(key, fallback string) fixedpoint.Amount {
	raw := viper.GetString(key)
	amount, err := fixedpoint.Parse(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fixedpoint.MustParse(fallback)
	}
	return amount
}

func loadDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
