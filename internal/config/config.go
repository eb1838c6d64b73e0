package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the read-only configuration surface for the gateway
// integration. Values come from the environment; defaults match the
// sandbox endpoints of the AppyPay API.
type Config struct {
	AuthURL      string
	APIURL       string
	ClientID     string
	ClientSecret string
	GrantType    string
	Resource     string

	AcceptLanguage string
	Accept         string
	ContentType    string

	DefaultCurrency      string
	DefaultPaymentMethod string
	PrefixDefault        string
	PrefixRenewal        string
	DefaultStorageTable  string

	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything except the client credentials.
func FromEnv() *Config {
	return &Config{
		AuthURL:      getEnv("APY_AUTH_URL", "https://login.microsoftonline.com/appypaydev.onmicrosoft.com/oauth2/token"),
		APIURL:       getEnv("APY_API_URL", "https://gwy-api-tst.appypay.co.ao/v2.0"),
		ClientID:     os.Getenv("APY_CLIENT_ID"),
		ClientSecret: os.Getenv("APY_CLIENT_SECRET"),
		GrantType:    getEnv("APY_GRANT_TYPE", "client_credentials"),
		Resource:     getEnv("APY_RESOURCE", "2aed7612-de64-46b5-9e59-1f48f8902d14"),

		AcceptLanguage: getEnv("APY_ACCEPT_LANGUAGE", "pt-BR"),
		Accept:         getEnv("APY_ACCEPT", "application/json"),
		ContentType:    getEnv("APY_CONTENT_TYPE", "application/json"),

		DefaultCurrency:      getEnv("APY_DEFAULT_CURRENCY", "AOA"),
		DefaultPaymentMethod: getEnv("APY_DEFAULT_METHOD", "REF_"),
		PrefixDefault:        getEnv("APY_PREFIX_DEFAULT", "PS"),
		PrefixRenewal:        getEnv("APY_PREFIX_RENEWAL", "PC"),
		DefaultStorageTable:  getEnv("APY_STORAGE_TABLE", "apy_payments"),

		MaxRetries: getEnvInt("APY_MAX_RETRIES", 3),
		RetryDelay: time.Duration(getEnvInt("APY_RETRY_DELAY_SECONDS", 1)) * time.Second,
		Timeout:    time.Duration(getEnvInt("APY_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// MerchantPrefix returns the configured prefix for a merchant transaction
// id. Renewal charges use the renewal prefix.
func (c *Config) MerchantPrefix(renewal bool) string {
	if renewal {
		return c.PrefixRenewal
	}
	return c.PrefixDefault
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
