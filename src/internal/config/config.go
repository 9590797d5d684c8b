package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/api-sage/banking-ledger/src/internal/logger"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=banking_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultPort = "8080"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerKey001"
const defaultBaseCurrency = "USD"

type Config struct {
	Port          string
	DatabaseDSN   string
	MigrationsDir string
	ChannelID     string
	ChannelKey    string
	BaseCurrency  string
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on environment variables", nil)
	}

	return Config{
		Port:          envOrDefault("PORT", defaultPort),
		DatabaseDSN:   normalizeConnectionString(envOrDefault("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir: filepath.Join("src", "migrations"),
		ChannelID:     envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:    envOrDefault("CHANNEL_KEY", defaultChannelKey),
		BaseCurrency:  strings.ToUpper(envOrDefault("BASE_CURRENCY", defaultBaseCurrency)),
	}, nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// normalizeConnectionString converts a semicolon-delimited connection string
// into the keyword/value form lib/pq expects. Strings already in
// keyword/value or URL form pass through untouched.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
