package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Network table sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	NetworkSource  string
	NetworkFile    string
	DatabaseURL    string
	City           string
	NetworkVersion string

	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	NATSURL     string
	NATSSubject string
	NATSQueue   string

	MetricsAddr string
	LogQueries  bool
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.NetworkSource = strings.ToLower(getenvDefault("NETWORK_SOURCE", SourceEmbedded))
	switch cfg.NetworkSource {
	case SourceEmbedded:
	case SourceFile:
		cfg.NetworkFile = os.Getenv("NETWORK_FILE")
		if cfg.NetworkFile == "" {
			return nil, errors.New("NETWORK_FILE must be set when NETWORK_SOURCE=file")
		}
	case SourcePostgres:
		dsn, err := databaseURL()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
		cfg.City = firstNonEmpty(os.Getenv("CITY"), os.Getenv("CITY_NAME"))
		cfg.NetworkVersion = os.Getenv("NETWORK_VERSION")
		if cfg.City == "" && cfg.NetworkVersion == "" {
			return nil, errors.New("CITY or NETWORK_VERSION must be set when NETWORK_SOURCE=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid NETWORK_SOURCE: %q", cfg.NetworkSource)
	}

	// Unset or empty means :8080; "off" disables the HTTP API.
	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", ":8080")
	if strings.EqualFold(cfg.HTTPAddr, "off") {
		cfg.HTTPAddr = ""
	}

	var err error
	if cfg.ReadTimeout, err = secondsEnv("READ_TIMEOUT_SEC", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = secondsEnv("WRITE_TIMEOUT_SEC", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = secondsEnv("SHUTDOWN_TIMEOUT_SEC", 10*time.Second); err != nil {
		return nil, err
	}

	// Empty disables the NATS responder.
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubject = getenvDefault("NATS_SUBJECT", "metro.route")
	cfg.NATSQueue = getenvDefault("NATS_QUEUE", "routefinder")

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	if v := os.Getenv("LOG_QUERIES"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_QUERIES: %q", v)
		}
		cfg.LogQueries = b
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL / PG_DSN, else builds a DSN from PG* vars.
func databaseURL() (string, error) {
	if dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN")); dsn != "" {
		return dsn, nil
	}
	host := getenvDefault("PGHOST", "127.0.0.1")
	port := getenvDefault("PGPORT", "5432")
	user := getenvDefault("PGUSER", "postgres")
	pass := os.Getenv("PGPASSWORD")
	db := os.Getenv("PGDATABASE")
	if db == "" {
		return "", errors.New("PGDATABASE or DATABASE_URL must be set when NETWORK_SOURCE=postgres")
	}
	sslmode := getenvDefault("PGSSLMODE", "disable")
	if pass != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode), nil
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode), nil
}

func secondsEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return time.Duration(sec) * time.Second, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
