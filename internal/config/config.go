// Package config loads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Draft store backends.
const (
	StoreMemory    = "memory"
	StoreFile      = "file"
	StoreRedis     = "redis"
	StoreFirestore = "firestore"
)

// Exporters.
const (
	ExporterPrint    = "print"
	ExporterChromedp = "chromedp"
)

// Config holds every setting the server and CLI read at startup.
type Config struct {
	Port string

	DraftStore string
	DraftDir   string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	FirebaseProjectID            string
	GoogleApplicationCredentials string

	Exporter        string
	ChromeURL       string
	ChromeNoSandbox bool
	PrintDelay      time.Duration

	DefaultLocale language.Tag
	// DefaultTimeZone dates documents for clients that send no zone. Nil means server local time.
	DefaultTimeZone *time.Location
}

// Load reads .env files (when present) into the environment and then builds the
// configuration from it. Variables already set in the environment take precedence.
func Load(files ...string) (*Config, error) {
	if err := loadDotenv(files...); err != nil {
		return nil, err
	}
	return FromLookup(os.LookupEnv)
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// FromLookup builds the configuration from lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:                         get("PORT", "8080"),
		DraftStore:                   strings.ToLower(get("DRAFT_STORE", StoreFile)),
		DraftDir:                     get("DRAFT_DIR", ".data"),
		RedisAddr:                    get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:                get("REDIS_PASSWORD", ""),
		RedisKeyPrefix:               get("REDIS_KEY_PREFIX", "profile-print:"),
		FirebaseProjectID:            get("FIREBASE_PROJECT_ID", ""),
		GoogleApplicationCredentials: get("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Exporter:                     strings.ToLower(get("EXPORTER", ExporterPrint)),
		ChromeURL:                    get("CHROME_URL", ""),
	}

	var errs []error

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: invalid port %q", cfg.Port))
	}

	db, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil || db < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB: must be a non-negative integer"))
	}
	cfg.RedisDB = db

	noSandbox, err := strconv.ParseBool(get("CHROME_NO_SANDBOX", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CHROME_NO_SANDBOX: %w", err))
	}
	cfg.ChromeNoSandbox = noSandbox

	delay, err := time.ParseDuration(get("PRINT_DELAY", "500ms"))
	if err != nil || delay <= 0 {
		errs = append(errs, fmt.Errorf("PRINT_DELAY: must be a positive duration"))
	}
	cfg.PrintDelay = delay

	locale, err := language.Parse(get("DEFAULT_LOCALE", "en-US"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_LOCALE: %w", err))
	}
	cfg.DefaultLocale = locale

	if zone := get("DEFAULT_TIME_ZONE", ""); zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEFAULT_TIME_ZONE: %w", err))
		}
		cfg.DefaultTimeZone = loc
	}

	switch cfg.DraftStore {
	case StoreMemory, StoreFile, StoreRedis:
	case StoreFirestore:
		if cfg.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID: required when DRAFT_STORE=firestore"))
		}
	default:
		errs = append(errs, fmt.Errorf("DRAFT_STORE: unknown backend %q", cfg.DraftStore))
	}

	switch cfg.Exporter {
	case ExporterPrint, ExporterChromedp:
	default:
		errs = append(errs, fmt.Errorf("EXPORTER: unknown exporter %q", cfg.Exporter))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
