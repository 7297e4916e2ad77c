// Package config builds runtime configuration from the environment so main
// stays lean. Federation rule tables (category brackets, quota ceilings, the
// exception window) live here as injectable data, not as constants scattered
// across validators.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Env  string
	Addr string

	// PostgresDSN is empty when running on in-memory stores.
	PostgresDSN string

	Redis RedisConfig
	Kafka KafkaConfig

	JWTSigningKey string

	Rules Rules
}

// RedisConfig configures the optional division-lookup cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// DivisionTTL bounds how long a resolved team division is served from
	// cache.
	DivisionTTL time.Duration
}

// KafkaConfig configures the audit outbox relay.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// Rules carries every tunable federation rule the validation pipeline and the
// category calculator consume.
type Rules struct {
	// DomesticNationality is the ISO code whose players carry a CIN instead
	// of a passport.
	DomesticNationality string

	// Season closing boundary (month/day constant, year varies per season).
	SeasonClosingMonth time.Month
	SeasonClosingDay   int

	// CategoryBrackets maps age-category codes to birth-year windows,
	// youngest bracket first. Birth years older than every bracket fall into
	// the senior catch-all.
	CategoryBrackets []CategoryBracket

	// ExceptionWindow is the birth-date range whose players are exempt from
	// the identity-document requirement without changing category.
	ExceptionWindowStart time.Time
	ExceptionWindowEnd   time.Time

	// Quota ceilings.
	MaxRosterSize        int
	RosterWarningMargin  int
	MaxProfessionals     int
	MaxForeignByDivision map[string]int

	// LoanReturnSeasonWindow is how many past seasons a loan-type membership
	// may be found in for a loan-return request.
	LoanReturnSeasonWindow int

	// RenewalLookbackSeasons bounds how far back the renewal check scans the
	// membership ledger.
	RenewalLookbackSeasons int

	// MedicalConsultationMaxAgeMonths bounds how old the medical
	// consultation may be.
	MedicalConsultationMaxAgeMonths int

	// LookupTimeout bounds every collaborator call made during validation.
	LookupTimeout time.Duration
}

// FromEnv builds the configuration, applying federation defaults for
// everything not overridden.
func FromEnv() Config {
	cfg := Config{
		Env:           envOr("FTF_ENV", "dev"),
		Addr:          envOr("FTF_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("FTF_POSTGRES_DSN"),
		JWTSigningKey: envOr("FTF_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Redis: RedisConfig{
			URL:          os.Getenv("FTF_REDIS_URL"),
			PoolSize:     envIntOr("FTF_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("FTF_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			DivisionTTL:  envDurationOr("FTF_DIVISION_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("FTF_KAFKA_BROKERS")),
			AuditTopic: envOr("FTF_KAFKA_AUDIT_TOPIC", "ftf.licenses.audit"),
		},
		Rules: DefaultRules(),
	}
	cfg.Rules.MaxRosterSize = envIntOr("FTF_QUOTA_ROSTER", cfg.Rules.MaxRosterSize)
	cfg.Rules.MaxProfessionals = envIntOr("FTF_QUOTA_PROFESSIONALS", cfg.Rules.MaxProfessionals)
	return cfg
}

// DefaultRules returns the federation defaults for the current cycle.
func DefaultRules() Rules {
	return Rules{
		DomesticNationality: "TN",
		SeasonClosingMonth:  time.June,
		SeasonClosingDay:    30,
		CategoryBrackets: []CategoryBracket{
			{Code: "ECOLES", FromYear: 2012, ToYear: 2013},
			{Code: "MINIMES", FromYear: 2010, ToYear: 2011},
			{Code: "CADETS", FromYear: 2008, ToYear: 2009},
			{Code: "JUNIORS", FromYear: 2006, ToYear: 2007},
		},
		ExceptionWindowStart: time.Date(2005, time.September, 1, 0, 0, 0, 0, time.UTC),
		ExceptionWindowEnd:   time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC),
		MaxRosterSize:        80,
		RosterWarningMargin:  5,
		MaxProfessionals:     25,
		MaxForeignByDivision: map[string]int{
			"LIGUE_1": 4,
			"LIGUE_2": 3,
		},
		LoanReturnSeasonWindow:          4,
		RenewalLookbackSeasons:          10,
		MedicalConsultationMaxAgeMonths: 1,
		LookupTimeout:                   3 * time.Second,
	}
}

// CategoryBracket is one birth-year window of the category table.
type CategoryBracket struct {
	Code     string
	FromYear int
	ToYear   int
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
