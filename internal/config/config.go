package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// EngineConfig holds the attendance-engine policy knobs. These are
// deployment configuration, not code constants: the overtime windows and
// expected hours differ between organizations.
type EngineConfig struct {
	// CheckInTolerance is how early an employee may check in before the
	// shift's scheduled start.
	CheckInTolerance time.Duration

	// Expected working hours per shift kind. Custom shifts derive their
	// expectation from their own start/end times and fall back to
	// DefaultExpectedHours when the schedule is unparseable.
	DayExpectedHours     float64
	NightExpectedHours   float64
	DefaultExpectedHours float64

	// NightWindowStart/End describe the organization's overnight shift
	// band (HH:MM, wrapping midnight). Sessions inside the band are
	// attributed to the work date on which the band began.
	NightWindowStart string
	NightWindowEnd   string

	// BoundaryRefreshInterval is how often the cached work-day boundary
	// is recomputed in the background.
	BoundaryRefreshInterval time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timekeep"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine configuration
	tolerance, err := time.ParseDuration(getEnv("ENGINE_CHECKIN_TOLERANCE", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_CHECKIN_TOLERANCE: %w", err)
	}

	refresh, err := time.ParseDuration(getEnv("ENGINE_BOUNDARY_REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_BOUNDARY_REFRESH_INTERVAL: %w", err)
	}

	dayHours, err := strconv.ParseFloat(getEnv("ENGINE_DAY_EXPECTED_HOURS", "7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_DAY_EXPECTED_HOURS: %w", err)
	}

	nightHours, err := strconv.ParseFloat(getEnv("ENGINE_NIGHT_EXPECTED_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_NIGHT_EXPECTED_HOURS: %w", err)
	}

	defaultHours, err := strconv.ParseFloat(getEnv("ENGINE_DEFAULT_EXPECTED_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_DEFAULT_EXPECTED_HOURS: %w", err)
	}

	config.Engine = EngineConfig{
		CheckInTolerance:        tolerance,
		DayExpectedHours:        dayHours,
		NightExpectedHours:      nightHours,
		DefaultExpectedHours:    defaultHours,
		NightWindowStart:        getEnv("ENGINE_NIGHT_WINDOW_START", "22:00"),
		NightWindowEnd:          getEnv("ENGINE_NIGHT_WINDOW_END", "06:00"),
		BoundaryRefreshInterval: refresh,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.DayExpectedHours <= 0 || c.Engine.NightExpectedHours <= 0 || c.Engine.DefaultExpectedHours <= 0 {
		return fmt.Errorf("expected hours must be positive")
	}
	if c.Engine.CheckInTolerance < 0 {
		return fmt.Errorf("ENGINE_CHECKIN_TOLERANCE must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
