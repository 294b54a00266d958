package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port           int
	WSPort         int    // Port for the WebSocket server (used when ServerType is "both")
	ServerType     string // "http", "websocket", or "both"
	BaseURLPrefix  string // Booking API prefix, without the restaurant segment
	Restaurant     string // Microsite name, appended to the prefix and sent on cancellation
	APIToken       string // Bearer token for the booking API
	RedisURL       string
	RedisPassword  string
	MaxSessions    int
	SessionTimeout time.Duration
	AllowedOrigins []string
	RequestTimeout time.Duration // Outbound booking API timeout
	LogLevel       string
	Timezone       *time.Location // Reference timezone for relative dates
}

// BaseURL returns the full booking API base URL for the configured restaurant.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.BaseURLPrefix, "/") + "/" + c.Restaurant
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:           8080,
		WSPort:         8081,
		ServerType:     "http",
		BaseURLPrefix:  "http://localhost:8547/api/ConsumerApi/v1/Restaurant",
		Restaurant:     "TheHungryUnicorn",
		RedisURL:       "localhost:6379",
		RedisPassword:  "",
		MaxSessions:    100,
		SessionTimeout: 30 * time.Minute,
		AllowedOrigins: []string{"*"},
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
	}

	// Required: BOOKING_API_TOKEN
	config.APIToken = os.Getenv("BOOKING_API_TOKEN")
	if config.APIToken == "" {
		return nil, fmt.Errorf("BOOKING_API_TOKEN environment variable is required")
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: WS_PORT (used when SERVER_TYPE is "both")
	if wsPort := os.Getenv("WS_PORT"); wsPort != "" {
		p, err := strconv.Atoi(wsPort)
		if err != nil {
			return nil, fmt.Errorf("invalid WS_PORT: %w", err)
		}
		config.WSPort = p
	}

	// Optional: SERVER_TYPE ("http", "websocket", or "both")
	if serverType := os.Getenv("SERVER_TYPE"); serverType != "" {
		switch serverType {
		case "http", "websocket", "both":
			config.ServerType = serverType
		default:
			return nil, fmt.Errorf("invalid SERVER_TYPE: must be 'http', 'websocket', or 'both'")
		}
	}

	// Optional: BASE_URL_PREFIX
	if prefix := os.Getenv("BASE_URL_PREFIX"); prefix != "" {
		config.BaseURLPrefix = prefix
	}

	// Optional: RESTAURANT
	if restaurant := os.Getenv("RESTAURANT"); restaurant != "" {
		config.Restaurant = restaurant
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: REQUEST_TIMEOUT (in seconds)
	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		config.RequestTimeout = time.Duration(t) * time.Second
	}

	// Optional: LOG_LEVEL
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	// Optional: TIMEZONE (reference timezone for "today", "tomorrow", weekday names)
	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Europe/London"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	config.Timezone = loc

	return config, nil
}
