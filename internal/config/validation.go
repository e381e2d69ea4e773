package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks a loaded configuration for values the client cannot use.
func Validate(cfg *Config) error {
	if err := ValidateBaseURL(cfg.APIBase, "api_base"); err != nil {
		return err
	}
	if err := ValidateInterval(cfg.Poll.Interval, "poll.interval"); err != nil {
		return err
	}
	if cfg.Poll.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("poll.max_consecutive_failures cannot be negative")
	}
	if cfg.Poll.MaxBackoff < cfg.Poll.Interval {
		return fmt.Errorf("poll.max_backoff must be at least poll.interval")
	}
	if cfg.Poll.SegmentLimit <= 0 {
		return fmt.Errorf("poll.segment_limit must be positive")
	}

	switch cfg.History.Backend {
	case "sqlite":
		if cfg.History.SQLitePath == "" {
			return fmt.Errorf("history.sqlite_path is required for the sqlite backend")
		}
	case "postgres":
		if cfg.History.PostgresDSN == "" {
			return fmt.Errorf("history.postgres_dsn is required for the postgres backend")
		}
	case "redis":
		if cfg.History.RedisAddr == "" {
			return fmt.Errorf("history.redis_addr is required for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown history backend %q (want sqlite, postgres, redis or memory)", cfg.History.Backend)
	}
	return nil
}

// ValidateBaseURL validates an absolute http(s) URL
func ValidateBaseURL(raw string, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", name)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// ValidateInterval validates a polling interval
func ValidateInterval(d time.Duration, name string) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	if d > 5*time.Minute {
		return fmt.Errorf("%s too large (max 5 minutes)", name)
	}
	return nil
}
