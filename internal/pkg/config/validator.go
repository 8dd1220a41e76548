package config

import (
	"cmp"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five-field format: "minute hour day month weekday".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseCronSchedule parses a five-field cron expression, e.g. "0 */6 * * *".
func ParseCronSchedule(schedule string) (cron.Schedule, error) {
	if schedule == "" {
		return nil, fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	s, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return s, nil
}

// ValidateCronSchedule reports whether schedule is a valid five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := ParseCronSchedule(schedule)
	return err
}

// ValidateTimezone checks that timezone is a loadable IANA name such as "Asia/Tokyo".
// Loading depends on tzdata being available on the host.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}

// inRange checks min <= value <= max, naming the kind of value in errors.
func inRange[T cmp.Ordered](kind string, value, min, max T) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if value < min {
		return fmt.Errorf("%s %v is below minimum %v", kind, value, min)
	}
	if value > max {
		return fmt.Errorf("%s %v exceeds maximum %v", kind, value, max)
	}
	return nil
}

// ValidateDuration checks min <= duration <= max.
func ValidateDuration(duration, min, max time.Duration) error {
	return inRange("duration", duration, min, max)
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	return inRange("value", value, min, max)
}

// ValidateFloatRange checks min <= value <= max.
func ValidateFloatRange(value, min, max float64) error {
	return inRange("value", value, min, max)
}

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}
	return nil
}

// ValidatePort checks that port is an unprivileged TCP port (1024-65535).
func ValidatePort(port int) error {
	return inRange("port", port, 1024, 65535)
}
