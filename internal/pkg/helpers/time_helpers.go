package helpers

import (
	"time"

	"github.com/yigit/alumnihub/internal/pkg/logger"
)

// ParseDuration reads config durations such as the token lifetime; a bad
// value falls back to def with a warning.
func ParseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", s).Dur("fallback", def).Msg("Invalid duration, using fallback")
		return def
	}
	return d
}
