// package shared defines shared helpers
package shared

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel parses a level name ("debug", "info", "warn", "error") and applies it to l.
//
// Unknown names leave the logger at info.
func SetLogLevel(l *log.Logger, name string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// ParseOrDefault decodes raw as JSON into a T, returning def when raw is empty or does not decode.
func ParseOrDefault[T any](raw string, def T) T {
	if strings.TrimSpace(raw) == "" {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// ParseWholeNumber reports the value of a JSON number token with no fractional part, such as 3, 3.0 or 3e0.
//
// Strings, booleans, null and numbers outside the int64 range are rejected.
func ParseWholeNumber(raw []byte) (int64, bool) {
	r := gjson.ParseBytes(raw)
	if r.Type != gjson.Number {
		return 0, false
	}
	if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(r.Raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
