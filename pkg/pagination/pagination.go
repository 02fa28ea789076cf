package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// FromOffset builds params from a raw offset/limit pair. Negative offsets
// clamp to zero.
func FromOffset(offset, limit int) Params {
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: NormalizeLimit(limit), Offset: offset}
}

// FromPage builds params from a 1-based page number.
func FromPage(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	limit = NormalizeLimit(limit)
	return Params{Limit: limit, Offset: (page - 1) * limit}
}

// ParseInt reads an optional non-negative integer query value. Empty input
// yields fallback.
func ParseInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("value %d must not be negative", v)
	}
	return v, nil
}
