package config

import (
	"fmt"
	"time"

	"github.com/daimoniac/vaultscan/internal/ui"
)

// IgnoredElement is the shared shape of a configuration entry that can be
// ignored temporarily: an optional comment explaining the rule and an
// optional expiry timestamp. Concrete ignore-rule kinds embed it.
type IgnoredElement struct {
	Comment string
	Until   *time.Time
}

// IsExpired reports whether the element's until date has passed.
// An element with no until date never expires.
func (e IgnoredElement) IsExpired(now time.Time) bool {
	return e.Until != nil && !e.Until.After(now)
}

// ExpiresAt returns the expiry timestamp, nil when the rule is permanent
func (e IgnoredElement) ExpiresAt() *time.Time {
	return e.Until
}

// appendTo adds the element's persisted fields to a mapping, omitting
// whatever is unset
func (e IgnoredElement) appendTo(m map[string]interface{}) {
	if e.Comment != "" {
		m["comment"] = e.Comment
	}
	if e.Until != nil {
		m["until"] = e.Until.UTC().Format(time.RFC3339)
	}
}

// expiring is satisfied by every ignore-rule kind embedding IgnoredElement
// together with a kind-specific label.
type expiring interface {
	IsExpired(now time.Time) bool
	ExpiresAt() *time.Time
	Label() string
}

// removeExpiredElements partitions lst into the elements still active at
// now and the ones whose until date has passed. Both slices preserve the
// original relative order and no element appears in both.
func removeExpiredElements[T expiring](lst []T, now time.Time) (active, expired []T) {
	for _, element := range lst {
		if element.IsExpired(now) {
			expired = append(expired, element)
		} else {
			active = append(active, element)
		}
	}
	return active, expired
}

// reportExpiredElements warns the user once per expired rule. Expired
// rules are diagnostics, never errors: loading continues without them.
func reportExpiredElements[T expiring](expired []T) {
	for _, element := range expired {
		ui.Warningf("%s has an expired 'until' date (%s), please update your configuration file.",
			element.Label(), element.ExpiresAt().UTC().Format("2006-01-02 15:04:05 MST"))
	}
}

// parseUntil normalizes the raw until value to UTC. It accepts a bare
// date (YYYY-MM-DD, meaning midnight UTC), a full RFC 3339 timestamp, or
// a timestamp the YAML parser already resolved.
func parseUntil(raw interface{}) (*time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		u := v.UTC()
		return &u, nil
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			u := t.UTC()
			return &u, nil
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			u := t.UTC()
			return &u, nil
		}
		return nil, fmt.Errorf("expected a date (YYYY-MM-DD) or a timestamp, got %q", v)
	default:
		return nil, fmt.Errorf("expected a date (YYYY-MM-DD) or a timestamp, got %v", raw)
	}
}
