package config

import (
	"fmt"
	"strings"

	"github.com/daimoniac/vaultscan/internal/errors"
)

// validationErrors accumulates schema violations with their field paths
// so a single load reports every problem at once.
type validationErrors struct {
	errs []string
}

func (v *validationErrors) addf(path, format string, args ...interface{}) {
	v.errs = append(v.errs, fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)))
}

// asError formats the accumulated violations into one parse error, or
// returns nil when validation passed
func (v *validationErrors) asError() error {
	if len(v.errs) == 0 {
		return nil
	}
	return errors.NewParsef("invalid configuration:\n  %s", strings.Join(v.errs, "\n  "))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// The decode helpers read one optional key each. A missing or null key
// leaves the destination default untouched; a wrong type records a
// violation. Unknown keys in the mapping are ignored.

func (v *validationErrors) decodeBool(m map[string]interface{}, path, key string, dst *bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return
	}
	b, ok := raw.(bool)
	if !ok {
		v.addf(joinPath(path, key), "expected a boolean, got %v", raw)
		return
	}
	*dst = b
}

func (v *validationErrors) decodeInt(m map[string]interface{}, path, key string, dst *int) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return
	}
	n, ok := raw.(int)
	if !ok {
		v.addf(joinPath(path, key), "expected an integer, got %v", raw)
		return
	}
	*dst = n
}

func (v *validationErrors) decodeString(m map[string]interface{}, path, key string, dst *string) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return
	}
	s, ok := raw.(string)
	if !ok {
		v.addf(joinPath(path, key), "expected a string, got %v", raw)
		return
	}
	*dst = s
}

// decodeStringSet reads a sequence of strings into dst with set
// semantics: duplicates are dropped, first-seen order is kept.
func (v *validationErrors) decodeStringSet(m map[string]interface{}, path, key string, dst *[]string) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return
	}
	list, ok := raw.([]interface{})
	if !ok {
		v.addf(joinPath(path, key), "expected a list of strings, got %v", raw)
		return
	}
	for i, element := range list {
		s, ok := element.(string)
		if !ok {
			v.addf(fmt.Sprintf("%s[%d]", joinPath(path, key), i), "expected a string, got %v", element)
			continue
		}
		*dst = appendUnique(*dst, s)
	}
}

// requiredString reads a mandatory string key, recording a violation when
// it is missing or of the wrong type
func (v *validationErrors) requiredString(m map[string]interface{}, path, key string) (string, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		v.addf(joinPath(path, key), "missing required key")
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		v.addf(joinPath(path, key), "expected a string, got %v", raw)
		return "", false
	}
	return s, true
}

// decodeElement reads the shared comment/until fields of an ignore rule
func (v *validationErrors) decodeElement(m map[string]interface{}, path string) (IgnoredElement, bool) {
	var element IgnoredElement
	ok := true

	if raw, present := m["comment"]; present && raw != nil {
		if s, isString := raw.(string); isString {
			element.Comment = s
		} else {
			v.addf(joinPath(path, "comment"), "expected a string, got %v", raw)
			ok = false
		}
	}

	if raw, present := m["until"]; present && raw != nil {
		until, err := parseUntil(raw)
		if err != nil {
			v.addf(joinPath(path, "until"), "%s", err)
			ok = false
		} else {
			element.Until = until
		}
	}

	return element, ok
}

func appendUnique(lst []string, value string) []string {
	for _, existing := range lst {
		if existing == value {
			return lst
		}
	}
	return append(lst, value)
}

func toAnyList(lst []string) []interface{} {
	result := make([]interface{}, 0, len(lst))
	for _, s := range lst {
		result = append(result, s)
	}
	return result
}
