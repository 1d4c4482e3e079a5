package config

import (
	"reflect"
	"strings"
)

// ReplaceInKeys rewrites oldChar to newChar in every mapping key of data,
// recursing through nested mappings and through sequences of mappings.
// Keys containing neither character are left untouched. data is modified
// in place.
//
// Configuration files use hyphenated keys on disk; in memory everything
// is underscored. This is the bridge between the two forms.
func ReplaceInKeys(data interface{}, oldChar, newChar string) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			ReplaceInKeys(value, oldChar, newChar)
			if strings.Contains(key, oldChar) {
				delete(v, key)
				v[strings.ReplaceAll(key, oldChar, newChar)] = value
			}
		}
	case []interface{}:
		for _, element := range v {
			ReplaceInKeys(element, oldChar, newChar)
		}
	}
}

// DeepMerge merges src into dst. Lists are appended to the destination
// list, nested mappings are merged recursively, and any other value
// overwrites the destination. Nil values in src are skipped.
//
// This is what gives the global/local layering its semantics: the local
// layer appends to collections but overrides scalars.
func DeepMerge(dst, src map[string]interface{}) {
	for key, value := range src {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case []interface{}:
			existing, _ := dst[key].([]interface{})
			dst[key] = append(existing, v...)
		case map[string]interface{}:
			existing, ok := dst[key].(map[string]interface{})
			if !ok {
				existing = map[string]interface{}{}
				dst[key] = existing
			}
			DeepMerge(existing, v)
		default:
			dst[key] = value
		}
	}
}

// RemoveCommonItems returns a copy of dct containing only the entries
// whose value differs from reference at the same key. Nested mappings are
// diffed recursively and dropped entirely when the recursive diff comes
// back empty. Used on save so only customized settings reach the disk.
func RemoveCommonItems(dct, reference map[string]interface{}) map[string]interface{} {
	result := map[string]interface{}{}
	for key, value := range dct {
		referenceValue := reference[key]

		if nested, ok := value.(map[string]interface{}); ok {
			referenceNested, _ := referenceValue.(map[string]interface{})
			diff := RemoveCommonItems(nested, referenceNested)
			if len(diff) == 0 {
				continue
			}
			result[key] = diff
			continue
		}

		if reflect.DeepEqual(value, referenceValue) {
			continue
		}
		result[key] = value
	}
	return result
}
