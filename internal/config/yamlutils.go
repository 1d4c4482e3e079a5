package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/daimoniac/vaultscan/internal/errors"
)

// LoadYAMLDict reads path and returns its content as a raw mapping.
// A missing file yields (nil, nil) so callers can treat absence as an
// empty configuration. Unparsable content or a top-level value that is
// not a mapping yields a parse error carrying the filename.
func LoadYAMLDict(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewUnexpectedf("failed to read %s: %s", path, err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParsef("%s is not a valid YAML file:\n%s", path, err)
	}

	if doc == nil {
		// Empty file, same as an empty mapping
		return map[string]interface{}{}, nil
	}

	dct, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewParsef("%s should be a dictionary.", path)
	}
	return dct, nil
}

// SaveYAMLDict writes data to path as YAML with 2-space indentation,
// creating parent directories as needed. The write is a plain full-file
// overwrite; this is local developer tooling, not a service.
func SaveYAMLDict(data map[string]interface{}, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewUnexpectedf("failed to save config to %s:\n%s", path, err)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.NewUnexpectedf("failed to save config to %s:\n%s", path, err)
	}
	if err := enc.Close(); err != nil {
		return errors.NewUnexpectedf("failed to save config to %s:\n%s", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.NewUnexpectedf("failed to save config to %s:\n%s", path, err)
	}
	return nil
}
