// Package config loads, validates, migrates and persists the layered
// vaultscan configuration files.
//
// Two layers exist: a global file in the user's home directory and a
// local file in the current repository. Both are optional. The local
// layer appends to the global layer's collections and overrides its
// scalars. Two on-disk schema generations are supported: v1 files are
// migrated to the v2 shape on load and the user is told to run
// `vaultscan config migrate`.
//
// The load pipeline is a sequence of pure stages: raw mapping →
// key-normalize → version-migrate → merge layers → per-field validate →
// expiry sweep → typed config.
package config

import (
	"log/slog"
	"time"

	"github.com/daimoniac/vaultscan/internal/errors"
)

// CurrentConfigVersion is the schema version Save stamps on every file
const CurrentConfigVersion = 2

const ignoreKnownSecretsKey = "ignore_known_secrets"

// UserConfig holds all vaultscan settings defined by the user in the
// .vaultscan.yaml files (local and global).
type UserConfig struct {
	Instance          string
	ExitZero          bool
	Verbose           bool
	AllowSelfSigned   bool
	MaxCommitsForHook int
	Debug             bool

	IaC    IaCConfig
	SCA    SCAConfig
	Secret SecretConfig

	// Deprecated syntax found while loading is collected here and shown
	// when the command finishes, not during the load itself; `config
	// migrate` clears the list so migrating never echoes the notices.
	// Never persisted.
	DeprecationMessages []string
}

// DefaultUserConfig returns a UserConfig with every default applied
func DefaultUserConfig() UserConfig {
	return UserConfig{
		MaxCommitsForHook: 50,
		IaC:               DefaultIaCConfig(),
		SCA:               DefaultSCAConfig(),
		Secret:            SecretConfig{},
	}
}

// Load builds the effective UserConfig and returns it together with the
// path where updates should be saved.
//
// With an explicit configPath only that file is read; a missing file is
// treated as an empty current-version config. Otherwise the global and
// local files are located, loaded, version-migrated and deep-merged
// (local collections append, local scalars override) before validation.
func Load(configPath string) (*UserConfig, string, error) {
	var deprecations []string

	if configPath != "" {
		slog.Debug("loading custom config", "path", configPath)
		dct, err := loadConfigDict(configPath, &deprecations)
		if err != nil {
			return nil, "", err
		}
		cfg, err := FromConfigDict(dct)
		if err != nil {
			return nil, "", err
		}
		cfg.DeprecationMessages = deprecations
		return cfg, configPath, nil
	}

	merged := map[string]interface{}{}

	if globalPath := FindGlobalConfigPath(); globalPath != "" {
		dct, err := loadConfigDict(globalPath, &deprecations)
		if err != nil {
			return nil, "", err
		}
		DeepMerge(merged, dct)
		slog.Debug("loaded global config", "path", globalPath)
	} else {
		slog.Debug("no global config")
	}

	savePath := ""
	if localPath := FindLocalConfigPath(); localPath != "" {
		dct, err := loadConfigDict(localPath, &deprecations)
		if err != nil {
			return nil, "", err
		}
		DeepMerge(merged, dct)
		savePath = localPath
		slog.Debug("loaded local config", "path", localPath)
	} else {
		slog.Debug("no local config")
	}

	cfg, err := FromConfigDict(merged)
	if err != nil {
		return nil, "", err
	}
	cfg.DeprecationMessages = deprecations

	if savePath == "" {
		savePath = DefaultLocalConfigPath
	}
	return cfg, savePath, nil
}

// loadConfigDict loads one configuration file as a raw mapping in the
// current schema shape: keys underscore-normalized, version key consumed,
// v1 content migrated. Deprecation notices about the file are appended to
// deprecations.
func loadConfigDict(path string, deprecations *[]string) (map[string]interface{}, error) {
	dct, err := LoadYAMLDict(path)
	if err != nil {
		return nil, err
	}
	if len(dct) == 0 {
		// A missing or empty file is an up-to-date empty config, no
		// deprecation notice fires for it
		dct = map[string]interface{}{"version": CurrentConfigVersion}
	}

	ReplaceInKeys(dct, "-", "_")

	version := 1
	if raw, ok := dct["version"]; ok {
		delete(dct, "version")
		n, isInt := raw.(int)
		if !isInt {
			return nil, errors.NewUnexpectedf("don't know how to load config version %v", raw)
		}
		version = n
	}

	switch version {
	case CurrentConfigVersion:
		fixIgnoreKnownSecrets(dct)
	case 1:
		*deprecations = append(*deprecations,
			path+" uses a deprecated configuration file format."+
				" Run `vaultscan config migrate` to migrate it to the latest version.")
		dct = loadV1Dict(dct, deprecations)
	default:
		return nil, errors.NewUnexpectedf("don't know how to load config version %d", version)
	}
	return dct, nil
}

// fixIgnoreKnownSecrets repairs a historical mistake: ignore-known-secrets
// is a secret-specific key but used to be stored at the root. A root-level
// value moves under the secret section unless the section already defines
// the key, in which case the explicit value wins.
func fixIgnoreKnownSecrets(data map[string]interface{}) {
	var value interface{}
	found := false
	for _, key := range []string{ignoreKnownSecretsKey, "ignore-known-secrets"} {
		if raw, ok := data[key]; ok {
			delete(data, key)
			if raw != nil && !found {
				value = raw
				found = true
			}
		}
	}
	if !found {
		return
	}

	secretDct, ok := data["secret"].(map[string]interface{})
	if !ok {
		secretDct = map[string]interface{}{}
		data["secret"] = secretDct
	}
	if _, exists := secretDct[ignoreKnownSecretsKey]; exists {
		return
	}
	if _, exists := secretDct["ignore-known-secrets"]; exists {
		return
	}
	secretDct[ignoreKnownSecretsKey] = value
}

// FromConfigDict validates a raw mapping in the current schema shape into
// a UserConfig. All schema violations are reported in one parse error.
func FromConfigDict(data map[string]interface{}) (*UserConfig, error) {
	v := &validationErrors{}
	now := time.Now().UTC()
	cfg := DefaultUserConfig()

	v.decodeString(data, "", "instance", &cfg.Instance)
	v.decodeBool(data, "", "exit_zero", &cfg.ExitZero)
	v.decodeBool(data, "", "verbose", &cfg.Verbose)
	v.decodeBool(data, "", "allow_self_signed", &cfg.AllowSelfSigned)
	v.decodeInt(data, "", "max_commits_for_hook", &cfg.MaxCommitsForHook)
	v.decodeBool(data, "", "debug", &cfg.Debug)

	cfg.IaC = iacConfigFromDict(v, "iac", sectionDict(v, data, "iac"), now)
	cfg.SCA = scaConfigFromDict(v, "sca", sectionDict(v, data, "sca"), now)
	cfg.Secret = secretConfigFromDict(v, "secret", sectionDict(v, data, "secret"))

	if err := v.asError(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// sectionDict extracts one section mapping, tolerating absence
func sectionDict(v *validationErrors, data map[string]interface{}, key string) map[string]interface{} {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil
	}
	m, isMap := raw.(map[string]interface{})
	if !isMap {
		v.addf(key, "expected a mapping, got %v", raw)
		return nil
	}
	return m
}

// ToDict serializes the full configuration, defaults included, with
// underscore keys. Transient fields (deprecation messages, outdated
// rules) are excluded.
func (c *UserConfig) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"instance":             c.Instance,
		"exit_zero":            c.ExitZero,
		"verbose":              c.Verbose,
		"allow_self_signed":    c.AllowSelfSigned,
		"max_commits_for_hook": c.MaxCommitsForHook,
		"debug":                c.Debug,
		"iac":                  c.IaC.toDict(),
		"sca":                  c.SCA.toDict(),
		"secret":               c.Secret.toDict(),
	}
}

// ToConfigDict serializes the configuration into the form written to
// disk: only non-default values, a version stamp, hyphenated keys.
func (c *UserConfig) ToConfigDict() map[string]interface{} {
	dct := c.ToDict()
	defaults := DefaultUserConfig()

	dct = RemoveCommonItems(dct, defaults.ToDict())
	dct["version"] = CurrentConfigVersion

	ReplaceInKeys(dct, "_", "-")
	return dct
}

// Save writes the configuration to path, persisting only the settings
// that differ from the defaults
func (c *UserConfig) Save(path string) error {
	return SaveYAMLDict(c.ToConfigDict(), path)
}
