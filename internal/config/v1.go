package config

import (
	"github.com/daimoniac/vaultscan/internal/ui"
	"github.com/daimoniac/vaultscan/internal/urlutils"
)

// The v1 schema is closed: these are the only keys the migrator carries
// over. Anything else in a v1 file is dropped silently.
//
// All keys below are in their underscore form because loadConfigDict
// normalizes hyphens away before dispatching on the version.

// loadV1Dict transforms a v1 raw mapping into the v2 shape: the legacy
// api_url key becomes an instance URL, bare-string ignored matches become
// structured entries, and the secret-only keys move under the secret
// section. Deprecation notices for dropped options are appended to
// deprecations.
func loadV1Dict(data map[string]interface{}, deprecations *[]string) map[string]interface{} {
	// If data contains the old api_url key, turn it into an instance key,
	// but only if there is no explicit instance key to clobber
	if raw, ok := data["api_url"]; ok {
		delete(data, "api_url")
		if apiURL, isString := raw.(string); isString {
			if _, exists := data["instance"]; !exists {
				data["instance"] = urlutils.APIToDashboardURL(apiURL, true)
			} else {
				ui.Warningf("Ignoring the legacy 'api-url' key because 'instance' is already set.")
			}
		}
	}

	matchesIgnoreToDict(data)

	if _, ok := data["all_policies"]; ok {
		*deprecations = append(*deprecations,
			"The `all-policies` option has been deprecated and is now ignored.")
	}
	if _, ok := data["ignore_default_excludes"]; ok {
		*deprecations = append(*deprecations,
			"The `ignore-default-excludes` option has been deprecated and is now ignored.")
	}

	copyIfSet := func(dst map[string]interface{}, dstKey, srcKey string) {
		if value, ok := data[srcKey]; ok {
			dst[dstKey] = value
		}
	}

	secretDct := map[string]interface{}{}
	copyIfSet(secretDct, "ignored_matches", "matches_ignore")
	copyIfSet(secretDct, "show_secrets", "show_secrets")
	copyIfSet(secretDct, "ignored_detectors", "banlisted_detectors")
	copyIfSet(secretDct, "ignored_paths", "paths_ignore")

	dct := map[string]interface{}{
		"secret": secretDct,
	}
	copyIfSet(dct, "instance", "instance")
	copyIfSet(dct, "exit_zero", "exit_zero")
	copyIfSet(dct, "verbose", "verbose")
	copyIfSet(dct, "allow_self_signed", "allow_self_signed")
	copyIfSet(dct, "max_commits_for_hook", "max_commits_for_hook")

	return dct
}

// matchesIgnoreToDict converts the v1 shorthand of listing just a secret
// hash into the structured form v2 requires
func matchesIgnoreToDict(data map[string]interface{}) {
	raw, ok := data["matches_ignore"]
	if !ok {
		return
	}
	list, ok := raw.([]interface{})
	if !ok {
		return
	}
	for i, match := range list {
		if s, isString := match.(string); isString {
			list[i] = map[string]interface{}{"name": "", "match": s}
		}
	}
}
