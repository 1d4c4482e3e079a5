package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/daimoniac/vaultscan/internal/types"
)

// DefaultMinimumSeverity is the severity threshold applied when a
// section does not set one
const DefaultMinimumSeverity = "LOW"

var (
	policyIDPattern = regexp.MustCompile(`^GG_IAC_[0-9]{4}$`)
	ghsaIDPattern   = regexp.MustCompile(`^GHSA(-[a-zA-Z0-9]{4}){3}$`)
)

// ValidatePolicyID reports whether id is a well-formed IaC policy identifier
func ValidatePolicyID(id string) bool {
	return policyIDPattern.MatchString(id)
}

// IsGHSAValid reports whether id is a well-formed GHSA vulnerability identifier
func IsGHSAValid(id string) bool {
	return ghsaIDPattern.MatchString(id)
}

// IgnoredPath is a path excluded from IaC scanning, optionally time-boxed
type IgnoredPath struct {
	IgnoredElement
	Path string
}

func (p IgnoredPath) Label() string {
	return "Path " + p.Path
}

func (p IgnoredPath) toDict() map[string]interface{} {
	m := map[string]interface{}{"path": p.Path}
	p.IgnoredElement.appendTo(m)
	return m
}

// IgnoredPolicy is an IaC policy excluded from findings, optionally time-boxed
type IgnoredPolicy struct {
	IgnoredElement
	Policy string
}

func (p IgnoredPolicy) Label() string {
	return "Policy " + p.Policy
}

func (p IgnoredPolicy) toDict() map[string]interface{} {
	m := map[string]interface{}{"policy": p.Policy}
	p.IgnoredElement.appendTo(m)
	return m
}

// IgnoredVulnerability ignores all occurrences of one vulnerability in
// one dependency file, optionally time-boxed
type IgnoredVulnerability struct {
	IgnoredElement
	Identifier string
	Path       string
}

func (v IgnoredVulnerability) Label() string {
	return "Vulnerability " + v.Identifier
}

func (v IgnoredVulnerability) toDict() map[string]interface{} {
	m := map[string]interface{}{
		"identifier": v.Identifier,
		"path":       v.Path,
	}
	v.IgnoredElement.appendTo(m)
	return m
}

// SecretConfig holds all user-defined secret-scanning settings
type SecretConfig struct {
	ShowSecrets        bool
	IgnoredDetectors   []string
	IgnoredMatches     []types.IgnoredMatch
	IgnoredPaths       []string
	IgnoreKnownSecrets bool
}

// AddIgnoredMatch adds secret to the ignored matches, keeping at most one
// entry per distinct match value. Adding a duplicate only backfills a
// missing name on the existing entry.
func (c *SecretConfig) AddIgnoredMatch(secret types.IgnoredMatch) {
	for i := range c.IgnoredMatches {
		if c.IgnoredMatches[i].Match == secret.Match {
			// take the opportunity to name the ignored match
			if c.IgnoredMatches[i].Name == "" {
				c.IgnoredMatches[i].Name = secret.Name
			}
			return
		}
	}
	c.IgnoredMatches = append(c.IgnoredMatches, secret)
}

func (c SecretConfig) toDict() map[string]interface{} {
	matches := make([]interface{}, 0, len(c.IgnoredMatches))
	for _, m := range c.IgnoredMatches {
		matches = append(matches, m.ToDict())
	}
	return map[string]interface{}{
		"show_secrets":         c.ShowSecrets,
		"ignored_detectors":    toAnyList(c.IgnoredDetectors),
		"ignored_matches":      matches,
		"ignored_paths":        toAnyList(c.IgnoredPaths),
		"ignore_known_secrets": c.IgnoreKnownSecrets,
	}
}

// IaCConfig holds the IaC scanning settings from the configuration files
type IaCConfig struct {
	IgnoredPaths    []IgnoredPath
	IgnoredPolicies []IgnoredPolicy
	MinimumSeverity string

	// Expired rules found at load time are kept here for display but are
	// never scanned against and never serialized back.
	OutdatedIgnoredPaths    []IgnoredPath
	OutdatedIgnoredPolicies []IgnoredPolicy
}

// DefaultIaCConfig returns an IaCConfig with all defaults applied
func DefaultIaCConfig() IaCConfig {
	return IaCConfig{MinimumSeverity: DefaultMinimumSeverity}
}

func (c IaCConfig) toDict() map[string]interface{} {
	paths := make([]interface{}, 0, len(c.IgnoredPaths))
	for _, p := range c.IgnoredPaths {
		paths = append(paths, p.toDict())
	}
	policies := make([]interface{}, 0, len(c.IgnoredPolicies))
	for _, p := range c.IgnoredPolicies {
		policies = append(policies, p.toDict())
	}
	// Outdated lists are derived diagnostics, excluded from serialization
	return map[string]interface{}{
		"ignored_paths":    paths,
		"ignored_policies": policies,
		"minimum_severity": c.MinimumSeverity,
	}
}

// SCAConfig holds the SCA scanning settings from the configuration files
type SCAConfig struct {
	IgnoredPaths           []string
	MinimumSeverity        string
	IgnoredVulnerabilities []IgnoredVulnerability
	IgnoreNotFixable       bool
	IgnoreFixable          bool
}

// DefaultSCAConfig returns a SCAConfig with all defaults applied
func DefaultSCAConfig() SCAConfig {
	return SCAConfig{MinimumSeverity: DefaultMinimumSeverity}
}

func (c SCAConfig) toDict() map[string]interface{} {
	vulns := make([]interface{}, 0, len(c.IgnoredVulnerabilities))
	for _, v := range c.IgnoredVulnerabilities {
		vulns = append(vulns, v.toDict())
	}
	return map[string]interface{}{
		"ignored_paths":           toAnyList(c.IgnoredPaths),
		"minimum_severity":        c.MinimumSeverity,
		"ignored_vulnerabilities": vulns,
		"ignore_not_fixable":      c.IgnoreNotFixable,
		"ignore_fixable":          c.IgnoreFixable,
	}
}

// secretConfigFromDict validates and builds the secret section. m may be
// nil when the section is absent.
func secretConfigFromDict(v *validationErrors, path string, m map[string]interface{}) SecretConfig {
	cfg := SecretConfig{}
	if m == nil {
		return cfg
	}

	v.decodeBool(m, path, "show_secrets", &cfg.ShowSecrets)
	v.decodeStringSet(m, path, "ignored_detectors", &cfg.IgnoredDetectors)
	v.decodeStringSet(m, path, "ignored_paths", &cfg.IgnoredPaths)
	v.decodeBool(m, path, "ignore_known_secrets", &cfg.IgnoreKnownSecrets)

	if raw, ok := m["ignored_matches"]; ok && raw != nil {
		listPath := joinPath(path, "ignored_matches")
		list, ok := raw.([]interface{})
		if !ok {
			v.addf(listPath, "expected a list, got %v", raw)
			return cfg
		}
		for i, entry := range list {
			entryPath := fmt.Sprintf("%s[%d]", listPath, i)
			entryMap, ok := entry.(map[string]interface{})
			if !ok {
				v.addf(entryPath, "expected a mapping, got %v", entry)
				continue
			}
			match, ok := decodeIgnoredMatch(v, entryPath, entryMap)
			if ok {
				cfg.IgnoredMatches = append(cfg.IgnoredMatches, match)
			}
		}
	}
	return cfg
}

// decodeIgnoredMatch decodes one ignored-match entry of the vendor model
// shape: a required match value and an optional name
func decodeIgnoredMatch(v *validationErrors, path string, m map[string]interface{}) (types.IgnoredMatch, bool) {
	match, ok := v.requiredString(m, path, "match")
	if !ok {
		return types.IgnoredMatch{}, false
	}
	var name string
	v.decodeString(m, path, "name", &name)
	return types.IgnoredMatch{Name: name, Match: match}, true
}

// iacConfigFromDict validates and builds the IaC section, then runs the
// expiry sweep on both rule lists
func iacConfigFromDict(v *validationErrors, path string, m map[string]interface{}, now time.Time) IaCConfig {
	cfg := DefaultIaCConfig()
	if m == nil {
		return cfg
	}

	v.decodeString(m, path, "minimum_severity", &cfg.MinimumSeverity)

	if raw, ok := m["ignored_paths"]; ok && raw != nil {
		listPath := joinPath(path, "ignored_paths")
		if list, ok := raw.([]interface{}); ok {
			for i, entry := range list {
				if p, ok := decodeIgnoredPath(v, fmt.Sprintf("%s[%d]", listPath, i), entry); ok {
					cfg.IgnoredPaths = append(cfg.IgnoredPaths, p)
				}
			}
		} else {
			v.addf(listPath, "expected a list, got %v", raw)
		}
	}

	if raw, ok := m["ignored_policies"]; ok && raw != nil {
		listPath := joinPath(path, "ignored_policies")
		if list, ok := raw.([]interface{}); ok {
			for i, entry := range list {
				if p, ok := decodeIgnoredPolicy(v, fmt.Sprintf("%s[%d]", listPath, i), entry); ok {
					cfg.IgnoredPolicies = append(cfg.IgnoredPolicies, p)
				}
			}
		} else {
			v.addf(listPath, "expected a list, got %v", raw)
		}
	}

	cfg.IgnoredPaths, cfg.OutdatedIgnoredPaths = removeExpiredElements(cfg.IgnoredPaths, now)
	reportExpiredElements(cfg.OutdatedIgnoredPaths)

	cfg.IgnoredPolicies, cfg.OutdatedIgnoredPolicies = removeExpiredElements(cfg.IgnoredPolicies, now)
	reportExpiredElements(cfg.OutdatedIgnoredPolicies)

	return cfg
}

// scaConfigFromDict validates and builds the SCA section. Expired
// vulnerability rules are reported and dropped.
func scaConfigFromDict(v *validationErrors, path string, m map[string]interface{}, now time.Time) SCAConfig {
	cfg := DefaultSCAConfig()
	if m == nil {
		return cfg
	}

	v.decodeStringSet(m, path, "ignored_paths", &cfg.IgnoredPaths)
	v.decodeString(m, path, "minimum_severity", &cfg.MinimumSeverity)
	v.decodeBool(m, path, "ignore_not_fixable", &cfg.IgnoreNotFixable)
	v.decodeBool(m, path, "ignore_fixable", &cfg.IgnoreFixable)

	if raw, ok := m["ignored_vulnerabilities"]; ok && raw != nil {
		listPath := joinPath(path, "ignored_vulnerabilities")
		if list, ok := raw.([]interface{}); ok {
			for i, entry := range list {
				if vuln, ok := decodeIgnoredVulnerability(v, fmt.Sprintf("%s[%d]", listPath, i), entry); ok {
					cfg.IgnoredVulnerabilities = append(cfg.IgnoredVulnerabilities, vuln)
				}
			}
		} else {
			v.addf(listPath, "expected a list, got %v", raw)
		}
	}

	var expired []IgnoredVulnerability
	cfg.IgnoredVulnerabilities, expired = removeExpiredElements(cfg.IgnoredVulnerabilities, now)
	reportExpiredElements(expired)

	return cfg
}

// decodeIgnoredPath accepts either a bare path string or a full mapping
func decodeIgnoredPath(v *validationErrors, path string, raw interface{}) (IgnoredPath, bool) {
	switch entry := raw.(type) {
	case string:
		return IgnoredPath{Path: entry}, true
	case map[string]interface{}:
		element, ok := v.decodeElement(entry, path)
		p, pathOK := v.requiredString(entry, path, "path")
		if !ok || !pathOK {
			return IgnoredPath{}, false
		}
		return IgnoredPath{IgnoredElement: element, Path: p}, true
	default:
		v.addf(path, "expected a string or a mapping, got %v", raw)
		return IgnoredPath{}, false
	}
}

// decodeIgnoredPolicy accepts either a bare policy ID or a full mapping,
// and enforces the policy ID pattern either way
func decodeIgnoredPolicy(v *validationErrors, path string, raw interface{}) (IgnoredPolicy, bool) {
	var policy IgnoredPolicy
	switch entry := raw.(type) {
	case string:
		policy = IgnoredPolicy{Policy: entry}
	case map[string]interface{}:
		element, ok := v.decodeElement(entry, path)
		id, idOK := v.requiredString(entry, path, "policy")
		if !ok || !idOK {
			return IgnoredPolicy{}, false
		}
		policy = IgnoredPolicy{IgnoredElement: element, Policy: id}
	default:
		v.addf(path, "expected a string or a mapping, got %v", raw)
		return IgnoredPolicy{}, false
	}

	if !ValidatePolicyID(policy.Policy) {
		v.addf(joinPath(path, "policy"), "policy ID %q does not match the pattern %q", policy.Policy, policyIDPattern)
		return IgnoredPolicy{}, false
	}
	return policy, true
}

// decodeIgnoredVulnerability requires both the GHSA identifier and the
// dependency file path, so no bare-string form exists
func decodeIgnoredVulnerability(v *validationErrors, path string, raw interface{}) (IgnoredVulnerability, bool) {
	entry, ok := raw.(map[string]interface{})
	if !ok {
		v.addf(path, "expected a mapping, got %v", raw)
		return IgnoredVulnerability{}, false
	}

	element, elementOK := v.decodeElement(entry, path)
	identifier, idOK := v.requiredString(entry, path, "identifier")
	filePath, pathOK := v.requiredString(entry, path, "path")
	if !elementOK || !idOK || !pathOK {
		return IgnoredVulnerability{}, false
	}

	if !IsGHSAValid(identifier) {
		v.addf(joinPath(path, "identifier"), "GHSA id %q does not match the pattern %q", identifier, ghsaIDPattern)
		return IgnoredVulnerability{}, false
	}

	return IgnoredVulnerability{IgnoredElement: element, Identifier: identifier, Path: filePath}, true
}
