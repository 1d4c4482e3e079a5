package config

import (
	"testing"
	"time"

	"github.com/daimoniac/vaultscan/internal/types"
)

func TestValidatePolicyID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"GG_IAC_0001", true},
		{"GG_IAC_9999", true},
		{"GG_IAC_1", false},
		{"gg_iac_0001", false},
		{"GG_IAC_00010", false},
		{"GG_IAC_", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidatePolicyID(tt.id); got != tt.valid {
				t.Errorf("ValidatePolicyID(%q) = %v, want %v", tt.id, got, tt.valid)
			}
		})
	}
}

func TestIsGHSAValid(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"GHSA-abcd-1234-efgh", true},
		{"GHSA-AAAA-0000-zzzz", true},
		{"GHSA-abcd-1234", false},
		{"GHSA-abcd-1234-efgh-0000", false},
		{"ghsa-abcd-1234-efgh", false},
		{"GHSA-abc-1234-efgh", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsGHSAValid(tt.id); got != tt.valid {
				t.Errorf("IsGHSAValid(%q) = %v, want %v", tt.id, got, tt.valid)
			}
		})
	}
}

func TestAddIgnoredMatch(t *testing.T) {
	var cfg SecretConfig

	cfg.AddIgnoredMatch(types.IgnoredMatch{Match: "deadbeef"})
	cfg.AddIgnoredMatch(types.IgnoredMatch{Match: "deadbeef", Name: "aws key"})

	if len(cfg.IgnoredMatches) != 1 {
		t.Fatalf("expected a single entry per distinct match, got %d", len(cfg.IgnoredMatches))
	}
	if cfg.IgnoredMatches[0].Name != "aws key" {
		t.Errorf("expected the missing name to be backfilled, got %q", cfg.IgnoredMatches[0].Name)
	}

	// A name that is already set is never replaced
	cfg.AddIgnoredMatch(types.IgnoredMatch{Match: "deadbeef", Name: "other"})
	if cfg.IgnoredMatches[0].Name != "aws key" {
		t.Errorf("expected the first name to be retained, got %q", cfg.IgnoredMatches[0].Name)
	}

	cfg.AddIgnoredMatch(types.IgnoredMatch{Match: "cafebabe"})
	if len(cfg.IgnoredMatches) != 2 {
		t.Fatalf("expected a second entry for a new match, got %d", len(cfg.IgnoredMatches))
	}
}

func TestIaCSectionBareStringCoercion(t *testing.T) {
	cfg, err := FromConfigDict(map[string]interface{}{
		"iac": map[string]interface{}{
			"ignored_paths":    []interface{}{"infra/**", map[string]interface{}{"path": "modules/", "comment": "vendored"}},
			"ignored_policies": []interface{}{"GG_IAC_0001"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.IaC.IgnoredPaths) != 2 {
		t.Fatalf("expected 2 ignored paths, got %d", len(cfg.IaC.IgnoredPaths))
	}
	if cfg.IaC.IgnoredPaths[0].Path != "infra/**" {
		t.Errorf("bare string should coerce to a path entry, got %q", cfg.IaC.IgnoredPaths[0].Path)
	}
	if cfg.IaC.IgnoredPaths[1].Comment != "vendored" {
		t.Errorf("mapping entry comment lost: %q", cfg.IaC.IgnoredPaths[1].Comment)
	}
	if len(cfg.IaC.IgnoredPolicies) != 1 || cfg.IaC.IgnoredPolicies[0].Policy != "GG_IAC_0001" {
		t.Errorf("bare string should coerce to a policy entry, got %v", cfg.IaC.IgnoredPolicies)
	}
}

func TestIaCSectionRejectsBadPolicyID(t *testing.T) {
	for _, id := range []string{"GG_IAC_1", "gg_iac_0001"} {
		_, err := FromConfigDict(map[string]interface{}{
			"iac": map[string]interface{}{
				"ignored_policies": []interface{}{id},
			},
		})
		if err == nil {
			t.Errorf("expected policy ID %q to be rejected", id)
		}
	}
}

func TestSCASectionRejectsBadGHSAID(t *testing.T) {
	_, err := FromConfigDict(map[string]interface{}{
		"sca": map[string]interface{}{
			"ignored_vulnerabilities": []interface{}{
				map[string]interface{}{"identifier": "CVE-2024-1234", "path": "go.sum"},
			},
		},
	})
	if err == nil {
		t.Error("expected a non-GHSA identifier to be rejected")
	}
}

func TestSCASectionRequiresVulnerabilityPath(t *testing.T) {
	_, err := FromConfigDict(map[string]interface{}{
		"sca": map[string]interface{}{
			"ignored_vulnerabilities": []interface{}{
				map[string]interface{}{"identifier": "GHSA-abcd-1234-efgh"},
			},
		},
	})
	if err == nil {
		t.Error("expected a vulnerability without a path to be rejected")
	}
}

func TestExpiredRulesMovedToOutdatedLists(t *testing.T) {
	cfg, err := FromConfigDict(map[string]interface{}{
		"iac": map[string]interface{}{
			"ignored_paths": []interface{}{
				map[string]interface{}{"path": "old/", "until": "2000-01-01"},
				map[string]interface{}{"path": "current/", "until": "2999-01-01"},
			},
			"ignored_policies": []interface{}{
				map[string]interface{}{"policy": "GG_IAC_0002", "until": "2000-01-01"},
			},
		},
		"sca": map[string]interface{}{
			"ignored_vulnerabilities": []interface{}{
				map[string]interface{}{"identifier": "GHSA-abcd-1234-efgh", "path": "go.sum", "until": "2000-01-01"},
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.IaC.IgnoredPaths) != 1 || cfg.IaC.IgnoredPaths[0].Path != "current/" {
		t.Errorf("expected only the current path to stay active, got %v", cfg.IaC.IgnoredPaths)
	}
	if len(cfg.IaC.OutdatedIgnoredPaths) != 1 || cfg.IaC.OutdatedIgnoredPaths[0].Path != "old/" {
		t.Errorf("expected the expired path in the outdated list, got %v", cfg.IaC.OutdatedIgnoredPaths)
	}
	if len(cfg.IaC.IgnoredPolicies) != 0 || len(cfg.IaC.OutdatedIgnoredPolicies) != 1 {
		t.Errorf("expected the expired policy in the outdated list only")
	}
	if len(cfg.SCA.IgnoredVulnerabilities) != 0 {
		t.Errorf("expected the expired vulnerability to be dropped, got %v", cfg.SCA.IgnoredVulnerabilities)
	}
}

func TestOutdatedListsAreNotSerialized(t *testing.T) {
	until := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultUserConfig()
	cfg.IaC.OutdatedIgnoredPaths = []IgnoredPath{
		{Path: "old/", IgnoredElement: IgnoredElement{Until: &until}},
	}

	dct := cfg.ToConfigDict()
	if _, ok := dct["iac"]; ok {
		t.Errorf("outdated rules must never reach the persisted form, got %v", dct["iac"])
	}
}

func TestStringSetUnionDropsDuplicates(t *testing.T) {
	cfg, err := FromConfigDict(map[string]interface{}{
		"secret": map[string]interface{}{
			"ignored_paths": []interface{}{"a", "b", "a"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Secret.IgnoredPaths) != 2 {
		t.Errorf("expected set semantics for ignored paths, got %v", cfg.Secret.IgnoredPaths)
	}
}
