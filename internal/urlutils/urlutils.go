// Package urlutils converts between the API and dashboard URL forms of a
// vaultscan backend instance.
package urlutils

import (
	"net/url"
	"strings"

	"github.com/daimoniac/vaultscan/internal/ui"
)

// APIToDashboardURL converts an API endpoint URL into the matching
// dashboard URL, which is the canonical way to identify an instance.
// SaaS-style URLs swap the "api." host prefix for "dashboard."; self-hosted
// URLs drop the trailing "/exposed" path segment. A URL that matches
// neither form is returned unchanged, with a warning when warn is set.
func APIToDashboardURL(apiURL string, warn bool) string {
	apiURL = RemoveTrailingSlash(apiURL)

	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" {
		if warn {
			ui.Warningf("Unable to convert API URL %q to a dashboard URL, keeping it as is.", apiURL)
		}
		return apiURL
	}

	if strings.HasPrefix(parsed.Host, "api.") {
		parsed.Host = "dashboard." + strings.TrimPrefix(parsed.Host, "api.")
		parsed.Path = strings.TrimSuffix(parsed.Path, "/exposed")
		return RemoveTrailingSlash(parsed.String())
	}

	if strings.HasSuffix(parsed.Path, "/exposed") {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/exposed")
		return RemoveTrailingSlash(parsed.String())
	}

	if warn {
		ui.Warningf("Unable to convert API URL %q to a dashboard URL, keeping it as is.", apiURL)
	}
	return apiURL
}

// RemoveTrailingSlash strips a single trailing slash from url
func RemoveTrailingSlash(url string) string {
	return strings.TrimSuffix(url, "/")
}
