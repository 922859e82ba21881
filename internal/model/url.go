package model

import (
	"net/url"
	"regexp"
	"strings"
)

var httpURLPattern = regexp.MustCompile(`^https?://.+`)

// NormalizeURL decodes a possibly percent-encoded URL and validates it as an
// absolute HTTP or HTTPS URL. Bookmarklets pass the target URL encoded, so a
// value containing '%' is decoded first; if decoding fails the raw value is
// kept. Returns a ValidationError for anything that is not http(s).
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", &ValidationError{Field: "url", Reason: "url is required"}
	}

	if strings.Contains(u, "%") {
		if decoded, err := url.QueryUnescape(u); err == nil {
			u = decoded
		}
	}

	if !httpURLPattern.MatchString(u) {
		return "", &ValidationError{Field: "url", Reason: "url must start with http:// or https://"}
	}

	if _, err := url.Parse(u); err != nil {
		return "", &ValidationError{Field: "url", Reason: "url is not parseable"}
	}

	return u, nil
}

// ExtractDomain returns the host of the given URL. Extraction failure falls
// back to the raw URL string so grouping and filtering stay total functions.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty tags.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
