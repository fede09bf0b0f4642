package pipeline

import "strings"

// DeriveFilename maps a candidate URL to its on-disk artifact name:
// <subdomain>-<slug>.mp3, taken from the URL's host and last path segment.
// The mapping is pure; distinct URLs may collide and this is not defended
// against.
func DeriveFilename(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 3 {
		return strings.ReplaceAll(url, "/", "-") + ".mp3"
	}
	host := strings.Split(parts[2], ".")[0]
	slug := parts[len(parts)-1]
	return host + "-" + slug + ".mp3"
}
