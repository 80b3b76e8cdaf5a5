package common

import (
	"net/url"
	"strings"
	"time"
)

// IsValidURL accepts absolute http(s) URLs only.
func IsValidURL(rawurl string) bool {
	u, err := url.ParseRequestURI(rawurl)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && len(u.Host) > 0
}

func IsValidDate(value string, layout string) bool {
	_, err := time.Parse(layout, value)
	return err == nil
}
