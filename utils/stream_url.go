package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"rtsp":  "554",
	"rtmp":  "1935",
	"rtmps": "443",
	"mms":   "1755",
	"mmsh":  "80",
}

// GetStreamScheme returns the lower-cased scheme of a stream URI.
func GetStreamScheme(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("missing scheme in %q", rawUrl)
	}
	return strings.ToLower(u.Scheme), nil
}

// GetStreamHostPort returns host:port for a stream URI, filling in the
// scheme's default port when the URI has none.
func GetStreamHostPort(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("missing host in %q", rawUrl)
	}

	port := u.Port()
	if port == "" {
		port = defaultPorts[strings.ToLower(u.Scheme)]
	}
	if port == "" {
		return "", fmt.Errorf("no port for %q", rawUrl)
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
