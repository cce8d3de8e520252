package utils

import (
	"os"
)

const defaultUserAgent = "IPTV Smarters/1.0.3 (iPad; iOS 16.6.1; Scale/2.00)"

func GetEnv(env string) string {
	switch env {
	case "USER_AGENT":
		// Set the custom User-Agent header
		userAgent, userAgentExists := os.LookupEnv("USER_AGENT")
		if !userAgentExists || userAgent == "" {
			userAgent = defaultUserAgent
		}
		return userAgent
	default:
		return os.Getenv(env)
	}
}
