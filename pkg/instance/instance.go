package instance

import "os"

// GetID returns the process instance identifier used to tag log lines.
// INVENTORY_INSTANCE_ID wins, then the hostname, then a fixed fallback.
func GetID() string {
	if id := os.Getenv("INVENTORY_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
