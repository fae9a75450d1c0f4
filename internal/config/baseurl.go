package config

import "strings"

const (
	backendPort = "8000"
	apiPath     = "/api"

	// LocalAPIURL is the backend address on a developer machine.
	LocalAPIURL = "http://localhost:" + backendPort + apiPath
)

// Environment describes where the console is running.
type Environment struct {
	Development bool
	Override    string
	// Protocol and Hostname are those the console is served from,
	// e.g. "https:" and "admin.example.com".
	Protocol string
	Hostname string
}

// ResolveBaseURL picks the backend API URL, in priority order:
// development build, explicit override, same host on the backend port,
// loopback.
func ResolveBaseURL(env Environment) string {
	if env.Development {
		return LocalAPIURL
	}

	if override := strings.TrimSpace(env.Override); override != "" {
		return override
	}

	host := strings.TrimSpace(env.Hostname)
	if host == "" || isLoopback(host) {
		return LocalAPIURL
	}

	return normalizeProtocol(env.Protocol) + "//" + host + ":" + backendPort + apiPath
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1"
}

// normalizeProtocol accepts "https", "https:" and "https://".
func normalizeProtocol(p string) string {
	p = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(p)), "//")
	p = strings.TrimSuffix(p, ":")
	if p == "" {
		p = "http"
	}
	return p + ":"
}
