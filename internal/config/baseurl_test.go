package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseURL(t *testing.T) {
	testCases := []struct {
		name     string
		env      Environment
		expected string
	}{
		{
			name:     "development wins over everything",
			env:      Environment{Development: true, Override: "https://api.example.com", Protocol: "https:", Hostname: "admin.example.com"},
			expected: "http://localhost:8000/api",
		},
		{
			name:     "override",
			env:      Environment{Override: "https://api.example.com/api", Protocol: "https:", Hostname: "admin.example.com"},
			expected: "https://api.example.com/api",
		},
		{
			name:     "same host fallback",
			env:      Environment{Protocol: "https:", Hostname: "192.168.1.20"},
			expected: "https://192.168.1.20:8000/api",
		},
		{
			name:     "same host fallback accepts bare scheme",
			env:      Environment{Protocol: "http", Hostname: "barberia.local"},
			expected: "http://barberia.local:8000/api",
		},
		{
			name:     "localhost",
			env:      Environment{Protocol: "http:", Hostname: "localhost"},
			expected: "http://localhost:8000/api",
		},
		{
			name:     "loopback ip",
			env:      Environment{Protocol: "http:", Hostname: "127.0.0.1"},
			expected: "http://localhost:8000/api",
		},
		{
			name:     "blank override is ignored",
			env:      Environment{Override: "  ", Protocol: "https:", Hostname: "admin.example.com"},
			expected: "https://admin.example.com:8000/api",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveBaseURL(tc.env))
		})
	}
}
