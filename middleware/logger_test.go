package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_RecordsRedirectTarget(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	h := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/barberos", nil))

	out := buf.String()
	assert.Contains(t, out, `"location":"/login"`)
	assert.Contains(t, out, `"status":302`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestRequestLogger_ProbesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.InfoLevel)

	h := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	assert.Empty(t, buf.String())
}

func TestRequestLogger_ClientErrorsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	h := RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/barberos", nil))

	assert.Contains(t, buf.String(), `"level":"warn"`)
}
