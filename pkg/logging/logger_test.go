package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose int
		want    slog.Level
		wantErr bool
	}{
		{"", 0, slog.LevelInfo, false},
		{"", 1, slog.LevelDebug, false},
		{"", 3, LevelTrace, false},
		{"warn", 2, slog.LevelWarn, false},
		{"ERROR", 0, slog.LevelError, false},
		{"trace", 0, LevelTrace, false},
		{"loud", 0, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name, tt.verbose)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q, %d) error = %v, wantErr %v", tt.name, tt.verbose, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q, %d) = %v, want %v", tt.name, tt.verbose, got, tt.want)
		}
	}
}

func TestCompactHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelDebug)
	defer SetOutput(&bytes.Buffer{}, slog.LevelInfo)

	New("graph.builder").Debug("added route", "route", "Ridge trail", "km", 1.5)

	line := buf.String()
	for _, want := range []string{"[DEBUG]", "added route", "component=graph.builder", `route="Ridge trail"`, "km=1.5"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q does not contain %q", line, want)
		}
	}
}

func TestCompactHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelWarn)
	defer SetOutput(&bytes.Buffer{}, slog.LevelInfo)

	Info("hidden")
	Trace("hidden too")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("messages below warn were logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARN]  ") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelInfo)
	defer SetOutput(&bytes.Buffer{}, slog.LevelInfo)

	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request id missing from context")
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/path?from=a&to=b", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if !strings.Contains(buf.String(), "request rejected") || !strings.Contains(buf.String(), "status=404") {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}
