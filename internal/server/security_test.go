package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name           string
		headerKey      string
		path           string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, "/api/v1/catalog", http.StatusOK},
		{"Invalid API Key", "wrong-key", "/api/v1/catalog", http.StatusUnauthorized},
		{"Missing API Key", "", "/api/v1/catalog", http.StatusUnauthorized},
		{"Public Path - Healthz", "", "/healthz", http.StatusOK},
		{"Public Path - Version", "", "/version", http.StatusOK},
		{"Public Path - Metrics", "", "/metrics", http.StatusOK},
		{"Query key on stream", "", "/api/v1/farms/f1/events?api_key=" + apiKey, http.StatusOK},
		{"Query key on websocket", "", "/api/v1/farms/f1/ws?api_key=" + apiKey, http.StatusOK},
		{"Wrong query key on stream", "", "/api/v1/farms/f1/events?api_key=nope", http.StatusUnauthorized},
		{"Query key ignored off stream", "", "/api/v1/farms/f1?api_key=" + apiKey, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.headerKey != "" {
				req.Header.Set(HeaderAPIKey, tt.headerKey)
			}
			rec := httptest.NewRecorder()

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if rec.Code == http.StatusUnauthorized {
				var body middlewareError
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error != ErrMsgUnauthorized {
					t.Errorf("expected JSON unauthorized body, got %q", rec.Body.String())
				}
			}
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware("k", nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/catalog", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	if got := detector.failedAuthByIP["10.1.1.1"]; got != 3 {
		t.Errorf("expected 3 failed attempts, got %d", got)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct connection", "203.0.113.7:4000", "", nil, "203.0.113.7"},
		{"untrusted proxy header ignored", "203.0.113.7:4000", "198.51.100.1", nil, "203.0.113.7"},
		{"trusted proxy uses last hop", "10.0.0.1:4000", "198.51.100.1, 192.0.2.9", []string{"10.0.0.1"}, "192.0.2.9"},
		{"trusted proxy without header", "10.0.0.1:4000", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparseable remote addr", "garbage", "", nil, "garbage"},
		{"trusted proxy cidr", "10.2.3.4:4000", "198.51.100.1", []string{"10.0.0.0/8"}, "198.51.100.1"},
		{"peer outside cidr", "172.16.0.1:4000", "198.51.100.1", []string{"10.0.0.0/8"}, "172.16.0.1"},
		{"ipv6 proxy cidr", "[fd00::1]:4000", "198.51.100.1", []string{"fd00::/8"}, "198.51.100.1"},
		{"malformed cidr ignored", "10.2.3.4:4000", "198.51.100.1", []string{"10.0.0.0/99"}, "10.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if got := extractIP(req, tt.trusted); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tooLarge *http.MaxBytesError
		if _, err := io.ReadAll(r.Body); errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/", strings.NewReader("this body is far too long"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}
