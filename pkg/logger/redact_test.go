package logger

import (
	"net/http"
	"strings"
	"testing"
)

func TestSafeHeadersRedactsSensitiveValues(t *testing.T) {
	h := make(http.Header)
	h.Set("Authorization", "Bearer tok-secret")
	h.Set("Cookie", "sid=abc")
	h.Set("X-Api-Key", "key-123")
	h.Set("Content-Type", "application/json")

	out := SafeHeaders(h)

	for _, secret := range []string{"tok-secret", "sid=abc", "key-123"} {
		if strings.Contains(out, secret) {
			t.Fatalf("sensitive value %q leaked into %q", secret, out)
		}
	}
	if !strings.Contains(out, "Authorization=<redacted>") {
		t.Fatalf("Authorization not redacted: %q", out)
	}
	if !strings.Contains(out, "Content-Type=application/json") {
		t.Fatalf("non-sensitive header missing or mangled: %q", out)
	}
}

func TestSafeHeadersEmptyAndMissing(t *testing.T) {
	if out := SafeHeaders(make(http.Header)); out != "" {
		t.Fatalf("empty headers: got %q", out)
	}
	h := http.Header{"X-Empty": {""}}
	if out := SafeHeaders(h); out != "X-Empty=" {
		t.Fatalf("empty value: got %q", out)
	}
}
