package util

import (
	"net/http"
	"net/url"
	"testing"
)

func request(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("Failed to parse URL: %v", err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "http://proxy-b:3129", "")

	got, err := proxy(request(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("Proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-b:3129" {
		t.Errorf("Expected HTTPS proxy for https request, got %v", got)
	}

	got, err = proxy(request(t, "http://api.example.com/v1"))
	if err != nil {
		t.Fatalf("Proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:3128" {
		t.Errorf("Expected HTTP proxy for http request, got %v", got)
	}
}

func TestNewProxyFunc_HTTPOnlyCoversBoth(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "")

	got, err := proxy(request(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("Proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:3128" {
		t.Errorf("Expected HTTP proxy fallback for https request, got %v", got)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "localhost, .internal.example.com")

	cases := []string{
		"http://localhost:8080/health",
		"https://svc.internal.example.com/api",
	}
	for _, rawURL := range cases {
		got, err := proxy(request(t, rawURL))
		if err != nil {
			t.Fatalf("Proxy func failed for %s: %v", rawURL, err)
		}
		if got != nil {
			t.Errorf("Expected direct connection for %s, got proxy %v", rawURL, got)
		}
	}

	got, err := proxy(request(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("Proxy func failed: %v", err)
	}
	if got == nil {
		t.Error("Expected proxy for non-bypassed host")
	}
}
