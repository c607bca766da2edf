package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "localhost,internal.example")

	tests := []struct {
		url       string
		wantProxy string
	}{
		{"http://api.openai.com/v1", "http://proxy:3128"},
		{"https://api.anthropic.com/v1/messages", "http://sproxy:3128"},
		{"http://localhost:11434/api/generate", ""},
		{"http://ollama.internal.example/api/generate", ""},
		{"http://notinternal.example.org/", "http://proxy:3128"},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(http.MethodGet, tt.url, nil)
		if err != nil {
			t.Fatal(err)
		}

		proxy, err := fn(req)
		if err != nil {
			t.Fatalf("proxy func failed for %s: %v", tt.url, err)
		}

		got := ""
		if proxy != nil {
			got = proxy.String()
		}
		if got != tt.wantProxy {
			t.Errorf("proxy for %s = %q, expected %q", tt.url, got, tt.wantProxy)
		}
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTPProxy(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "")

	req, _ := http.NewRequest(http.MethodGet, "https://api.openai.com/v1", nil)
	proxy, err := fn(req)
	if err != nil {
		t.Fatal(err)
	}
	if proxy == nil || proxy.String() != "http://proxy:3128" {
		t.Errorf("expected fallback to the http proxy, got %v", proxy)
	}
}
