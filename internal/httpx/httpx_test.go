package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Get_AppliesDefaultHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	client := New(5 * time.Second)

	resp, err := client.Get(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != client.UserAgent {
		t.Errorf("Expected default User-Agent %q, got %q", client.UserAgent, gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", gotAccept)
	}
}

func TestClient_Get_DoesNotOverrideCallerHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := New(5 * time.Second)
	client.UserAgent = ""

	resp, err := client.Get(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	// With no configured identity the transport's own default applies.
	if gotUA == "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" {
		t.Errorf("Expected no browser UA when unset, got %q", gotUA)
	}
}
