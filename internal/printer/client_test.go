package printer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientConfig{URL: "http://printer/DevMgmt/ProductUsageDyn.xml"})

	if c.URL() != "http://printer/DevMgmt/ProductUsageDyn.xml" {
		t.Errorf("URL() = %v", c.URL())
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
}

func TestFetchReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != UsagePath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Firmware filters on naive user-agent sniffing; the client must
		// look like a desktop browser.
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla/5.0") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(nominalDoc))
	}))
	defer server.Close()

	c := NewClient(ClientConfig{URL: NormalizeEndpoint(server.URL)})

	reading, err := c.FetchReading(context.Background())
	if err != nil {
		t.Fatalf("FetchReading() error = %v", err)
	}

	if reading.PagesPrinted != 1247 {
		t.Errorf("PagesPrinted = %d, want 1247", reading.PagesPrinted)
	}
	if reading.SubscriptionImpressions != 389 {
		t.Errorf("SubscriptionImpressions = %d, want 389", reading.SubscriptionImpressions)
	}
	if reading.ColourInkLevel != 47 || reading.BlackInkLevel != 63 {
		t.Errorf("ink levels = %d/%d, want 47/63", reading.ColourInkLevel, reading.BlackInkLevel)
	}
}

func TestFetchReadingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(ClientConfig{URL: NormalizeEndpoint(server.URL)})

	_, err := c.FetchReading(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError for 500 response", err)
	}
}

func TestFetchReadingConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := NormalizeEndpoint(server.URL)
	server.Close()

	c := NewClient(ClientConfig{URL: url})

	_, err := c.FetchReading(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError for refused connection", err)
	}
}

func TestFetchReadingTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	c := NewClient(ClientConfig{URL: NormalizeEndpoint(server.URL), Timeout: 50 * time.Millisecond})

	_, err := c.FetchReading(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError on timeout", err)
	}
}

func TestFetchReadingParseErrorDistinct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>login required</body></html>`))
	}))
	defer server.Close()

	c := NewClient(ClientConfig{URL: NormalizeEndpoint(server.URL)})

	_, err := c.FetchReading(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError for non-status-document body", err)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		t.Error("parse failure must not be classified as a network error")
	}
}
