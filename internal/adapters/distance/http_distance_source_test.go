package distance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestHTTPDistanceSourceLoadDistances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/distances" {
			t.Errorf("path = %q, want /v1/distances", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "secret" {
			t.Errorf("Authorization = %q, want secret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"from":"DC","to":"P1","distance_meters":1200},
			{"from":"P1","to":"DC","distance_meters":1300}
		]`))
	}))
	defer srv.Close()

	src, err := NewHTTPDistanceSource(srv.URL, "secret")
	if err != nil {
		t.Fatalf("NewHTTPDistanceSource() error = %v", err)
	}

	lookup, err := src.LoadDistances(context.Background())
	if err != nil {
		t.Fatalf("LoadDistances() error = %v", err)
	}

	d, err := lookup.Distance("DC", "P1")
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
	if d != 1200 {
		t.Fatalf("Distance() = %v, want 1200", d)
	}
}

func TestHTTPDistanceSourceRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"from":"DC","to":"P1","distance_meters":500}]`))
	}))
	defer srv.Close()

	src, err := NewHTTPDistanceSource(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceSource() error = %v", err)
	}

	lookup, err := src.LoadDistances(context.Background())
	if err != nil {
		t.Fatalf("LoadDistances() error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
	if d, _ := lookup.Distance("DC", "P1"); d != 500 {
		t.Fatalf("Distance() = %v, want 500", d)
	}
}

func TestHTTPDistanceSourceGivesUpOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	src, err := NewHTTPDistanceSource(srv.URL, "wrong")
	if err != nil {
		t.Fatalf("NewHTTPDistanceSource() error = %v", err)
	}

	if _, err := src.LoadDistances(context.Background()); err == nil {
		t.Fatalf("LoadDistances() = nil, want error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1 (401 must not be retried)", got)
	}
}

func TestHTTPDistanceSourceRejectsNegativeDistance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"from":"DC","to":"P1","distance_meters":-5}]`))
	}))
	defer srv.Close()

	src, err := NewHTTPDistanceSource(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceSource() error = %v", err)
	}

	if _, err := src.LoadDistances(context.Background()); err == nil {
		t.Fatalf("LoadDistances() = nil, want error for negative distance")
	}
}
