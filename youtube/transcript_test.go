package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient("", nil)
	c.timedTextURL = srv.URL
	return c
}

func TestFetchPrefersFirstLanguageWithTrack(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		requested = append(requested, lang)
		if lang != "en" {
			// No track in this language: empty 200 body.
			return
		}
		w.Write([]byte(`<transcript><text start="1.5" dur="2">hello there</text></transcript>`))
	}))
	defer srv.Close()

	cues, payload, err := testClient(srv).Fetch(context.Background(), "vid1", []string{"ko", "ja", "en"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cues) != 1 || cues[0].Text != "hello there" {
		t.Fatalf("cues = %+v", cues)
	}
	if len(payload) == 0 {
		t.Error("raw payload must be returned for fingerprinting")
	}
	if len(requested) != 3 || requested[0] != "ko" || requested[2] != "en" {
		t.Errorf("requested languages = %v, want preference order ko, ja, en", requested)
	}
}

func TestFetchNoTranscriptAnywhere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, _, err := testClient(srv).Fetch(context.Background(), "vid1", []string{"ko", "en"})
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("err = %v, want ErrNoTranscript", err)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, _, err := testClient(srv).Fetch(context.Background(), "vid1", []string{"ko"})
	if err == nil || errors.Is(err, ErrNoTranscript) {
		t.Errorf("err = %v, want a transport error distinct from ErrNoTranscript", err)
	}
}
