package speech

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesizeSendsExpectedRequest(t *testing.T) {
	var captured speechRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	c := NewClient("sk-test")
	c.endpoint = srv.URL
	c.httpClient = srv.Client()

	audio, err := c.Synthesize("Good morning, here is the news.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if string(audio) != "fake-mp3-bytes" {
		t.Error("audio bytes not returned verbatim")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if captured.Model != model || captured.Voice != voice {
		t.Errorf("unexpected model/voice: %s/%s", captured.Model, captured.Voice)
	}
	if captured.ResponseFormat != "mp3" {
		t.Errorf("response format = %q", captured.ResponseFormat)
	}
	if captured.Input != "Good morning, here is the news." {
		t.Errorf("script not passed through: %q", captured.Input)
	}
}

func TestSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":"rate limited"}`)
	}))
	defer srv.Close()

	c := NewClient("sk-test")
	c.endpoint = srv.URL
	c.httpClient = srv.Client()

	if _, err := c.Synthesize("script"); err == nil {
		t.Error("expected error on HTTP 429")
	}
}

func TestSynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("sk-test")
	c.endpoint = srv.URL
	c.httpClient = srv.Client()

	if _, err := c.Synthesize("script"); err == nil {
		t.Error("expected error on empty audio body")
	}
}
