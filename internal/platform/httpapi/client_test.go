package httpapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kqtrainer/internal/platform/httpapi"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestGetDecodesEnvelopePayload(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "data": {"clients": [{"first_name": "Ana"}]}}`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL+"/api", srv.Client(), staticToken("tok-1"), nil)
	var out struct {
		Clients []struct {
			FirstName string `json:"first_name"`
		} `json:"clients"`
	}
	if err := client.Get(context.Background(), "trainer/clients", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if len(out.Clients) != 1 || out.Clients[0].FirstName != "Ana" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestFailureEnvelopeCarriesServerMessageVerbatim(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success": false, "error": "Client not assigned to you"}`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, srv.Client(), nil, nil)
	err := client.Get(context.Background(), "trainer/clients/c1/performance", nil)
	var apiErr *httpapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Client not assigned to you" {
		t.Fatalf("expected verbatim server error, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiErr.StatusCode)
	}
}

func TestFailureWithoutMessageFallsBackToGenericString(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, srv.Client(), nil, nil)
	err := client.Get(context.Background(), "trainer/clients", nil)
	var apiErr *httpapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != httpapi.FallbackMessage {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestNonEnvelopeBodyFallsBackToGenericString(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, srv.Client(), nil, nil)
	err := client.Get(context.Background(), "trainer/clients", nil)
	var apiErr *httpapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != httpapi.FallbackMessage {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestPutSendsJSONBody(t *testing.T) {
	t.Parallel()
	var gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	client := httpapi.New(srv.URL, srv.Client(), nil, nil)
	body := map[string]any{"plan_data": map[string]any{"days": []any{}}}
	if err := client.Put(context.Background(), "trainer/clients/c1/workout-plan", body, nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if string(gotBody) != `{"plan_data":{"days":[]}}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestMediaURLNormalization(t *testing.T) {
	t.Parallel()
	client := httpapi.New("https://coach.example.com/api/v1", nil, nil, nil)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"relative strips api sub-path", "/videos/session-1.mp4", "https://coach.example.com/videos/session-1.mp4"},
		{"relative without slash", "videos/session-2.mp4", "https://coach.example.com/videos/session-2.mp4"},
		{"absolute passes through", "https://cdn.example.com/v.mp4", "https://cdn.example.com/v.mp4"},
		{"empty stays empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := client.MediaURL(tc.in); got != tc.want {
				t.Fatalf("MediaURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
