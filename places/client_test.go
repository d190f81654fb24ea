// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, options ClientOptions) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	options.APIKey = "test-key"
	options.BaseURL = server.URL
	options.DataPath = t.TempDir()

	client, err := NewClient(&options, nil)
	if err != nil {
		t.Fatalf("NewClient: %s", err)
	}

	return client
}

func TestSearchText(t *testing.T) {
	var gotReq searchTextRequest

	var gotKey, gotMask string

	handler := func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")

		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %s", err)
		}

		resp := searchTextResponse{
			Places: []Place{
				{DisplayName: &LocalizedText{Text: "Spago"}},
				{DisplayName: &LocalizedText{Text: "Gjelina"}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encoding response: %s", err)
		}
	}

	client := newTestClient(t, handler, ClientOptions{MaxResults: 5})

	hits, err := client.SearchText(context.Background(), "restaurants in Beverly Hills, CA")
	if err != nil {
		t.Fatalf("SearchText: %s", err)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}

	if gotKey != "test-key" {
		t.Errorf("X-Goog-Api-Key = %q, want test-key", gotKey)
	}

	if !strings.Contains(gotMask, "places.displayName") {
		t.Errorf("field mask %q does not request display names", gotMask)
	}

	if gotReq.TextQuery != "restaurants in Beverly Hills, CA" {
		t.Errorf("textQuery = %q", gotReq.TextQuery)
	}

	if gotReq.MaxResultCount != 5 {
		t.Errorf("maxResultCount = %d, want 5", gotReq.MaxResultCount)
	}

	if gotReq.IncludedType != "restaurant" {
		t.Errorf("includedType = %q, want restaurant", gotReq.IncludedType)
	}

	if client.CallsUsed() != 1 {
		t.Errorf("CallsUsed = %d, want 1", client.CallsUsed())
	}
}

func TestSearchText_APIError(t *testing.T) {
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}

	client := newTestClient(t, handler, ClientOptions{})

	_, err := client.SearchText(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected an error for status 403")
	}

	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("error %q does not carry status and body", err)
	}
}

func TestSearchText_BudgetExhausted(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, _ *http.Request) {
		calls++

		_, _ = w.Write([]byte(`{}`))
	}

	client := newTestClient(t, handler, ClientOptions{DailyCallLimit: 2})

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.SearchText(ctx, "q"); err != nil {
			t.Fatalf("call %d: %s", i, err)
		}
	}

	_, err := client.SearchText(ctx, "q")
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}

	// The third call never reached the server.
	if calls != 2 {
		t.Fatalf("server saw %d calls, want 2", calls)
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(&ClientOptions{}, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
