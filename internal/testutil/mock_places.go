// Package testutil provides testing utilities for the places client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/places-client/pkg/places"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockPage is one page of a paginated endpoint.
type MockPage struct {
	Places        []places.Place
	Status        places.Status
	ErrorMessage  string
	NextPageToken string
}

// MockPlaces is a configurable mock place-search server for testing.
// Paths are matched without the leading slash, e.g. "textsearch/json".
type MockPlaces struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	requests []*url.URL
}

// NewMockPlaces creates a new mock server.
func NewMockPlaces() *MockPlaces {
	mock := &MockPlaces{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")

		mock.mu.Lock()
		u := *r.URL
		mock.requests = append(mock.requests, &u)
		handler, exists := mock.handlers[path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"html_attributions": []string{},
			"results":           []places.Place{},
			"status":            places.StatusZeroResults,
		})
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockPlaces) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockPlaces) Close() {
	m.server.Close()
}

// Reset clears request tracking.
func (m *MockPlaces) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

// SetHandler sets a custom handler for a path.
func (m *MockPlaces) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockPlaces) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPages serves pages for a paginated path. A request without pagetoken
// gets the first page; a request whose pagetoken equals the NextPageToken of
// page i gets page i+1. Unknown tokens get INVALID_REQUEST.
func (m *MockPlaces) SetPages(path, listKey string, pages ...MockPage) {
	byToken := make(map[string]MockPage, len(pages))
	for i := 1; i < len(pages); i++ {
		byToken[pages[i-1].NextPageToken] = pages[i]
	}

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pagetoken")

		page, ok := MockPage{}, false
		switch {
		case token == "" && len(pages) > 0:
			page, ok = pages[0], true
		case token != "":
			page, ok = byToken[token]
		}
		if !ok {
			page = MockPage{Status: places.StatusInvalidRequest}
		}

		writeJSON(w, http.StatusOK, ListBody(listKey, page))
	})
}

// Requests returns the URLs of all requests received, in order.
func (m *MockPlaces) Requests() []*url.URL {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*url.URL(nil), m.requests...)
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockPlaces) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// ListBody renders a page the way the search endpoints do. listKey is
// "results" or "candidates".
func ListBody(listKey string, page MockPage) map[string]any {
	status := page.Status
	if status == "" {
		status = places.StatusOK
	}
	items := page.Places
	if items == nil {
		items = []places.Place{}
	}

	body := map[string]any{
		"html_attributions": []string{},
		listKey:             items,
		"status":            status,
	}
	if page.NextPageToken != "" {
		body["next_page_token"] = page.NextPageToken
	}
	if page.ErrorMessage != "" {
		body["error_message"] = page.ErrorMessage
	}
	return body
}

// MakePlaces creates n places with ids "<prefix>-0" .. "<prefix>-(n-1)".
func MakePlaces(prefix string, n int) []places.Place {
	out := make([]places.Place, n)
	for i := range out {
		out[i] = places.Place{
			PlaceID: fmt.Sprintf("%s-%d", prefix, i),
			Name:    fmt.Sprintf("%s %d", prefix, i),
		}
	}
	return out
}

// NewDetailsResponse creates a 200 OK details body for a place.
func NewDetailsResponse(placeID, name string) MockResponse {
	body, _ := json.Marshal(map[string]any{
		"html_attributions": []string{},
		"result": map[string]any{
			"place_id": placeID,
			"name":     name,
		},
		"status": places.StatusOK,
	})
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json; charset=UTF-8"},
	}
}

// NewStatusResponse creates a 200 OK body carrying only an upstream status.
func NewStatusResponse(status places.Status, message string) MockResponse {
	body, _ := json.Marshal(map[string]any{
		"html_attributions": []string{},
		"results":           []places.Place{},
		"status":            status,
		"error_message":     message,
	})
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json; charset=UTF-8"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=UTF-8"},
	}
}

// NewMalformedResponse creates a 200 OK response that is not JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       "<html>temporarily unavailable</html>",
		Headers:    map[string]string{"Content-Type": "text/html"},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
