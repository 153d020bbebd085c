package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/places-client/pkg/client"
	"github.com/Sternrassler/places-client/pkg/metrics"
	"github.com/Sternrassler/places-client/pkg/pagination"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/Sternrassler/places-client/pkg/search"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultMaxPages = 1
	maxPagesLimit   = 3
	requestTimeout  = 30 * time.Second
)

// server serves the proxy endpoints.
type server struct {
	svc    *search.Service
	redis  *redis.Client
	retry  client.RetryConfig
	logger zerolog.Logger
}

// searchResponse is the JSON body of the search endpoints.
type searchResponse struct {
	Status           string         `json:"status"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	HTMLAttributions []string       `json:"html_attributions,omitempty"`
	Places           []places.Place `json:"places"`
	Pages            int            `json:"pages"`
	Truncated        bool           `json:"truncated"`
	NextPageToken    string         `json:"next_page_token,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

func newSearchResponse(r *search.Result) searchResponse {
	items := r.Items
	if items == nil {
		items = []places.Place{}
	}
	return searchResponse{
		Status:           r.Status,
		ErrorMessage:     r.ErrorMessage,
		HTMLAttributions: r.HTMLAttributions,
		Places:           items,
		Pages:            r.Pages,
		Truncated:        r.Truncated,
		NextPageToken:    r.NextPageToken,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /ready", s.readyHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /search/text", s.textSearchHandler)
	mux.HandleFunc("GET /search/nearby", s.nearbySearchHandler)
	mux.HandleFunc("GET /findplace", s.findPlaceHandler)
	mux.HandleFunc("GET /details", s.detailsHandler)
	mux.HandleFunc("GET /photo", s.photoHandler)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed")
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) textSearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := paramParser{values: q}

	query := s.svc.TextSearch()
	if v := q.Get("query"); v != "" {
		query.WithQuery(v)
	}
	if v := q.Get("type"); v != "" {
		query.WithType(places.PlaceType(v))
	}
	if loc, ok := p.location("location"); ok {
		query.WithLocation(loc)
	}
	if radius, ok := p.float("radius"); ok {
		query.WithRadius(radius)
	}
	if v := q.Get("language"); v != "" {
		query.WithLanguage(places.Language(v))
	}
	if v, ok := p.int("minprice"); ok {
		query.WithMinPrice(v)
	}
	if v, ok := p.int("maxprice"); ok {
		query.WithMaxPrice(v)
	}
	if v, ok := p.bool("opennow"); ok {
		query.WithOpenNow(v)
	}
	if v := q.Get("region"); v != "" {
		query.WithRegion(v)
	}
	if v := q.Get("pagetoken"); v != "" {
		query.WithPageToken(v)
	}
	maxPages := p.pages()
	if p.err != nil {
		writeError(w, http.StatusBadRequest, p.err)
		return
	}

	s.runSearch(w, r, func(ctx context.Context) (*search.Result, error) {
		return query.Clone().Execute(ctx, maxPages)
	})
}

func (s *server) nearbySearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := paramParser{values: q}

	query := s.svc.NearbySearch()
	if loc, ok := p.location("location"); ok {
		query.WithLocation(loc)
	}
	if radius, ok := p.float("radius"); ok {
		query.WithRadius(radius)
	}
	if v := q.Get("keyword"); v != "" {
		query.WithKeyword(v)
	}
	if v := q.Get("language"); v != "" {
		query.WithLanguage(places.Language(v))
	}
	if v, ok := p.int("minprice"); ok {
		query.WithMinPrice(v)
	}
	if v, ok := p.int("maxprice"); ok {
		query.WithMaxPrice(v)
	}
	if v, ok := p.bool("opennow"); ok {
		query.WithOpenNow(v)
	}
	if v := q.Get("rankby"); v != "" {
		query.WithRankBy(places.RankBy(v))
	}
	if v := q.Get("type"); v != "" {
		query.WithType(places.PlaceType(v))
	}
	if v := q.Get("pagetoken"); v != "" {
		query.WithPageToken(v)
	}
	maxPages := p.pages()
	if p.err != nil {
		writeError(w, http.StatusBadRequest, p.err)
		return
	}

	s.runSearch(w, r, func(ctx context.Context) (*search.Result, error) {
		return query.Clone().Execute(ctx, maxPages)
	})
}

func (s *server) findPlaceHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := s.svc.FindPlace().WithInput(q.Get("input"))
	if v := q.Get("inputtype"); v != "" {
		query.WithInputType(places.InputType(v))
	}
	fields, err := parseFields(q.Get("fields"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(fields) > 0 {
		query.WithFields(fields...)
	}
	if v := q.Get("language"); v != "" {
		query.WithLanguage(places.Language(v))
	}

	s.runSearch(w, r, func(ctx context.Context) (*search.Result, error) {
		return query.Clone().Execute(ctx)
	})
}

func (s *server) detailsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := s.svc.PlaceDetails().WithPlaceID(q.Get("place_id"))
	fields, err := parseFields(q.Get("fields"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(fields) > 0 {
		query.WithFields(fields...)
	}
	if v := q.Get("language"); v != "" {
		query.WithLanguage(places.Language(v))
	}
	if v := q.Get("region"); v != "" {
		query.WithRegion(v)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var result *places.DetailsResult
	err = client.Retry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		result, err = query.Clone().Execute(ctx)
		return err
	})
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) photoHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := paramParser{values: q}

	query := s.svc.PlacePhoto().WithPhotoReference(q.Get("photo_reference"))
	if v, ok := p.int("maxwidth"); ok {
		query.WithMaxWidth(v)
	}
	if v, ok := p.int("maxheight"); ok {
		query.WithMaxHeight(v)
	}
	if p.err != nil {
		writeError(w, http.StatusBadRequest, p.err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var photo *search.Photo
	err := client.Retry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		photo, err = query.Clone().Execute(ctx)
		return err
	})
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	if photo.ContentType != "" {
		w.Header().Set("Content-Type", photo.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(photo.Data); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write photo")
	}
}

// runSearch executes a search with retry and writes the JSON result.
// A retried search starts again from its first page.
func (s *server) runSearch(w http.ResponseWriter, r *http.Request, execute func(ctx context.Context) (*search.Result, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var result *search.Result
	err := client.Retry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		result, err = execute(ctx)
		return err
	})
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSearchResponse(result))
}

func (s *server) writeUpstreamError(w http.ResponseWriter, err error) {
	var decodeErr *client.DecodeError

	switch {
	case errors.Is(err, pagination.ErrPrecondition):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, client.ErrQuotaCooldown) || client.ClassOf(err) == client.ErrorClassQuota:
		writeError(w, http.StatusTooManyRequests, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err)
	case errors.As(err, &decodeErr):
		s.logger.Error().Err(err).Msg("Upstream returned an undecodable body")
		writeError(w, http.StatusBadGateway, err)
	default:
		s.logger.Error().Err(err).Msg("Upstream request failed")
		writeError(w, http.StatusBadGateway, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Class: string(client.ClassOf(err))})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// paramParser parses optional query parameters and keeps the first error.
type paramParser struct {
	values url.Values
	err    error
}

func (p *paramParser) fail(name string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
	}
}

func (p *paramParser) float(name string) (float64, bool) {
	v := p.values.Get(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, err)
		return 0, false
	}
	return f, true
}

func (p *paramParser) int(name string) (int, bool) {
	v := p.values.Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, err)
		return 0, false
	}
	return n, true
}

func (p *paramParser) bool(name string) (bool, bool) {
	v := p.values.Get(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, err)
		return false, false
	}
	return b, true
}

func (p *paramParser) location(name string) (places.Location, bool) {
	v := p.values.Get(name)
	if v == "" {
		return places.Location{}, false
	}
	loc, err := places.ParseLocation(v)
	if err != nil {
		p.fail(name, err)
		return places.Location{}, false
	}
	return loc, true
}

// pages returns the pages parameter, clamped to maxPagesLimit.
func (p *paramParser) pages() int {
	n, ok := p.int("pages")
	if !ok {
		return defaultMaxPages
	}
	if n > maxPagesLimit {
		return maxPagesLimit
	}
	return n
}

func parseFields(s string) ([]places.Field, error) {
	if s == "" {
		return nil, nil
	}
	var fields []places.Field
	for _, name := range strings.Split(s, ",") {
		f, err := places.ParseField(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}
