package search

import (
	"context"

	"github.com/Sternrassler/places-client/pkg/client"
	"github.com/Sternrassler/places-client/pkg/pagination"
	"github.com/Sternrassler/places-client/pkg/places"
)

// Endpoints relative to the client's base URL.
const (
	EndpointTextSearch   = "textsearch/json"
	EndpointNearbySearch = "nearbysearch/json"
	EndpointFindPlace    = "findplacefromtext/json"
	EndpointDetails      = "details/json"
	EndpointPhoto        = "photo"
)

// Transport is the subset of *client.Client used by the search service.
type Transport interface {
	Get(ctx context.Context, endpoint string, query client.Query) (*client.Response, error)
	GetJSON(ctx context.Context, endpoint string, query client.Query, out any) error
}

// listResponse is the body shared by the search endpoints. Text and nearby
// search return results; find place returns candidates.
type listResponse struct {
	HTMLAttributions []string       `json:"html_attributions"`
	Results          []places.Place `json:"results"`
	Candidates       []places.Place `json:"candidates"`
	NextPageToken    string         `json:"next_page_token"`
	Status           places.Status  `json:"status"`
	ErrorMessage     string         `json:"error_message"`
	InfoMessages     []string       `json:"info_messages"`
}

// pageFetcher fetches one page of a search endpoint.
type pageFetcher struct {
	transport Transport
	endpoint  string
}

// FetchPage implements pagination.Fetcher.
func (f *pageFetcher) FetchPage(ctx context.Context, params []pagination.Param) (*pagination.Page[places.Place], error) {
	var body listResponse
	if err := f.transport.GetJSON(ctx, f.endpoint, toQuery(params), &body); err != nil {
		return nil, err
	}

	items := body.Results
	if items == nil {
		items = body.Candidates
	}

	return &pagination.Page[places.Place]{
		Items:            items,
		Status:           string(body.Status),
		ErrorMessage:     body.ErrorMessage,
		InfoMessages:     body.InfoMessages,
		HTMLAttributions: body.HTMLAttributions,
		NextPageToken:    body.NextPageToken,
	}, nil
}

// toQuery keeps the parameter order of the criteria on the wire.
func toQuery(params []pagination.Param) client.Query {
	q := make(client.Query, len(params))
	for i, p := range params {
		q[i] = client.Param{Name: p.Name, Value: p.Value}
	}
	return q
}
