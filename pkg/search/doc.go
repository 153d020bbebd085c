// Package search is the caller-facing surface of the place-search client.
//
// A Service hands out query builders for each endpoint:
//
//	svc := search.New(c)
//	q := svc.TextSearch().WithQuery("coffee").WithLanguage(places.LanguageEnglish)
//	result, err := q.Execute(ctx, 3)
//
// Text and nearby search are paginated: Execute fetches up to maxPages pages,
// waiting pagination.PageDelay between them, and merges them into one
// result. Find place, details and photo are single requests.
//
// Builders are not safe for concurrent Execute calls. Use Clone to obtain
// an independent builder per goroutine; the Service itself is safe to share.
package search
