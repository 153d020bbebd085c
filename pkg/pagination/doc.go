// Package pagination executes token-paginated queries and aggregates their
// pages into one logical result.
//
// The place-search endpoints return at most one page per call plus an opaque
// continuation token. A token is only accepted by the service some time after
// it was issued, so pages are fetched strictly one after another with a fixed
// PageDelay in between. This package owns that loop.
//
// Example usage:
//
//	ctrl := pagination.NewController[places.Place]("textsearch", fetcher)
//	result, err := ctrl.Execute(ctx, criteria, 3)
//	if err != nil {
//		return err
//	}
//	for i, place := range result.All() {
//		fmt.Println(i, place.Name)
//	}
//
// The controller:
//   - Validates the criteria and the page cap before any request is made
//   - Fetches page 1, merges it, and follows the continuation token
//   - Waits PageDelay between pages, never before the first or after the last
//   - Stops when a page has no token or the page cap is reached
//   - Aborts on the first fetch error and returns no partial result
//
// Results keep the status and diagnostics of the first page only; later pages
// contribute their items in arrival order.
package pagination
