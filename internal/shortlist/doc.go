// Package shortlist drives the monthly pick workflow: debounced catalog search,
// a per-month candidate pool, and promotion into the month's single pick per axis.
//
// # Search
//
// [Engine.SetQuery] registers each keystroke; the network request fires only
// after the debounce window passes with no newer input:
//   - Queries below the minimum length clear results immediately, no network call
//   - A newer query cancels the pending timer and any in-flight request
//   - Settled responses for superseded queries are dropped before delivery
//
// Consumers read [SearchResult] values from [Engine.Results] and can rely on
// them arriving in order and only for the latest query.
//
// # Slot Lifecycle
//
// Each month has two slots (muse and ick). A slot moves Empty → HasCandidates →
// HasSelection as items are shortlisted and one is promoted. [Engine.Month]
// materializes both slots from a single backend request.
//
// # Promotion
//
// [Engine.Promote] is two steps: ensure the item exists as a candidate, then
// raise its role to selected. A failure on the second step leaves the item on
// the shortlist, so a flaky request never loses the user's add.
//
// # Caching
//
// Search results and shortlisted items are remembered in the local catalog
// cache when one is configured. Cache writes are best-effort; failures are
// logged at debug and never surface to the caller.
package shortlist
