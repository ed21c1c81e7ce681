// Package repositories implements SQLite persistence for client-held state.
//
// Two stores live here:
//   - [CredentialRepository] : the catalog access token (opaque string) plus
//     consume-once auth-status flags, implementing auth.CredentialStore
//   - [CatalogItemRepository] : a local cache of catalog item metadata keyed
//     by (item_type, spotify_id), deduplicated via a UNIQUE constraint
//
// The catalog cache supports soft deletes via deleted_at timestamps and
// excludes deleted rows from queries by default. Sequence numbers from
// [NextSequence] provide stable ordering independent of insertion timing.
//
// Durable selection records are NOT stored here: the backend owns those, and
// this client never persists them locally (offline support is a non-goal).
package repositories
