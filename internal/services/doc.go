// Package services defines typed operations over the Museick backend and the Spotify catalog.
//
// # Client Abstraction
//
// All services depend on [Doer], satisfied by the authenticated client in internal/auth.
// The client owns token attachment and the refresh-and-retry cycle; services never inspect
// status codes or retry on their own.
//
// # Selections
//
// [SelectionAPI] provides CRUD over selection records. Each record binds a catalog item to
// a month and a role (muse/ick × candidate/selected). Role transitions stay within one axis;
// the backend re-validates every write.
//
// # Catalog
//
// [CatalogAPI] wraps the Spotify Web API search, item lookup and top-tracks endpoints.
// Provider-shaped JSON is translated into [models.CatalogItem] at this boundary so nothing
// above it handles raw payloads.
//
// # Backend
//
// [BackendAPI] covers user sync and playlist generation.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrInvalidArgument] : rejected before any network call
//   - [shared.ErrAuthMissing] : no session token available
//   - [shared.ErrAuthInvalid] : refresh cycle exhausted, reauthorization needed
//   - [shared.RequestError] : backend returned a non-2xx response
package services
