// Package server provides HTTP routing, middleware, and the authorization callback for the CLI.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Authorization Callback Handler
//
// [CallbackHandler] receives the redirect leg of the PKCE authorization code flow.
//
// The handler validates the state parameter (CSRF protection) and captures the
// authorization code, sending the result through a channel. The code is
// exchanged for tokens elsewhere, against the backend, with the PKCE verifier;
// no client secret lives in this process.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `museick auth login`, a temporary HTTP server starts on a
// loopback address, handles the redirect, and shuts down after the code is
// captured. [AwaitCallback] wraps the listener lifecycle.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
