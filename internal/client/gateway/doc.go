// Package gateway is the single HTTP client the booking client talks to the
// REST backend through.
//
// # Pipeline
//
// Every outgoing request passes through named stages, in order:
//
//  1. request-id  sets X-Request-ID
//  2. attach-auth sets "Authorization: Bearer <access>" when a token is stored
//
// and every response through handle-401-refresh. A 401 on a request's first
// attempt marks the request as retried, exchanges the refresh token for a
// new access token and replays the request once. If the refresh fails the
// token store is cleared and the session-expired handler runs; the caller
// then sees the original 401. A request is never refreshed twice.
//
// Concurrent refreshes that present the same refresh token share one
// network call.
//
// # Errors
//
// Non-2xx responses surface as *APIError. Transport failures wrap
// ErrUnavailable. Use MessageFrom to turn either into user-facing text.
package gateway
