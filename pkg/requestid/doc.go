// Package requestid provides HTTP middleware and context helpers for
// request correlation identifiers.
//
// Middleware validates or generates an X-Request-ID per request, stores it
// in the request context, and echoes it back to the client. LoggerExtractor
// integrates with the logger package so the ID is injected into every log
// record emitted while handling the request. Invalid client-supplied IDs are
// silently replaced; the package never returns errors.
package requestid
