// Package pkgrouter wraps HTTP routing and common middleware used by the
// benchmark endpoints.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like content negotiation for plain text, HTML and JSON replies, error
// mapping, logging, metrics, recovery, and correlation ID propagation.
package pkgrouter
