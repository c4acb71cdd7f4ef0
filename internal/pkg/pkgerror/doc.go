// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// Collaborators (stores, caches, template engines) return plain or wrapped
// errors; the usecase layer classifies them into an *Error whose Code is mapped
// to an HTTP status by the router's error codec.
package pkgerror
