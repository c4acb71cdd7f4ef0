// Package pkguid provides helpers for generating unique identifiers.
//
// Only string identifiers are needed: the router stamps every request with a
// time-ordered UUID used as its correlation ID.
package pkguid
