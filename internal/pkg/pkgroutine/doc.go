// Package pkgroutine contains helpers for running background goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that startup work such as cache warm-up does not crash the process
// silently. Stop waits on it before closing the resources those tasks use.
package pkgroutine
