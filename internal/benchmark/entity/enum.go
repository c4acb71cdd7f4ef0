package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBackend        = errors.New("unknown backend")
	ErrUnknownTemplateEngine = errors.New("unknown template engine")
)

// Backend identifies a storage engine binding. Its value is the path segment
// under which the backend's routes are mounted.
type Backend string

const (
	BackendMemory     Backend = "memory"
	BackendPostgreSQL Backend = "postgresql"
	BackendMongoDB    Backend = "mongodb"
)

// Backends lists every supported backend in registration order.
func Backends() []Backend {
	return []Backend{BackendMemory, BackendPostgreSQL, BackendMongoDB}
}

func (b Backend) String() string {
	return string(b)
}

// ParseBackend maps a configured name to its Backend.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendMemory, BackendPostgreSQL, BackendMongoDB:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// TemplateEngine identifies a template rendering binding. Its value is the
// path segment of the fortunes route.
type TemplateEngine string

const (
	TemplateEngineGo     TemplateEngine = "gotemplate"
	TemplateEngineMinify TemplateEngine = "minify"
)

// TemplateEngines lists every supported template engine in registration order.
func TemplateEngines() []TemplateEngine {
	return []TemplateEngine{TemplateEngineGo, TemplateEngineMinify}
}

func (e TemplateEngine) String() string {
	return string(e)
}

// ParseTemplateEngine maps a configured name to its TemplateEngine.
func ParseTemplateEngine(name string) (TemplateEngine, error) {
	switch e := TemplateEngine(strings.ToLower(strings.TrimSpace(name))); e {
	case TemplateEngineGo, TemplateEngineMinify:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplateEngine, name)
	}
}
