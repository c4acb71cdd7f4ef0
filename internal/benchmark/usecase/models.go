package usecase

import (
	"errors"
	"fmt"
)

const (
	DefaultTextMessage        = "Hello, World!"
	DefaultQueriesParam       = "queries"
	DefaultCachedQueriesParam = "count"
	DefaultWorldRows          = 10000

	// MinQueries and MaxQueries bound the number of worlds a multi-row request may ask for.
	MinQueries = 1
	MaxQueries = 500
)

// Settings is the immutable benchmark configuration built once at startup.
type Settings struct {
	TextMessage        string
	QueriesParam       string
	CachedQueriesParam string
	WorldRows          int
}

// DefaultSettings returns the settings used by the standard benchmark suite.
func DefaultSettings() Settings {
	return Settings{
		TextMessage:        DefaultTextMessage,
		QueriesParam:       DefaultQueriesParam,
		CachedQueriesParam: DefaultCachedQueriesParam,
		WorldRows:          DefaultWorldRows,
	}
}

// Validate reports settings that would make a route unusable.
func (s Settings) Validate() error {
	var errs []error
	if s.WorldRows < 1 {
		errs = append(errs, fmt.Errorf("world rows must be positive, got %d", s.WorldRows))
	}
	if s.QueriesParam == "" {
		errs = append(errs, errors.New("queries parameter name is empty"))
	}
	if s.CachedQueriesParam == "" {
		errs = append(errs, errors.New("cached queries parameter name is empty"))
	}
	return errors.Join(errs...)
}
