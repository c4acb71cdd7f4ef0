package entity

import (
	"errors"
	"testing"
)

func TestParseBackend(t *testing.T) {
	for _, b := range Backends() {
		got, err := ParseBackend(" " + string(b) + " ")
		if err != nil {
			t.Fatalf("ParseBackend(%q) err = %v", b, err)
		}
		if got != b {
			t.Fatalf("ParseBackend(%q) = %q", b, got)
		}
	}

	if got, err := ParseBackend("PostgreSQL"); err != nil || got != BackendPostgreSQL {
		t.Fatalf("expected case-insensitive match, got %q, %v", got, err)
	}

	if _, err := ParseBackend("cassandra"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestParseTemplateEngine(t *testing.T) {
	for _, e := range TemplateEngines() {
		got, err := ParseTemplateEngine(string(e))
		if err != nil || got != e {
			t.Fatalf("ParseTemplateEngine(%q) = %q, %v", e, got, err)
		}
	}

	if _, err := ParseTemplateEngine("pebble"); !errors.Is(err, ErrUnknownTemplateEngine) {
		t.Fatalf("expected ErrUnknownTemplateEngine, got %v", err)
	}
}
