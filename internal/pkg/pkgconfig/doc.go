// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a YAML file loaded by Viper and may be overridden through
// environment variables, where nested keys use underscores
// (server.address.http becomes SERVER_ADDRESS_HTTP). Code depends on the Config
// interface so tests can feed values without touching the filesystem.
package pkgconfig
