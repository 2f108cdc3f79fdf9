// Package config loads, normalizes, and validates folio's TOML configuration.
//
// Resolution order: an explicit --config path, a folio.toml in the working
// directory, then ~/.config/folio/config.toml. Missing files fall back to
// repository defaults so the CLI works without any configuration at all.
// Path fields are tilde-expanded and made absolute during normalization.
package config
