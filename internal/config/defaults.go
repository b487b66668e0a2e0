package config

import "fleet-inspector/internal/domain"

// DefaultSettings returns baseline configuration for first launch: the
// local development backend and the product's primary language.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		ServerURL: "http://localhost:8000",
		Language:  "es",
	}
}
