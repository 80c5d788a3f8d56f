package driven

import "github.com/custodia-labs/recall-cli/internal/core/domain"

// ConfigStore loads and persists application settings.
// Backed by a TOML file in the recall config directory.
type ConfigStore interface {
	// Load reads the stored settings, returning defaults for any
	// fields that are absent.
	Load() (domain.AppSettings, error)

	// Save persists the settings.
	Save(settings domain.AppSettings) error

	// Path returns the config file path.
	Path() string
}
