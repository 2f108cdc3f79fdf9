package testsupport

import (
	"path/filepath"
	"testing"

	"folio/internal/config"
)

// NewConfig returns a normalized default configuration that never touches the
// developer's real config file.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	return cfg
}
