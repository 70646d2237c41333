package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/scenarch/scenarch/pkg/domain"
)

// Bundle is a full-state export: every stored setting plus the scenario
// archive. Importing a bundle reproduces the exact set of stored keys.
type Bundle struct {
	Settings   map[string]string `json:"settings"`
	Scenarios  []domain.Scenario `json:"scenarios"`
	ExportedAt time.Time         `json:"exported_at"`
}

// Export collects the current state into a portable bundle
func (r *Repositories) Export(ctx context.Context) (*Bundle, error) {
	settings, err := r.Setting.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	scenarios, err := r.Scenario.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export scenarios: %w", err)
	}
	return &Bundle{
		Settings:   settings,
		Scenarios:  scenarios,
		ExportedAt: time.Now(),
	}, nil
}

// Import applies a bundle. Settings are written key by key, empty values
// skipped; scenarios are re-saved through the archive so the cap still holds.
func (r *Repositories) Import(ctx context.Context, b *Bundle) error {
	values := make(map[string]string, len(b.Settings))
	for key, value := range b.Settings {
		if value == "" {
			continue
		}
		values[key] = value
	}
	if err := r.Setting.SetMany(ctx, values); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}

	// oldest first so eviction keeps the most recent entries
	for i := len(b.Scenarios) - 1; i >= 0; i-- {
		s := b.Scenarios[i]
		if err := r.Scenario.Save(ctx, &s); err != nil {
			return fmt.Errorf("import scenario %s: %w", s.ID, err)
		}
	}
	return nil
}
