package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scenarch/scenarch/pkg/domain"
)

// DefaultMaxScenarios caps the archive; the oldest record is evicted when a
// save would exceed it.
const DefaultMaxScenarios = 50

// ScenarioRepository handles the saved-scenario archive. The archive is
// append/delete only and holds the most recent maxScenarios entries.
type ScenarioRepository struct {
	db           *sqlx.DB
	maxScenarios int
}

// scenarioSQL represents a scenario row
type scenarioSQL struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Intensity string    `db:"intensity"`
	CreatedAt time.Time `db:"created_at"`
}

// NewScenarioRepository creates a new scenario repository; maxScenarios <= 0
// selects the default cap
func NewScenarioRepository(db *sqlx.DB, maxScenarios int) *ScenarioRepository {
	if maxScenarios <= 0 {
		maxScenarios = DefaultMaxScenarios
	}
	return &ScenarioRepository{db: db, maxScenarios: maxScenarios}
}

// Save appends a scenario and evicts the oldest entries beyond the cap.
// A missing ID or timestamp is filled in.
func (r *ScenarioRepository) Save(ctx context.Context, s *domain.Scenario) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	insert := `
		INSERT INTO scenarios (id, title, content, intensity, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, content = excluded.content,
			intensity = excluded.intensity, created_at = excluded.created_at
	`
	if _, err := tx.ExecContext(ctx, insert, s.ID, s.Title, s.Content, string(s.Intensity), s.CreatedAt); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("insert scenario: %w (rollback also failed: %s)", err, rbErr.Error())
		}
		return fmt.Errorf("insert scenario: %w", err)
	}

	// evict oldest entries beyond the cap
	evict := `
		DELETE FROM scenarios WHERE id NOT IN (
			SELECT id FROM scenarios ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`
	if _, err := tx.ExecContext(ctx, evict, r.maxScenarios); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("evict scenarios: %w (rollback also failed: %s)", err, rbErr.Error())
		}
		return fmt.Errorf("evict scenarios: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a scenario by ID
func (r *ScenarioRepository) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	var row scenarioSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM scenarios WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scenario not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return toDomainScenario(&row), nil
}

// List returns saved scenarios, most recent first
func (r *ScenarioRepository) List(ctx context.Context) ([]domain.Scenario, error) {
	var rows []scenarioSQL
	query := `SELECT * FROM scenarios ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	out := make([]domain.Scenario, len(rows))
	for i := range rows {
		out[i] = *toDomainScenario(&rows[i])
	}
	return out, nil
}

// Delete removes a scenario by ID
func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	return nil
}

// Count returns the number of archived scenarios
func (r *ScenarioRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM scenarios"); err != nil {
		return 0, fmt.Errorf("count scenarios: %w", err)
	}
	return count, nil
}

func toDomainScenario(row *scenarioSQL) *domain.Scenario {
	return &domain.Scenario{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Intensity: domain.ParseIntensity(row.Intensity),
		CreatedAt: row.CreatedAt,
	}
}
