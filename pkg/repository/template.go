package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scenarch/scenarch/pkg/domain"
)

// TemplateRepository handles the named prompt-template library. The single
// "current" template lives in the settings store, not here.
type TemplateRepository struct {
	db *sqlx.DB
}

// templateSQL represents a template row; params are stored as JSON
type templateSQL struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Content   string    `db:"content"`
	Params    string    `db:"params"`
	CreatedAt time.Time `db:"created_at"`
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Save stores a template in the library, filling in a missing ID
func (r *TemplateRepository) Save(ctx context.Context, t *domain.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	params, err := json.Marshal(t.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	query := `
		INSERT INTO templates (id, name, content, params, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, content = excluded.content, params = excluded.params
	`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Content, string(params), t.CreatedAt); err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

// Get retrieves a template by ID
func (r *TemplateRepository) Get(ctx context.Context, id string) (*domain.Template, error) {
	var row templateSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM templates WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return toDomainTemplate(&row)
}

// List returns all saved templates, oldest first
func (r *TemplateRepository) List(ctx context.Context) ([]domain.Template, error) {
	var rows []templateSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM templates ORDER BY created_at ASC, id ASC"); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]domain.Template, 0, len(rows))
	for i := range rows {
		t, err := toDomainTemplate(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// Delete removes a template by ID
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func toDomainTemplate(row *templateSQL) (*domain.Template, error) {
	params := domain.DefaultSamplingParams()
	if row.Params != "" && row.Params != "{}" {
		if err := json.Unmarshal([]byte(row.Params), &params); err != nil {
			return nil, fmt.Errorf("unmarshal params for template %s: %w", row.ID, err)
		}
	}
	return &domain.Template{
		ID:        row.ID,
		Name:      row.Name,
		Content:   row.Content,
		Params:    params,
		CreatedAt: row.CreatedAt,
	}, nil
}
