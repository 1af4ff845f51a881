// internal/adapter/storage/plan_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"cadence/internal/domain/content"
)

const planSchema = `
	CREATE TABLE IF NOT EXISTS content_plans (
		id           UUID PRIMARY KEY,
		week_of      TIMESTAMPTZ NOT NULL,
		total_pieces INTEGER NOT NULL,
		platforms    TEXT[] NOT NULL,
		payload      JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS content_plans_week_of_idx ON content_plans (week_of DESC);
`

// PlanStore implements content.Store on postgres
type PlanStore struct {
	db *pgxpool.Pool
}

// NewPlanStore creates a new plan store
func NewPlanStore(db *pgxpool.Pool) *PlanStore {
	return &PlanStore{
		db: db,
	}
}

// EnsureSchema creates the plans table if it does not exist
func (s *PlanStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, planSchema); err != nil {
		return fmt.Errorf("error creating plan schema: %w", err)
	}
	return nil
}

// SavePlan saves a plan, replacing any plan with the same ID
func (s *PlanStore) SavePlan(ctx context.Context, plan content.Plan) error {
	query := `
		INSERT INTO content_plans (id, week_of, total_pieces, platforms, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET
			week_of = $2,
			total_pieces = $3,
			platforms = $4,
			payload = $5
	`

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("error marshaling plan: %w", err)
	}

	_, err = s.db.Exec(ctx, query, plan.ID, plan.WeekOf, plan.TotalPieces, plan.Platforms, payload)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetPlan retrieves a plan by ID. IDs that are not UUIDs cannot exist.
func (s *PlanStore) GetPlan(ctx context.Context, id string) (*content.Plan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, content.ErrNotFound
	}

	var payload []byte
	err := s.db.QueryRow(ctx, `SELECT payload FROM content_plans WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying plan: %w", err)
	}

	var plan content.Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, fmt.Errorf("error unmarshaling plan: %w", err)
	}
	return &plan, nil
}

// ListPlans returns the most recent plans first
func (s *PlanStore) ListPlans(ctx context.Context, limit int) ([]content.Plan, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `SELECT payload FROM content_plans ORDER BY week_of DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying plans: %w", err)
	}
	defer rows.Close()

	plans := make([]content.Plan, 0, limit)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("error scanning plan row: %w", err)
		}
		var plan content.Plan
		if err := json.Unmarshal(payload, &plan); err != nil {
			return nil, fmt.Errorf("error unmarshaling plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}

	return plans, nil
}
