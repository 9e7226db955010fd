package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"talent-track/internal/domain"
)

// TalentResultRepository persiste el perfil de talento (uno por usuario).
type TalentResultRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.TalentResult, error)
	Upsert(ctx context.Context, result domain.TalentResult) error
}

type PgTalentResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgTalentResultRepository(pool *pgxpool.Pool) *PgTalentResultRepository {
	return &PgTalentResultRepository{pool: pool}
}

func (r *PgTalentResultRepository) GetByUserID(ctx context.Context, userID string) (domain.TalentResult, error) {
	const query = `
		SELECT id, user_id, talent_type, talent_name, description, keywords, strengths, next_steps, created_at, updated_at
		FROM talent_results
		WHERE user_id = $1
	`
	var t domain.TalentResult
	var keywords, strengths, nextSteps []byte

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.TalentType,
		&t.TalentName,
		&t.Description,
		&keywords,
		&strengths,
		&nextSteps,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.TalentResult{}, err
	}

	for _, pair := range []struct {
		raw  []byte
		dest *[]string
	}{
		{keywords, &t.Keywords},
		{strengths, &t.Strengths},
		{nextSteps, &t.NextSteps},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return domain.TalentResult{}, fmt.Errorf("unmarshal talent lists: %w", err)
		}
	}
	return t, nil
}

func (r *PgTalentResultRepository) Upsert(ctx context.Context, result domain.TalentResult) error {
	keywords, err := json.Marshal(result.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	strengths, err := json.Marshal(result.Strengths)
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}
	nextSteps, err := json.Marshal(result.NextSteps)
	if err != nil {
		return fmt.Errorf("marshal next steps: %w", err)
	}

	const query = `
		INSERT INTO talent_results (id, user_id, talent_type, talent_name, description, keywords, strengths, next_steps, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id)
		DO UPDATE SET
			talent_type = EXCLUDED.talent_type,
			talent_name = EXCLUDED.talent_name,
			description = EXCLUDED.description,
			keywords = EXCLUDED.keywords,
			strengths = EXCLUDED.strengths,
			next_steps = EXCLUDED.next_steps,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		result.TalentType,
		result.TalentName,
		result.Description,
		keywords,
		strengths,
		nextSteps,
		result.CreatedAt,
		result.UpdatedAt,
	)
	return err
}
