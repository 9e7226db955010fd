package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"talent-track/internal/domain"
)

// MonthlyResultRepository define el contrato de persistencia de resultados
// mensuales. Create es la unica escritura: el registro es inmutable.
type MonthlyResultRepository interface {
	Create(ctx context.Context, result domain.MonthlyResult) error
	GetByID(ctx context.Context, id string) (domain.MonthlyResult, error)
	GetByPeriod(ctx context.Context, userID string, year, month int) (domain.MonthlyResult, error)
	FindByUser(ctx context.Context, userID string) ([]domain.MonthlyResult, error)
	FindSimilar(ctx context.Context, vector pgvector.Vector, excludeID string, k int) ([]domain.MonthlyResult, error)
}

type PgMonthlyResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgMonthlyResultRepository(pool *pgxpool.Pool) *PgMonthlyResultRepository {
	return &PgMonthlyResultRepository{pool: pool}
}

// Create inserta el resultado confiando en el indice unico
// (user_id, year, month) para serializar finalizaciones concurrentes.
// Una violacion de unicidad se reporta como ErrAlreadyFinalized.
func (r *PgMonthlyResultRepository) Create(ctx context.Context, result domain.MonthlyResult) error {
	skills, err := json.Marshal(result.Skills.ToNamed())
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	const query = `
		INSERT INTO monthly_results (id, user_id, year, month, level, skills, skill_vec, commentary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		result.Year,
		result.Month,
		result.Level,
		skills,
		pgvector.NewVector(result.Skills.Vector()),
		result.Commentary,
		result.CreatedAt,
		result.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyFinalized
	}
	return err
}

const monthlyResultColumns = `id, user_id, year, month, level, skills, commentary, created_at, updated_at`

func (r *PgMonthlyResultRepository) GetByID(ctx context.Context, id string) (domain.MonthlyResult, error) {
	query := `
		SELECT ` + monthlyResultColumns + `
		FROM monthly_results
		WHERE id = $1
	`
	return scanMonthlyResult(r.pool.QueryRow(ctx, query, id))
}

func (r *PgMonthlyResultRepository) GetByPeriod(ctx context.Context, userID string, year, month int) (domain.MonthlyResult, error) {
	query := `
		SELECT ` + monthlyResultColumns + `
		FROM monthly_results
		WHERE user_id = $1 AND year = $2 AND month = $3
	`
	return scanMonthlyResult(r.pool.QueryRow(ctx, query, userID, year, month))
}

func (r *PgMonthlyResultRepository) FindByUser(ctx context.Context, userID string) ([]domain.MonthlyResult, error) {
	query := `
		SELECT ` + monthlyResultColumns + `
		FROM monthly_results
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMonthlyResults(rows)
}

// FindSimilar busca los k resultados mas cercanos por distancia coseno
// sobre la columna vector(7), excluyendo el propio resultado.
func (r *PgMonthlyResultRepository) FindSimilar(ctx context.Context, vector pgvector.Vector, excludeID string, k int) ([]domain.MonthlyResult, error) {
	if k <= 0 {
		k = 5
	}
	query := `
		SELECT ` + monthlyResultColumns + `
		FROM monthly_results
		WHERE id <> $1
		ORDER BY skill_vec <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, excludeID, vector, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMonthlyResults(rows)
}

func scanMonthlyResult(row rowScanner) (domain.MonthlyResult, error) {
	var m domain.MonthlyResult
	var skills []byte

	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Year,
		&m.Month,
		&m.Level,
		&skills,
		&m.Commentary,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return domain.MonthlyResult{}, err
	}

	var named map[string]int
	if err := json.Unmarshal(skills, &named); err != nil {
		return domain.MonthlyResult{}, fmt.Errorf("unmarshal skills: %w", err)
	}
	scores, err := domain.SkillScoresFromNamed(named)
	if err != nil {
		return domain.MonthlyResult{}, err
	}
	m.Skills = scores
	return m, nil
}

func scanMonthlyResults(rows pgx.Rows) ([]domain.MonthlyResult, error) {
	var out []domain.MonthlyResult
	for rows.Next() {
		m, err := scanMonthlyResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
