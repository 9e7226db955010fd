package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talent-track/internal/domain"
)

// QuestionnaireRepository define el contrato de persistencia de cuestionarios.
type QuestionnaireRepository interface {
	GetByID(ctx context.Context, id string) (domain.Questionnaire, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Questionnaire, error)
	FindCompletedInPeriod(ctx context.Context, userID string, year int, month time.Month) ([]domain.Questionnaire, error)
	UpdateAnswers(ctx context.Context, q domain.Questionnaire) error
}

type PgQuestionnaireRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionnaireRepository(pool *pgxpool.Pool) *PgQuestionnaireRepository {
	return &PgQuestionnaireRepository{pool: pool}
}

const questionnaireColumns = `id, user_id, week, title, deadline, status, answers, submitted_at, created_at, updated_at`

func (r *PgQuestionnaireRepository) GetByID(ctx context.Context, id string) (domain.Questionnaire, error) {
	query := `
		SELECT ` + questionnaireColumns + `
		FROM questionnaires
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanQuestionnaire(row)
}

func (r *PgQuestionnaireRepository) FindByUser(ctx context.Context, userID string) ([]domain.Questionnaire, error) {
	query := `
		SELECT ` + questionnaireColumns + `
		FROM questionnaires
		WHERE user_id = $1
		ORDER BY week DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestionnaires(rows)
}

// FindCompletedInPeriod devuelve los cuestionarios completados cuyo alta cae
// dentro del mes calendario indicado. Es la entrada del finalizador mensual.
func (r *PgQuestionnaireRepository) FindCompletedInPeriod(ctx context.Context, userID string, year int, month time.Month) ([]domain.Questionnaire, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT ` + questionnaireColumns + `
		FROM questionnaires
		WHERE user_id = $1
		  AND status = $2
		  AND created_at >= $3
		  AND created_at < $4
		ORDER BY week ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, domain.QuestionnaireStatusCompleted, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestionnaires(rows)
}

// UpdateAnswers persiste respuestas, estado y fecha de envio.
func (r *PgQuestionnaireRepository) UpdateAnswers(ctx context.Context, q domain.Questionnaire) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
		UPDATE questionnaires
		SET answers = $2, status = $3, submitted_at = $4, updated_at = $5
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, q.ID, answers, q.Status, q.SubmittedAt, q.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestionnaire(row rowScanner) (domain.Questionnaire, error) {
	var q domain.Questionnaire
	var answers []byte

	if err := row.Scan(
		&q.ID,
		&q.UserID,
		&q.Week,
		&q.Title,
		&q.Deadline,
		&q.Status,
		&answers,
		&q.SubmittedAt,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return domain.Questionnaire{}, err
	}

	if len(answers) > 0 {
		var a domain.Answers
		if err := json.Unmarshal(answers, &a); err != nil {
			return domain.Questionnaire{}, fmt.Errorf("unmarshal answers: %w", err)
		}
		q.Answers = &a
	}
	return q, nil
}

func scanQuestionnaires(rows pgx.Rows) ([]domain.Questionnaire, error) {
	var out []domain.Questionnaire
	for rows.Next() {
		q, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
