package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Esquema minimo del servicio. El indice unico de monthly_results es el
// que serializa finalizaciones concurrentes del mismo periodo: la app
// trata su violacion como "ya finalizado" en lugar de lockear.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,

	`CREATE TABLE IF NOT EXISTS questionnaires (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		week INTEGER NOT NULL,
		title TEXT NOT NULL,
		deadline TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		answers JSONB,
		submitted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT valid_status CHECK (status IN ('pending', 'completed')),
		CONSTRAINT answers_iff_completed CHECK ((status = 'completed') = (answers IS NOT NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questionnaires_user_week ON questionnaires(user_id, week DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_questionnaires_user_created ON questionnaires(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS monthly_results (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		level INTEGER NOT NULL CHECK (level BETWEEN 1 AND 5),
		skills JSONB NOT NULL,
		skill_vec vector(7) NOT NULL,
		commentary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_monthly_results_period UNIQUE (user_id, year, month)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_monthly_results_user ON monthly_results(user_id, year DESC, month DESC)`,

	`CREATE TABLE IF NOT EXISTS talent_results (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE,
		talent_type TEXT NOT NULL,
		talent_name TEXT NOT NULL,
		description TEXT NOT NULL,
		keywords JSONB NOT NULL,
		strengths JSONB NOT NULL,
		next_steps JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema aplica el esquema de forma idempotente al arrancar.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
