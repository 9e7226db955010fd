package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"talent-track/internal/domain"
)

// UserRepository es solo lectura: el alta y edicion de usuarios vive en
// otro servicio. Aqui se usa para notificaciones y datos de perfil.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, email, COALESCE(name, ''), COALESCE(class_name, ''), role, is_active, created_at
		FROM users
		WHERE id = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.ClassName,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
	)
	return u, err
}
