package domain

import "time"

// TalentResult es el perfil de talento unico por usuario.
// A diferencia del resultado mensual, este si admite upsert.
type TalentResult struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TalentType  string    `json:"talent_type"`
	TalentName  string    `json:"talent_name"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Strengths   []string  `json:"strengths"`
	NextSteps   []string  `json:"next_steps"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
