package domain

import "time"

// MonthlyResult es la foto mensual inmutable de competencias.
// A lo sumo uno por (user_id, year, month); la unicidad la garantiza
// un indice unico en la base y nunca se actualiza tras crearse.
type MonthlyResult struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Level      int         `json:"level"` // 1-5
	Skills     SkillScores `json:"skills"`
	Commentary string      `json:"commentary,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
