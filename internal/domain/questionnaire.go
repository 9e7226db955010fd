package domain

import "time"

const (
	QuestionnaireStatusPending   = "pending"
	QuestionnaireStatusCompleted = "completed"
)

// GratitudeEntry es un agradecimiento dirigido a otra persona.
type GratitudeEntry struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// Answers agrupa las respuestas estructuradas de una semana.
// Los punteros distinguen "no contestado" de cero/false.
type Answers struct {
	SelfRating         *int             `json:"self_rating,omitempty"` // autoevaluacion 1-5
	WeeklyReflection   string           `json:"weekly_reflection,omitempty"`
	InterviewConducted bool             `json:"interview_conducted"`
	ExtractSuccess     *bool            `json:"extract_success,omitempty"` // solo si condujo entrevista
	InterviewReceived  bool             `json:"interview_received"`
	SpeakSuccess       *bool            `json:"speak_success,omitempty"` // solo si recibio entrevista
	Weakness           string           `json:"weakness,omitempty"`
	Gratitude          []GratitudeEntry `json:"gratitude,omitempty"`
}

// Questionnaire es el autoreporte semanal de un estudiante.
// Invariante: Answers != nil sii Status == completed.
type Questionnaire struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Week        int        `json:"week"`
	Title       string     `json:"title"`
	Deadline    time.Time  `json:"deadline"`
	Status      string     `json:"status"`
	Answers     *Answers   `json:"answers,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsCompleted indica si el cuestionario ya fue respondido.
func (q Questionnaire) IsCompleted() bool {
	return q.Status == QuestionnaireStatusCompleted && q.Answers != nil
}
