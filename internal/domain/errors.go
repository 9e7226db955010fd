package domain

import "errors"

// Errores de dominio que los handlers traducen a respuestas HTTP.
// Los fallos del proveedor de evaluacion nunca llegan aqui: el
// evaluador los absorbe con su fallback deterministico.
var (
	ErrUnknownSkill              = errors.New("unknown skill")
	ErrInvalidPeriod             = errors.New("invalid calendar period")
	ErrScoreOutOfRange           = errors.New("score out of range")
	ErrAlreadyFinalized          = errors.New("monthly result already finalized for period")
	ErrNoCompletedQuestionnaires = errors.New("no completed questionnaires to finalize")
	ErrDeadlinePassed            = errors.New("questionnaire deadline has passed")
	ErrNotOwner                  = errors.New("resource belongs to another user")
)
