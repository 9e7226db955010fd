package service

import (
	"math"

	"talent-track/internal/domain"
)

// SkillAggregator reduce los cuestionarios completados de un periodo a las
// seis dimensiones derivadas; la humildad llega ya compuesta y pasa directo.
// Solo cuestionarios con status completed deben llegar aqui.
type SkillAggregator struct{}

func (SkillAggregator) Aggregate(records []domain.Questionnaire, humility int) domain.SkillScores {
	scores := domain.SkillScores{
		domain.SkillStrategicPlanning: 0,
		domain.SkillProblemFraming:    0,
		domain.SkillInvolvement:       0,
		domain.SkillDialogue:          0,
		domain.SkillExecution:         0,
		domain.SkillCompletion:        0,
		domain.SkillHumility:          humility,
	}
	if len(records) == 0 {
		return scores
	}

	planning := selfRatingScore(records)
	// Planificacion estrategica y ejecucion comparten formula: ambas salen
	// del promedio de la autoevaluacion semanal.
	scores[domain.SkillStrategicPlanning] = planning
	scores[domain.SkillExecution] = planning
	scores[domain.SkillInvolvement] = involvementScore(records)
	scores[domain.SkillDialogue] = dialogueScore(records)
	scores[domain.SkillProblemFraming] = problemFramingScore(records)
	// Aqui solo llegan periodos completados, asi que cumplimiento es total.
	scores[domain.SkillCompletion] = 100

	return scores
}

// selfRatingScore normaliza el promedio de autoevaluaciones (1-5) a 0-100.
func selfRatingScore(records []domain.Questionnaire) int {
	sum, count := 0, 0
	for _, r := range records {
		if r.Answers == nil || r.Answers.SelfRating == nil {
			continue
		}
		sum += *r.Answers.SelfRating
		count++
	}
	if count == 0 {
		return 0
	}
	mean := float64(sum) / float64(count)
	return int(math.Round((mean - 1) / 4 * 100))
}

// involvementScore cuenta banderas de entrevista activas sobre el maximo
// posible (dos por cuestionario).
func involvementScore(records []domain.Questionnaire) int {
	flags := 0
	for _, r := range records {
		if r.Answers == nil {
			continue
		}
		if r.Answers.InterviewConducted {
			flags++
		}
		if r.Answers.InterviewReceived {
			flags++
		}
	}
	ratio := float64(flags) / float64(2*len(records))
	return int(math.Round(ratio * 100))
}

// dialogueScore promedia la tasa de extraccion (entrevistas conducidas) y
// la tasa de expresion (entrevistas recibidas). Cada tasa vale 0 si no hubo
// intentos propios, para no dividir por cero antes de promediar.
func dialogueScore(records []domain.Questionnaire) int {
	extractSuccess, extractAttempts := interviewOutcomes(records, true)
	speakSuccess, speakAttempts := interviewOutcomes(records, false)

	if extractAttempts+speakAttempts == 0 {
		return 0
	}

	extractRate := 0.0
	if extractAttempts > 0 {
		extractRate = float64(extractSuccess) / float64(extractAttempts)
	}
	speakRate := 0.0
	if speakAttempts > 0 {
		speakRate = float64(speakSuccess) / float64(speakAttempts)
	}

	return int(math.Round((extractRate + speakRate) / 2 * 100))
}

func problemFramingScore(records []domain.Questionnaire) int {
	success, attempts := interviewOutcomes(records, true)
	if attempts == 0 {
		return 0
	}
	return int(math.Round(float64(success) / float64(attempts) * 100))
}

// interviewOutcomes cuenta intentos y exitos de entrevista. Un intento es un
// cuestionario con la bandera correspondiente activa y resultado informado.
func interviewOutcomes(records []domain.Questionnaire, conducted bool) (success, attempts int) {
	for _, r := range records {
		if r.Answers == nil {
			continue
		}
		var flag bool
		var outcome *bool
		if conducted {
			flag, outcome = r.Answers.InterviewConducted, r.Answers.ExtractSuccess
		} else {
			flag, outcome = r.Answers.InterviewReceived, r.Answers.SpeakSuccess
		}
		if !flag || outcome == nil {
			continue
		}
		attempts++
		if *outcome {
			success++
		}
	}
	return success, attempts
}
