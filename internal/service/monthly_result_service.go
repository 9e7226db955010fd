package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/email"
	"talent-track/internal/repository"
)

// FinalizeParams identifica el periodo a cerrar. Year/Month en cero toman
// el periodo calendario actual. Humility permite inyectar un puntaje ya
// compuesto; en nil se compone desde los cuestionarios del periodo.
type FinalizeParams struct {
	UserID   string
	Year     int
	Month    int
	Humility *int
}

// MonthlyResultService orquesta el cierre mensual: junta los cuestionarios
// completados del periodo, compone humildad, agrega el vector, deriva nivel
// y comentario, y persiste la foto inmutable exactamente una vez.
type MonthlyResultService struct {
	results        repository.MonthlyResultRepository
	questionnaires repository.QuestionnaireRepository
	users          repository.UserRepository
	composer       *HumilityComposer
	aggregator     SkillAggregator
	sender         email.Sender
	logger         *zap.Logger
	now            func() time.Time
}

func NewMonthlyResultService(
	results repository.MonthlyResultRepository,
	questionnaires repository.QuestionnaireRepository,
	users repository.UserRepository,
	composer *HumilityComposer,
	sender email.Sender,
	logger *zap.Logger,
) *MonthlyResultService {
	return &MonthlyResultService{
		results:        results,
		questionnaires: questionnaires,
		users:          users,
		composer:       composer,
		sender:         sender,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Finalize cierra el periodo (user, year, month). Estados posibles del
// periodo: ausente -> finalizado, sin vuelta atras. Un segundo intento
// devuelve ErrAlreadyFinalized, incluso bajo concurrencia: el chequeo
// previo es best-effort y el indice unico de la base decide la carrera.
func (s *MonthlyResultService) Finalize(ctx context.Context, p FinalizeParams) (domain.MonthlyResult, error) {
	now := s.now()
	year, month := p.Year, p.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 || year < 2000 {
		return domain.MonthlyResult{}, fmt.Errorf("%w: %d-%d", domain.ErrInvalidPeriod, year, month)
	}
	if p.Humility != nil && (*p.Humility < 0 || *p.Humility > 100) {
		return domain.MonthlyResult{}, fmt.Errorf("%w: humility=%d", domain.ErrScoreOutOfRange, *p.Humility)
	}

	_, err := s.results.GetByPeriod(ctx, p.UserID, year, month)
	switch {
	case err == nil:
		return domain.MonthlyResult{}, domain.ErrAlreadyFinalized
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.MonthlyResult{}, fmt.Errorf("check existing result: %w", err)
	}

	records, err := s.questionnaires.FindCompletedInPeriod(ctx, p.UserID, year, time.Month(month))
	if err != nil {
		return domain.MonthlyResult{}, fmt.Errorf("load questionnaires: %w", err)
	}
	if len(records) == 0 {
		return domain.MonthlyResult{}, domain.ErrNoCompletedQuestionnaires
	}

	humility := 0
	if p.Humility != nil {
		humility = *p.Humility
	} else {
		breakdown := s.composer.Compose(ctx, collectGratitude(records), latestWeakness(records))
		humility = breakdown.Total
	}

	scores := s.aggregator.Aggregate(records, humility)
	derivation := DeriveResult(scores)

	result := domain.MonthlyResult{
		ID:         uuid.NewString(),
		UserID:     p.UserID,
		Year:       year,
		Month:      month,
		Level:      derivation.Level,
		Skills:     scores,
		Commentary: derivation.Commentary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.results.Create(ctx, result); err != nil {
		if errors.Is(err, domain.ErrAlreadyFinalized) {
			// Perdimos la carrera contra otra finalizacion del mismo periodo.
			return domain.MonthlyResult{}, domain.ErrAlreadyFinalized
		}
		return domain.MonthlyResult{}, fmt.Errorf("persist monthly result: %w", err)
	}

	s.notify(ctx, result)
	return result, nil
}

// notify avisa por correo que el reporte mensual esta listo. Es best-effort:
// el resultado ya quedo persistido y un fallo de SMTP no lo revierte.
func (s *MonthlyResultService) notify(ctx context.Context, result domain.MonthlyResult) {
	if s.sender == nil || s.users == nil {
		return
	}
	user, err := s.users.GetByID(ctx, result.UserID)
	if err != nil {
		s.logger.Warn("monthly result notice: user lookup failed",
			zap.String("user_id", result.UserID), zap.Error(err))
		return
	}
	if err := s.sender.SendMonthlyResultNotice(ctx, user.Email, user.DisplayName, result.Year, result.Month, result.Level); err != nil {
		s.logger.Warn("monthly result notice failed",
			zap.String("user_id", result.UserID), zap.Error(err))
	}
}

// collectGratitude junta los agradecimientos de todos los cuestionarios
// del periodo en orden de semana.
func collectGratitude(records []domain.Questionnaire) []domain.GratitudeEntry {
	var out []domain.GratitudeEntry
	for _, r := range records {
		if r.Answers == nil {
			continue
		}
		out = append(out, r.Answers.Gratitude...)
	}
	return out
}

// latestWeakness devuelve la reflexion de debilidad mas reciente no vacia.
func latestWeakness(records []domain.Questionnaire) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Answers == nil {
			continue
		}
		if w := records[i].Answers.Weakness; w != "" {
			return w
		}
	}
	return ""
}
