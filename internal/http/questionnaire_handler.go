package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/repository"
)

// QuestionnaireHandler expone los autoreportes semanales.
type QuestionnaireHandler struct {
	logger         *zap.Logger
	questionnaires repository.QuestionnaireRepository
}

func NewQuestionnaireHandler(logger *zap.Logger, questionnaires repository.QuestionnaireRepository) *QuestionnaireHandler {
	return &QuestionnaireHandler{logger: logger, questionnaires: questionnaires}
}

// List maneja GET /questionnaires.
func (h *QuestionnaireHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	questionnaires, err := h.questionnaires.FindByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list questionnaires failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list questionnaires"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaires": questionnaires})
}

// GetByID maneja GET /questionnaires/:id.
func (h *QuestionnaireHandler) GetByID(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	q, err := h.questionnaires.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		h.logger.Error("get questionnaire failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch questionnaire"})
		return
	}

	if claims.Role == domain.RoleStudent && q.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaire": q})
}

type submitAnswersRequest struct {
	SelfRating         *int                    `json:"self_rating" binding:"required"`
	WeeklyReflection   string                  `json:"weekly_reflection"`
	InterviewConducted bool                    `json:"interview_conducted"`
	ExtractSuccess     *bool                   `json:"extract_success"`
	InterviewReceived  bool                    `json:"interview_received"`
	SpeakSuccess       *bool                   `json:"speak_success"`
	Weakness           string                  `json:"weakness"`
	Gratitude          []domain.GratitudeEntry `json:"gratitude"`
}

// Submit maneja POST /questionnaires/:id/submit y PUT /questionnaires/:id.
// Solo el dueno puede responder, y solo antes del deadline. Reenviar antes
// del deadline pisa las respuestas pero conserva el primer submitted_at.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req submitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if *req.SelfRating < 1 || *req.SelfRating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "self_rating must be between 1 and 5"})
		return
	}

	q, err := h.questionnaires.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		h.logger.Error("get questionnaire failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch questionnaire"})
		return
	}

	if q.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only submit your own questionnaires"})
		return
	}

	now := time.Now().UTC()
	if now.After(q.Deadline) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionnaire deadline has passed"})
		return
	}

	q.Answers = &domain.Answers{
		SelfRating:         req.SelfRating,
		WeeklyReflection:   req.WeeklyReflection,
		InterviewConducted: req.InterviewConducted,
		ExtractSuccess:     req.ExtractSuccess,
		InterviewReceived:  req.InterviewReceived,
		SpeakSuccess:       req.SpeakSuccess,
		Weakness:           req.Weakness,
		Gratitude:          req.Gratitude,
	}
	q.Status = domain.QuestionnaireStatusCompleted
	if q.SubmittedAt == nil {
		q.SubmittedAt = &now
	}
	q.UpdatedAt = now

	if err := h.questionnaires.UpdateAnswers(c.Request.Context(), q); err != nil {
		h.logger.Error("submit questionnaire failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaire": q})
}
