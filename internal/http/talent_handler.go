package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/repository"
)

// TalentHandler expone el perfil de talento del usuario.
type TalentHandler struct {
	logger  *zap.Logger
	talents repository.TalentResultRepository
}

func NewTalentHandler(logger *zap.Logger, talents repository.TalentResultRepository) *TalentHandler {
	return &TalentHandler{logger: logger, talents: talents}
}

// Get maneja GET /talent-result. Devuelve null si aun no existe.
func (h *TalentHandler) Get(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	result, err := h.talents.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{"result": nil})
			return
		}
		h.logger.Error("get talent result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch talent result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Upsert maneja POST /talent-result: crea o actualiza el perfil del usuario.
func (h *TalentHandler) Upsert(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		TalentType  string   `json:"talent_type" binding:"required"`
		TalentName  string   `json:"talent_name" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Keywords    []string `json:"keywords"`
		Strengths   []string `json:"strengths"`
		NextSteps   []string `json:"next_steps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid talent result request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	result := domain.TalentResult{
		ID:          uuid.NewString(),
		UserID:      claims.UserID,
		TalentType:  req.TalentType,
		TalentName:  req.TalentName,
		Description: req.Description,
		Keywords:    req.Keywords,
		Strengths:   req.Strengths,
		NextSteps:   req.NextSteps,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.talents.Upsert(c.Request.Context(), result); err != nil {
		h.logger.Error("upsert talent result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save talent result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
