package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/service"
)

// AdviceHandler genera consejos para un vector de competencias arbitrario.
type AdviceHandler struct {
	logger *zap.Logger
	advice *service.AdviceService
}

func NewAdviceHandler(logger *zap.Logger, advice *service.AdviceService) *AdviceHandler {
	return &AdviceHandler{logger: logger, advice: advice}
}

// Advise maneja POST /advice. Valida el vector antes de computar nada:
// una dimension desconocida o un valor fuera de rango es 400 directo.
func (h *AdviceHandler) Advise(c *gin.Context) {
	var req struct {
		Scores map[string]int `json:"scores" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid advice request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	scores, err := domain.SkillScoresFromNamed(req.Scores)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advice := h.advice.AdviseAll(c.Request.Context(), scores)

	named := make(map[string]string, len(advice))
	for skill, text := range advice {
		named[skill.String()] = text
	}
	c.JSON(http.StatusOK, gin.H{"advice": named})
}
