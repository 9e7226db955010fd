package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/repository"
	"talent-track/internal/service"
)

// ResultHandler expone los resultados mensuales y la finalizacion.
type ResultHandler struct {
	logger  *zap.Logger
	results repository.MonthlyResultRepository
	svc     *service.MonthlyResultService
}

func NewResultHandler(logger *zap.Logger, results repository.MonthlyResultRepository, svc *service.MonthlyResultService) *ResultHandler {
	return &ResultHandler{logger: logger, results: results, svc: svc}
}

// List maneja GET /monthly-results.
func (h *ResultHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	results, err := h.results.FindByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list monthly results failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Current maneja GET /monthly-results/current. Devuelve null si el periodo
// en curso aun no fue finalizado.
func (h *ResultHandler) Current(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	now := time.Now().UTC()
	result, err := h.results.GetByPeriod(c.Request.Context(), claims.UserID, now.Year(), int(now.Month()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{"result": nil})
			return
		}
		h.logger.Error("get current result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetByID maneja GET /monthly-results/:id.
func (h *ResultHandler) GetByID(c *gin.Context) {
	result, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Similar maneja GET /monthly-results/:id/similar y devuelve los perfiles
// mas parecidos por distancia coseno del vector de competencias.
func (h *ResultHandler) Similar(c *gin.Context) {
	result, ok := h.loadOwned(c)
	if !ok {
		return
	}

	k := 5
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be between 1 and 20"})
			return
		}
		k = parsed
	}

	similar, err := h.results.FindSimilar(c.Request.Context(), pgvector.NewVector(result.Skills.Vector()), result.ID, k)
	if err != nil {
		h.logger.Error("find similar results failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": similar})
}

// Finalize maneja POST /monthly-results/finalize.
func (h *ResultHandler) Finalize(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Year     int  `json:"year"`
		Month    int  `json:"month"`
		Humility *int `json:"humility_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.logger.Warn("invalid finalize request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.svc.Finalize(c.Request.Context(), service.FinalizeParams{
		UserID:   claims.UserID,
		Year:     req.Year,
		Month:    req.Month,
		Humility: req.Humility,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": "monthly result already finalized"})
		case errors.Is(err, domain.ErrNoCompletedQuestionnaires):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no completed questionnaires for period"})
		case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrScoreOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("finalize failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not finalize period"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// loadOwned carga un resultado y aplica el chequeo de propiedad: los
// estudiantes solo ven lo suyo, docentes y admins ven todo.
func (h *ResultHandler) loadOwned(c *gin.Context) (domain.MonthlyResult, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.MonthlyResult{}, false
	}

	result, err := h.results.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "monthly result not found"})
			return domain.MonthlyResult{}, false
		}
		h.logger.Error("get monthly result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch result"})
		return domain.MonthlyResult{}, false
	}

	if claims.Role == domain.RoleStudent && result.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return domain.MonthlyResult{}, false
	}
	return result, true
}
