package service

import (
	"context"
	"strings"

	"talent-track/internal/domain"
)

// Presupuestos del puntaje de humildad: 15 por cantidad de agradecimientos,
// 55 por contenido de agradecimientos y 30 por la reflexion de debilidad.
const (
	gratitudeContentBudget = 55
	weaknessBudget         = 30
)

// HumilityBreakdown detalla como se compuso el puntaje de humildad.
type HumilityBreakdown struct {
	Total         int              `json:"total"`
	CountScore    int              `json:"count_score"`
	ContentScore  int              `json:"content_score"`
	WeaknessScore int              `json:"weakness_score"`
	Details       []GratitudeScore `json:"details,omitempty"`
}

// GratitudeScore es el puntaje individual de un agradecimiento.
type GratitudeScore struct {
	Target string `json:"target"`
	Budget int    `json:"budget"`
	Score  int    `json:"score"`
}

// HumilityComposer combina cantidad y contenido de agradecimientos mas la
// reflexion de debilidad en un puntaje 0-100.
type HumilityComposer struct {
	evaluator Evaluator
}

func NewHumilityComposer(evaluator Evaluator) *HumilityComposer {
	return &HumilityComposer{evaluator: evaluator}
}

func (c *HumilityComposer) Compose(ctx context.Context, gratitude []domain.GratitudeEntry, weakness string) HumilityBreakdown {
	out := HumilityBreakdown{
		CountScore: gratitudeCountScore(len(gratitude)),
	}

	if n := len(gratitude); n > 0 {
		// El presupuesto de contenido se reparte por division entera.
		perMessage := gratitudeContentBudget / n
		for _, entry := range gratitude {
			score := c.evaluator.Evaluate(ctx, entry.Message, EvaluationKindGratitude, perMessage)
			out.Details = append(out.Details, GratitudeScore{
				Target: entry.Target,
				Budget: perMessage,
				Score:  score,
			})
			out.ContentScore += score
		}
		// Red de seguridad: la suma no puede superar el presupuesto.
		if out.ContentScore > gratitudeContentBudget {
			out.ContentScore = gratitudeContentBudget
		}
	}

	if strings.TrimSpace(weakness) != "" {
		out.WeaknessScore = c.evaluator.Evaluate(ctx, weakness, EvaluationKindWeakness, weaknessBudget)
	}

	out.Total = out.CountScore + out.ContentScore + out.WeaknessScore
	return out
}

// gratitudeCountScore mapea cantidad de agradecimientos a puntos fijos.
func gratitudeCountScore(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 5
	case count == 2:
		return 10
	default:
		return 15
	}
}
