package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"talent-track/internal/llm"
)

// EvaluationKind indica que rubrica usar al puntuar un texto libre.
type EvaluationKind string

const (
	EvaluationKindGratitude EvaluationKind = "gratitude"
	EvaluationKindWeakness  EvaluationKind = "weakness"
)

// Evaluator puntua la calidad de un texto contra un presupuesto maximo.
type Evaluator interface {
	Available() bool
	Evaluate(ctx context.Context, content string, kind EvaluationKind, maxScore int) int
}

// ContentEvaluator puntua texto con el LLM cuando hay cliente configurado
// y con credito parcial deterministico (maxScore/2) cuando no lo hay o la
// llamada falla. Nunca devuelve error: la puntuacion tiene que estar
// disponible aunque el proveedor este degradado.
type ContentEvaluator struct {
	client llm.Client
	logger *zap.Logger
}

func NewContentEvaluator(client llm.Client, logger *zap.Logger) *ContentEvaluator {
	return &ContentEvaluator{client: client, logger: logger}
}

// Available informa si el proveedor externo esta configurado. Se decide en
// construccion, nunca leyendo estado ambiental dentro del scoring.
func (e *ContentEvaluator) Available() bool {
	return e.client != nil
}

// maxTokens corto: la respuesta esperada son solo digitos.
const evaluateMaxTokens = 8

func (e *ContentEvaluator) Evaluate(ctx context.Context, content string, kind EvaluationKind, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	// Texto vacio puntua 0 siempre, antes de cualquier llamada.
	if strings.TrimSpace(content) == "" {
		return 0
	}
	if !e.Available() {
		return maxScore / 2
	}

	raw, err := e.client.Generate(ctx, buildEvaluatePrompt(content, kind, maxScore), evaluateMaxTokens)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("content evaluation call failed, using fallback",
				zap.String("kind", string(kind)), zap.Error(err))
		}
		return maxScore / 2
	}

	score, ok := parseFirstScore(raw)
	if !ok {
		if e.logger != nil {
			e.logger.Warn("content evaluation response without score, using fallback",
				zap.String("kind", string(kind)), zap.String("raw", raw))
		}
		return maxScore / 2
	}

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func buildEvaluatePrompt(content string, kind EvaluationKind, maxScore int) string {
	var rubric string
	switch kind {
	case EvaluationKindWeakness:
		rubric = "Evalua la reflexion de un estudiante sobre su propia debilidad segun: especificidad, claridad del razonamiento y autoconciencia."
	default:
		rubric = "Evalua un mensaje de agradecimiento de un estudiante segun: episodio concreto, claridad del motivo y sinceridad emocional."
	}

	return fmt.Sprintf(`%s
Asigna un puntaje entero entre 0 y %d.
Responde SOLO con digitos, sin texto adicional.

Texto a evaluar:
%s`, rubric, maxScore, strings.TrimSpace(content))
}
