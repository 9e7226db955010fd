package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/llm"
)

// AdviceService genera consejos por dimension a partir de un vector de
// competencias arbitrario. Es stateless e independiente del finalizador.
type AdviceService struct {
	client llm.Client
	logger *zap.Logger
}

func NewAdviceService(client llm.Client, logger *zap.Logger) *AdviceService {
	return &AdviceService{client: client, logger: logger}
}

const adviceMaxTokens = 700

// AdviseAll devuelve un consejo por dimension. Con el LLM disponible hace
// una sola llamada para todo el vector (frases diferenciadas); ante
// cualquier fallo de llamada o parseo cae al set deterministico por rangos.
func (s *AdviceService) AdviseAll(ctx context.Context, scores domain.SkillScores) map[domain.Skill]string {
	if s.client == nil {
		return s.fallbackAll(scores)
	}

	raw, err := s.client.Generate(ctx, buildAdvicePrompt(scores), adviceMaxTokens)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("advice call failed, using fallback", zap.Error(err))
		}
		return s.fallbackAll(scores)
	}

	parsed, ok := parseAdviceResponse(raw)
	if !ok {
		if s.logger != nil {
			s.logger.Warn("advice response unparseable, using fallback", zap.String("raw", raw))
		}
		return s.fallbackAll(scores)
	}

	out := make(map[domain.Skill]string, len(scores))
	for skill, score := range scores {
		if text, found := parsed[skill.String()]; found && strings.TrimSpace(text) != "" {
			out[skill] = strings.TrimSpace(text)
			continue
		}
		out[skill] = bucketAdvice(skill, score)
	}
	return out
}

func (s *AdviceService) fallbackAll(scores domain.SkillScores) map[domain.Skill]string {
	out := make(map[domain.Skill]string, len(scores))
	for skill, score := range scores {
		out[skill] = bucketAdvice(skill, score)
	}
	return out
}

// bucketAdvice es el consejo deterministico por rango de puntaje.
func bucketAdvice(skill domain.Skill, score int) string {
	name := skill.DisplayName()
	switch {
	case score >= 70:
		return fmt.Sprintf("Excelente nivel de %s. Mantene el ritmo y aprovecha para ayudar a tus companeros.", name)
	case score >= 40:
		return fmt.Sprintf("Vas bien en %s. Una mejora concreta: reservale un momento fijo cada semana y revisa que funciono.", name)
	default:
		return fmt.Sprintf("En %s estas dando los primeros pasos. Empeza con algo chico: una accion puntual esta semana alcanza.", name)
	}
}

func buildAdvicePrompt(scores domain.SkillScores) string {
	var b strings.Builder
	b.WriteString("Sos un mentor de estudiantes. Para cada dimension con su puntaje (0-100), escribi un consejo breve y accionable en espanol.\n")
	b.WriteString("Responde SOLO un objeto JSON cuyas claves sean exactamente los nombres de dimension y cuyos valores sean el consejo.\n\nPuntajes:\n")
	for _, skill := range domain.AllSkills {
		score, ok := scores[skill]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d\n", skill.String(), score)
	}
	return b.String()
}

// parseAdviceResponse intenta leer el objeto {dimension: consejo} de la
// respuesta, tolerando fences y texto alrededor.
func parseAdviceResponse(raw string) (map[string]string, bool) {
	cleaned := cleanLLMJSONResponse(raw)
	candidate := extractFirstJSONObject(cleaned)
	if candidate == "" {
		candidate = extractFirstJSONObject(raw)
	}
	if candidate == "" {
		return nil, false
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, false
	}
	if len(parsed) == 0 {
		return nil, false
	}
	return parsed, true
}
