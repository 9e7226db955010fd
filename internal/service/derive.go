package service

import (
	"fmt"

	"talent-track/internal/domain"
)

// Derivation es el nivel y comentario que acompanan a un vector de
// competencias.
type Derivation struct {
	Level      int
	Commentary string
}

// DeriveResult calcula nivel (1-5) y comentario a partir del vector.
func DeriveResult(scores domain.SkillScores) Derivation {
	return Derivation{
		Level:      deriveLevel(scores),
		Commentary: deriveCommentary(scores),
	}
}

func deriveLevel(scores domain.SkillScores) int {
	sum := 0
	for _, skill := range domain.AllSkills {
		sum += scores[skill]
	}
	mean := float64(sum) / float64(len(domain.AllSkills))
	level := int(mean/20) + 1
	if level > 5 {
		level = 5
	}
	return level
}

// deriveCommentary arma un mensaje corto con la mejor y peor dimension.
// Los empates se resuelven por el orden canonico de AllSkills.
func deriveCommentary(scores domain.SkillScores) string {
	top, bottom := domain.AllSkills[0], domain.AllSkills[0]
	for _, skill := range domain.AllSkills[1:] {
		if scores[skill] > scores[top] {
			top = skill
		}
		if scores[skill] < scores[bottom] {
			bottom = skill
		}
	}

	if scores[top] == 0 {
		return "Aun no hay suficiente informacion para un analisis. Segui respondiendo tus cuestionarios semanales para desbloquearlo."
	}

	msg := fmt.Sprintf("Tu dimension mas fuerte es %s con %d puntos.", top.DisplayName(), scores[top])
	if scores[bottom] < scores[top] {
		msg += fmt.Sprintf(" Un buen proximo paso es desarrollar %s.", bottom.DisplayName())
	}
	return msg
}
