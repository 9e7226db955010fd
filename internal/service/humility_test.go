package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"talent-track/internal/domain"
	"talent-track/internal/llm"
)

func TestHumilityComposer_EmptyInputsAreZero(t *testing.T) {
	composer := NewHumilityComposer(NewContentEvaluator(nil, nil))

	got := composer.Compose(context.Background(), nil, "")
	if got.Total != 0 || got.CountScore != 0 || got.ContentScore != 0 || got.WeaknessScore != 0 {
		t.Fatalf("expected all-zero breakdown, got %+v", got)
	}
}

func TestHumilityComposer_CountScoreLookup(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{count: 0, want: 0},
		{count: 1, want: 5},
		{count: 2, want: 10},
		{count: 3, want: 15},
		{count: 7, want: 15},
	}

	composer := NewHumilityComposer(NewContentEvaluator(nil, nil))
	for _, tt := range tests {
		entries := make([]domain.GratitudeEntry, tt.count)
		for i := range entries {
			entries[i] = domain.GratitudeEntry{Target: "companero", Message: "gracias por la ayuda"}
		}
		got := composer.Compose(context.Background(), entries, "")
		if got.CountScore != tt.want {
			t.Fatalf("count=%d: expected count score %d, got %d", tt.count, tt.want, got.CountScore)
		}
	}
}

// Escenario de referencia: 3 agradecimientos con el evaluador no disponible.
// Presupuesto por mensaje 55/3=18, fallback 9 cada uno => contenido 27,
// sin debilidad => total 15+27+0 = 42.
func TestHumilityComposer_ThreeTargetsFallbackScenario(t *testing.T) {
	composer := NewHumilityComposer(NewContentEvaluator(nil, nil))

	entries := []domain.GratitudeEntry{
		{Target: "ana", Message: "me ayudo a preparar la presentacion"},
		{Target: "luis", Message: "me explico el ejercicio de matematica"},
		{Target: "sofia", Message: "me acompano cuando estaba desanimado"},
	}

	got := composer.Compose(context.Background(), entries, "")
	if got.CountScore != 15 {
		t.Fatalf("expected count score 15, got %d", got.CountScore)
	}
	if got.ContentScore != 27 {
		t.Fatalf("expected content score 27, got %d", got.ContentScore)
	}
	if got.Total != 42 {
		t.Fatalf("expected total 42, got %d", got.Total)
	}
	if len(got.Details) != 3 {
		t.Fatalf("expected 3 details, got %d", len(got.Details))
	}
	for _, d := range got.Details {
		if d.Budget != 18 || d.Score != 9 {
			t.Fatalf("expected per-message budget 18 score 9, got %+v", d)
		}
	}
}

func TestHumilityComposer_ContentScoreCappedAtBudget(t *testing.T) {
	// Evaluador que devuelve siempre el maximo pedido: con 3 mensajes de
	// presupuesto 18 la suma seria 54; forzamos el tope con un evaluador
	// que ignora el presupuesto.
	composer := NewHumilityComposer(maxIgnoringEvaluator{})

	entries := []domain.GratitudeEntry{
		{Target: "a", Message: "x"},
		{Target: "b", Message: "y"},
		{Target: "c", Message: "z"},
	}
	got := composer.Compose(context.Background(), entries, "")
	if got.ContentScore != gratitudeContentBudget {
		t.Fatalf("expected content capped at %d, got %d", gratitudeContentBudget, got.ContentScore)
	}
}

// maxIgnoringEvaluator simula un evaluador roto que devuelve mas que el
// presupuesto por mensaje; el compositor debe aplicar el tope igual.
type maxIgnoringEvaluator struct{}

func (maxIgnoringEvaluator) Available() bool { return true }
func (maxIgnoringEvaluator) Evaluate(_ context.Context, _ string, _ EvaluationKind, _ int) int {
	return 100
}

func TestHumilityComposer_WeaknessScored(t *testing.T) {
	composer := NewHumilityComposer(NewContentEvaluator(&llm.MockClient{Response: "22"}, nil))

	got := composer.Compose(context.Background(), nil, "me cuesta pedir ayuda cuando me trabo")
	if got.WeaknessScore != 22 {
		t.Fatalf("expected weakness score 22, got %d", got.WeaknessScore)
	}
	if got.Total != 22 {
		t.Fatalf("expected total 22, got %d", got.Total)
	}
}

// Propiedad: el total queda en [0,100] para cualquier cantidad de
// agradecimientos (0..50) y cualquier texto de debilidad.
func TestHumilityComposer_TotalAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	longText := strings.Repeat("una frase larga y repetida ", 200)

	responses := []string{"0", "5", "9", "18", "30", "999", "sin numero", ""}

	for i := 0; i < 200; i++ {
		n := rng.Intn(51)
		entries := make([]domain.GratitudeEntry, n)
		for j := range entries {
			entries[j] = domain.GratitudeEntry{Target: "t", Message: longText}
		}

		var evaluator Evaluator
		if rng.Intn(2) == 0 {
			evaluator = NewContentEvaluator(nil, nil)
		} else {
			evaluator = NewContentEvaluator(&llm.MockClient{Response: responses[rng.Intn(len(responses))]}, nil)
		}

		weakness := ""
		if rng.Intn(2) == 0 {
			weakness = longText
		}

		got := NewHumilityComposer(evaluator).Compose(context.Background(), entries, weakness)
		if got.Total < 0 || got.Total > 100 {
			t.Fatalf("iteration %d (n=%d): total %d out of [0,100]", i, n, got.Total)
		}
	}
}
