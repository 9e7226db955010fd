package http

import (
	"net/http"
	"testing"

	"talent-track/internal/domain"
)

func fullScores(value int) map[string]int {
	out := make(map[string]int, len(domain.AllSkills))
	for _, skill := range domain.AllSkills {
		out[skill.String()] = value
	}
	return out
}

func TestAdvice_ReturnsOnePerDimension(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, "u1", domain.RoleStudent)

	w := f.do(http.MethodPost, "/advice", token, map[string]any{"scores": fullScores(50)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	advice, ok := body["advice"].(map[string]any)
	if !ok {
		t.Fatalf("expected advice object, got %v", body)
	}
	if len(advice) != len(domain.AllSkills) {
		t.Fatalf("expected %d entries, got %d", len(domain.AllSkills), len(advice))
	}
	for _, skill := range domain.AllSkills {
		text, ok := advice[skill.String()].(string)
		if !ok || text == "" {
			t.Fatalf("missing advice for %s: %v", skill, advice)
		}
	}
}

func TestAdvice_PartialVectorIsAccepted(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, "u1", domain.RoleStudent)

	w := f.do(http.MethodPost, "/advice", token, map[string]any{
		"scores": map[string]int{"dialogue": 80},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	advice := body["advice"].(map[string]any)
	if len(advice) != 1 {
		t.Fatalf("expected 1 entry, got %v", advice)
	}
}

func TestAdvice_Validation(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, "u1", domain.RoleStudent)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing scores", body: map[string]any{}},
		{name: "unknown dimension", body: map[string]any{"scores": map[string]int{"liderazgo": 50}}},
		{name: "score below range", body: map[string]any{"scores": map[string]int{"dialogue": -1}}},
		{name: "score above range", body: map[string]any{"scores": map[string]int{"dialogue": 101}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/advice", token, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
