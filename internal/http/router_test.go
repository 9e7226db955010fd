package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "secreto-de-prueba"

// --- fakes de repositorio para el router ---

type fakeResultRepo struct {
	mu      sync.Mutex
	results []domain.MonthlyResult
	similar []domain.MonthlyResult
}

func (r *fakeResultRepo) Create(_ context.Context, result domain.MonthlyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.results {
		if m.UserID == result.UserID && m.Year == result.Year && m.Month == result.Month {
			return domain.ErrAlreadyFinalized
		}
	}
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) GetByID(_ context.Context, id string) (domain.MonthlyResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.results {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.MonthlyResult{}, pgx.ErrNoRows
}

func (r *fakeResultRepo) GetByPeriod(_ context.Context, userID string, year, month int) (domain.MonthlyResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.results {
		if m.UserID == userID && m.Year == year && m.Month == month {
			return m, nil
		}
	}
	return domain.MonthlyResult{}, pgx.ErrNoRows
}

func (r *fakeResultRepo) FindByUser(_ context.Context, userID string) ([]domain.MonthlyResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MonthlyResult
	for _, m := range r.results {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindSimilar(_ context.Context, _ pgvector.Vector, excludeID string, k int) ([]domain.MonthlyResult, error) {
	var out []domain.MonthlyResult
	for _, m := range r.similar {
		if m.ID == excludeID {
			continue
		}
		out = append(out, m)
		if len(out) == k {
			break
		}
	}
	return out, nil
}

type fakeQuestionnaireStore struct {
	mu    sync.Mutex
	items map[string]domain.Questionnaire
}

func newFakeQuestionnaireStore() *fakeQuestionnaireStore {
	return &fakeQuestionnaireStore{items: make(map[string]domain.Questionnaire)}
}

func (s *fakeQuestionnaireStore) GetByID(_ context.Context, id string) (domain.Questionnaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.items[id]
	if !ok {
		return domain.Questionnaire{}, pgx.ErrNoRows
	}
	return q, nil
}

func (s *fakeQuestionnaireStore) FindByUser(_ context.Context, userID string) ([]domain.Questionnaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Questionnaire
	for _, q := range s.items {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionnaireStore) FindCompletedInPeriod(_ context.Context, userID string, _ int, _ time.Month) ([]domain.Questionnaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Questionnaire
	for _, q := range s.items {
		if q.UserID == userID && q.IsCompleted() {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionnaireStore) UpdateAnswers(_ context.Context, q domain.Questionnaire) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.items[q.ID] = q
	return nil
}

type fakeTalentRepo struct {
	mu     sync.Mutex
	byUser map[string]domain.TalentResult
}

func newFakeTalentRepo() *fakeTalentRepo {
	return &fakeTalentRepo{byUser: make(map[string]domain.TalentResult)}
}

func (r *fakeTalentRepo) GetByUserID(_ context.Context, userID string) (domain.TalentResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.byUser[userID]
	if !ok {
		return domain.TalentResult{}, pgx.ErrNoRows
	}
	return result, nil
}

func (r *fakeTalentRepo) Upsert(_ context.Context, result domain.TalentResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[result.UserID] = result
	return nil
}

// --- armado del router con dependencias falsas ---

type routerFixture struct {
	router         *gin.Engine
	jwt            *service.JWTService
	results        *fakeResultRepo
	questionnaires *fakeQuestionnaireStore
	talents        *fakeTalentRepo
}

func newRouterFixture() *routerFixture {
	logger := zap.NewNop()
	results := &fakeResultRepo{}
	questionnaires := newFakeQuestionnaireStore()
	talents := newFakeTalentRepo()

	composer := service.NewHumilityComposer(service.NewContentEvaluator(nil, nil))
	finalizer := service.NewMonthlyResultService(results, questionnaires, nil, composer, nil, logger)
	advice := service.NewAdviceService(nil, logger)
	jwtSvc := service.NewJWTService(testJWTSecret, time.Minute)

	router := NewRouter(
		logger,
		jwtSvc,
		NewQuestionnaireHandler(logger, questionnaires),
		NewResultHandler(logger, results, finalizer),
		NewAdviceHandler(logger, advice),
		NewTalentHandler(logger, talents),
	)

	return &routerFixture{
		router:         router,
		jwt:            jwtSvc,
		results:        results,
		questionnaires: questionnaires,
		talents:        talents,
	}
}

func (f *routerFixture) token(t *testing.T, userID string, role int) string {
	t.Helper()
	token, err := f.jwt.SignAccessToken(userID, userID+"@escuela.edu", role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (f *routerFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func seedResult(f *routerFixture, userID string, year, month int) domain.MonthlyResult {
	result := domain.MonthlyResult{
		ID:     fmt.Sprintf("res-%s-%d-%d", userID, year, month),
		UserID: userID,
		Year:   year,
		Month:  month,
		Level:  3,
		Skills: domain.SkillScores{
			domain.SkillStrategicPlanning: 60,
			domain.SkillProblemFraming:    50,
			domain.SkillInvolvement:       40,
			domain.SkillDialogue:          55,
			domain.SkillExecution:         60,
			domain.SkillCompletion:        100,
			domain.SkillHumility:          45,
		},
	}
	f.results.results = append(f.results.results, result)
	return result
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	f := newRouterFixture()

	w := f.do(http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/questionnaires"},
		{http.MethodGet, "/monthly-results"},
		{http.MethodGet, "/monthly-results/current"},
		{http.MethodPost, "/monthly-results/finalize"},
		{http.MethodPost, "/advice"},
		{http.MethodGet, "/talent-result"},
	}

	for _, p := range paths {
		w := f.do(p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestRouter_ResponsesAreJSON(t *testing.T) {
	f := newRouterFixture()

	w := f.do(http.MethodGet, "/healthz", "", nil)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
}
