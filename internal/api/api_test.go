package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/auth"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/speech"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubGenerator struct {
	reply string
	err   error
}

func (stub *stubGenerator) Generate(context.Context, string) (string, error) {
	return stub.reply, stub.err
}

type stubTranscriber struct {
	transcript string
	confidence float64
	err        error
}

func (stub *stubTranscriber) Transcribe(context.Context, []byte, string, string, int) (string, float64, error) {
	return stub.transcript, stub.confidence, stub.err
}

var _ speech.Transcriber = (*stubTranscriber)(nil)

func newTestApp(t *testing.T, generator ai.TextGenerator) *fiber.App {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	logger := zap.NewNop()
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	assistant := ai.NewAssistant(generator, logger)
	emotions := ai.NewEmotionAnalyzer(generator, logger)
	handler := NewHandler(database, tokens, assistant, emotions, &stubTranscriber{transcript: "안녕하세요", confidence: 0.92}, logger)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, body any, token string) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeBody(t *testing.T, response *http.Response, dest any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(dest); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"username": "user-" + email,
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", response.StatusCode)
	}
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, response, &login)
	if login.AccessToken == "" || login.TokenType != "bearer" {
		t.Fatalf("unexpected login payload: %+v", login)
	}
	return login.AccessToken
}

func TestRegisterLoginAndHealthRecordLifecycle(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})

	// Wrong password before the right one.
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "lifecycle@example.com",
		"username": "lifecycle",
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "lifecycle@example.com",
		"password": "WrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong-password login status = %d, want 401", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "lifecycle@example.com",
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, response, &login)

	// No token, uniform 401.
	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/health-records", nil, ""), -1)
	if err != nil {
		t.Fatalf("unauthenticated list failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", response.StatusCode)
	}

	// Create with measured_at omitted: server fills it.
	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/health-records", map[string]any{
		"record_type": "weight",
		"value":       70.5,
		"unit":        "kg",
	}, login.AccessToken), -1)
	if err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", response.StatusCode)
	}
	var created struct {
		ID         uint      `json:"id"`
		RecordType string    `json:"record_type"`
		Value      float64   `json:"value"`
		MeasuredAt time.Time `json:"measured_at"`
	}
	decodeBody(t, response, &created)
	if created.MeasuredAt.IsZero() {
		t.Fatalf("expected measured_at to default to now")
	}

	// Partial update leaves the rest alone.
	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/health-records/%d", created.ID),
		map[string]any{"value": 71.2}, login.AccessToken), -1)
	if err != nil {
		t.Fatalf("update record failed: %v", err)
	}
	var updated struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	}
	decodeBody(t, response, &updated)
	if updated.Value != 71.2 || updated.Unit != "kg" {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/health-records?record_type=weight", nil, login.AccessToken), -1)
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	var listed []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected listing: %+v", listed)
	}

	response, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/health-records/%d", created.ID), nil, login.AccessToken), -1)
	if err != nil {
		t.Fatalf("delete record failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/health-records/%d", created.ID), nil, login.AccessToken), -1)
	if err != nil {
		t.Fatalf("get deleted record failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted record status = %d, want 404", response.StatusCode)
	}
}

func TestHealthRecordsAreOwnerScoped(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	ownerToken := registerAndLogin(t, app, "owner@example.com")
	otherToken := registerAndLogin(t, app, "other@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/health-records", map[string]any{
		"record_type": "heart_rate",
		"value":       62,
		"unit":        "bpm",
	}, ownerToken), -1)
	if err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &created)

	// Foreign reads, updates and deletes all look like a missing row.
	paths := []struct {
		method string
		body   any
	}{
		{method: http.MethodGet},
		{method: http.MethodPatch, body: map[string]any{"value": 100}},
		{method: http.MethodDelete},
	}
	for _, attempt := range paths {
		response, err := app.Test(jsonRequest(t, attempt.method,
			fmt.Sprintf("/api/health-records/%d", created.ID), attempt.body, otherToken), -1)
		if err != nil {
			t.Fatalf("%s foreign record failed: %v", attempt.method, err)
		}
		response.Body.Close()
		if response.StatusCode != http.StatusNotFound {
			t.Fatalf("%s foreign record status = %d, want 404", attempt.method, response.StatusCode)
		}
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/health-records", nil, otherToken), -1)
	if err != nil {
		t.Fatalf("foreign list failed: %v", err)
	}
	var listed []any
	decodeBody(t, response, &listed)
	if len(listed) != 0 {
		t.Fatalf("expected empty foreign listing, got %d entries", len(listed))
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	registerAndLogin(t, app, "dup@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "DUP@example.com",
		"username": "someone-else",
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("duplicate register failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", response.StatusCode)
	}
}

func TestSymptomCheckStoresBothTurns(t *testing.T) {
	app := newTestApp(t, &stubGenerator{reply: "수분을 충분히 섭취하세요.\n[URGENCY: low]"})
	token := registerAndLogin(t, app, "chat@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/symptom-check", map[string]any{
		"message": "목이 아파요",
	}, token), -1)
	if err != nil {
		t.Fatalf("symptom check failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("symptom check status = %d, want 200", response.StatusCode)
	}
	var reply struct {
		SessionID       string `json:"session_id"`
		Response        string `json:"response"`
		UrgencyLevel    string `json:"urgency_level"`
		SuggestedAction string `json:"suggested_action"`
	}
	decodeBody(t, response, &reply)
	if reply.SessionID == "" {
		t.Fatalf("expected a generated session id")
	}
	if reply.UrgencyLevel != "low" {
		t.Fatalf("urgency = %q, want low", reply.UrgencyLevel)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		"/api/chat/history?session_id="+reply.SessionID, nil, token), -1)
	if err != nil {
		t.Fatalf("chat history failed: %v", err)
	}
	var history []struct {
		Role string `json:"role"`
	}
	decodeBody(t, response, &history)
	if len(history) != 2 {
		t.Fatalf("history length = %d, want both turns", len(history))
	}
	// The transcript reads chronologically: question, then answer.
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Fatalf("unexpected turn order: %+v", history)
	}
}

func TestSymptomCheckPropagatesUpstreamFailure(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "chatfail@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/symptom-check", map[string]any{
		"message": "목이 아파요",
	}, token), -1)
	if err != nil {
		t.Fatalf("symptom check failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("symptom check status = %d, want 502", response.StatusCode)
	}

	historyResponse, err := app.Test(jsonRequest(t, http.MethodGet, "/api/chat/history", nil, token), -1)
	if err != nil {
		t.Fatalf("chat history failed: %v", err)
	}
	var history []any
	decodeBody(t, historyResponse, &history)
	if len(history) != 0 {
		t.Fatalf("expected no stored turns after failure, got %d", len(history))
	}
}

func TestMoodRecordCreatedWithFallbackInsight(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "mood@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/moods", map[string]any{
		"mood_level":     "happy",
		"mood_intensity": 8,
	}, token), -1)
	if err != nil {
		t.Fatalf("create mood failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create mood status = %d, want 201 despite provider failure", response.StatusCode)
	}
	var record struct {
		MoodLevel  string `json:"mood_level"`
		AIAnalysis string `json:"ai_analysis"`
	}
	decodeBody(t, response, &record)
	if record.AIAnalysis == "" {
		t.Fatalf("expected fallback analysis text on the stored record")
	}
}

func TestChecklistCompletionInvariant(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "disease@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/diseases", map[string]any{
		"disease_name":   "감기",
		"severity":       "mild",
		"diagnosis_date": time.Now().Format(time.RFC3339),
	}, token), -1)
	if err != nil {
		t.Fatalf("create disease failed: %v", err)
	}
	var disease struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &disease)

	response, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/diseases/%d/checklists", disease.ID), map[string]any{
			"title": "오늘의 관리",
			"items": []map[string]any{
				{"label": "약 복용", "completed": true},
				{"label": "휴식", "completed": false},
			},
		}, token), -1)
	if err != nil {
		t.Fatalf("create checklist failed: %v", err)
	}
	var checklist struct {
		ID             uint `json:"id"`
		CompletedCount int  `json:"completed_count"`
		TotalCount     int  `json:"total_count"`
		IsCompleted    bool `json:"is_completed"`
	}
	decodeBody(t, response, &checklist)
	if checklist.CompletedCount != 1 || checklist.TotalCount != 2 || checklist.IsCompleted {
		t.Fatalf("unexpected derived counters: %+v", checklist)
	}

	// Checking every item completes the list.
	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/diseases/%d/checklists/%d", disease.ID, checklist.ID), map[string]any{
			"items": []map[string]any{
				{"label": "약 복용", "completed": true},
				{"label": "휴식", "completed": true},
			},
		}, token), -1)
	if err != nil {
		t.Fatalf("update checklist failed: %v", err)
	}
	var completed struct {
		CompletedCount int  `json:"completed_count"`
		IsCompleted    bool `json:"is_completed"`
	}
	decodeBody(t, response, &completed)
	if completed.CompletedCount != 2 || !completed.IsCompleted {
		t.Fatalf("unexpected counters after completion: %+v", completed)
	}

	// Emptying the list can never leave it completed.
	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/diseases/%d/checklists/%d", disease.ID, checklist.ID), map[string]any{
			"items": []map[string]any{},
		}, token), -1)
	if err != nil {
		t.Fatalf("empty checklist failed: %v", err)
	}
	var emptied struct {
		TotalCount  int  `json:"total_count"`
		IsCompleted bool `json:"is_completed"`
	}
	decodeBody(t, response, &emptied)
	if emptied.TotalCount != 0 || emptied.IsCompleted {
		t.Fatalf("empty checklist must not be completed: %+v", emptied)
	}
}

func TestVoiceAnalyzePersistsAndFlagsUrgency(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "voice@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/voice/analyze", map[string]any{
		"transcript": "요즘 죽고 싶다는 생각이 들어요",
		"confidence": 0.9,
	}, token), -1)
	if err != nil {
		t.Fatalf("voice analyze failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("voice analyze status = %d, want 201", response.StatusCode)
	}
	var result struct {
		Analysis struct {
			UrgencyLevel string `json:"urgency_level"`
		} `json:"analysis"`
	}
	decodeBody(t, response, &result)
	if result.Analysis.UrgencyLevel != "emergency" {
		t.Fatalf("urgency = %q, want emergency", result.Analysis.UrgencyLevel)
	}

	// An emergency transcript raises a notification.
	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/notifications", nil, token), -1)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	var notifications []struct {
		Kind   string `json:"kind"`
		IsRead bool   `json:"is_read"`
	}
	decodeBody(t, response, &notifications)
	if len(notifications) != 1 || notifications[0].Kind != "voice_alert" {
		t.Fatalf("unexpected notifications: %+v", notifications)
	}
}

func TestPostpartumCareDerivesDepressionRisk(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "postpartum@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/postpartum-cares", map[string]any{
		"birth_date":                 time.Now().AddDate(0, -1, 0).Format(time.RFC3339),
		"depression_screening_score": 14,
	}, token), -1)
	if err != nil {
		t.Fatalf("create postpartum care failed: %v", err)
	}
	var care struct {
		ID   uint   `json:"id"`
		Risk string `json:"postpartum_depression_risk"`
	}
	decodeBody(t, response, &care)
	if care.Risk != "high" {
		t.Fatalf("risk = %q, want high for score 14", care.Risk)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/postpartum-cares/%d", care.ID), map[string]any{
			"depression_screening_score": 5,
		}, token), -1)
	if err != nil {
		t.Fatalf("update postpartum care failed: %v", err)
	}
	var updated struct {
		Risk string `json:"postpartum_depression_risk"`
	}
	decodeBody(t, response, &updated)
	if updated.Risk != "low" {
		t.Fatalf("risk = %q, want low after rescreen", updated.Risk)
	}
}

func TestPatchEnforcesCreateRules(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "rules@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/postpartum-cares", map[string]any{
		"birth_date":                 time.Now().AddDate(0, -1, 0).Format(time.RFC3339),
		"depression_screening_score": 8,
	}, token), -1)
	if err != nil {
		t.Fatalf("create postpartum care failed: %v", err)
	}
	var care struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &care)

	// The same range the create path enforces applies on patch.
	for _, bad := range []any{99, -1, "abc"} {
		response, err := app.Test(jsonRequest(t, http.MethodPatch,
			fmt.Sprintf("/api/postpartum-cares/%d", care.ID), map[string]any{
				"depression_screening_score": bad,
			}, token), -1)
		if err != nil {
			t.Fatalf("patch score %v failed: %v", bad, err)
		}
		response.Body.Close()
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("patch score %v status = %d, want 400", bad, response.StatusCode)
		}
	}

	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/postpartum-cares/%d", care.ID), map[string]any{
			"depression_screening_score": 12,
		}, token), -1)
	if err != nil {
		t.Fatalf("valid patch failed: %v", err)
	}
	var updated struct {
		Score *int   `json:"depression_screening_score"`
		Risk  string `json:"postpartum_depression_risk"`
	}
	decodeBody(t, response, &updated)
	if updated.Score == nil || *updated.Score != 12 || updated.Risk != "medium" {
		t.Fatalf("unexpected record after valid patch: %+v", updated)
	}
}

func TestGeneratedTreatmentPlanLifecycle(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "plans@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/diseases", map[string]any{
		"disease_name":   "고혈압",
		"severity":       "moderate",
		"diagnosis_date": time.Now().Format(time.RFC3339),
	}, token), -1)
	if err != nil {
		t.Fatalf("create disease failed: %v", err)
	}
	var disease struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &disease)

	// Provider failure still yields a usable template plan.
	response, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/diseases/%d/treatment-plans/generate", disease.ID), map[string]any{
			"duration": "3_months",
		}, token), -1)
	if err != nil {
		t.Fatalf("generate plan failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("generate plan status = %d, want 201", response.StatusCode)
	}
	var plan struct {
		ID                   uint    `json:"id"`
		AIGenerated          bool    `json:"ai_generated"`
		CompletionPercentage float64 `json:"completion_percentage"`
		Goals                []struct {
			Label     string `json:"label"`
			Completed bool   `json:"completed"`
		} `json:"goals"`
	}
	decodeBody(t, response, &plan)
	if !plan.AIGenerated || len(plan.Goals) == 0 {
		t.Fatalf("unexpected generated plan: %+v", plan)
	}
	if plan.CompletionPercentage != 0 || plan.Goals[0].Completed {
		t.Fatalf("fresh plan must start unchecked: %+v", plan)
	}

	response, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/diseases/%d/treatment-plans/%d", disease.ID, plan.ID), nil, token), -1)
	if err != nil {
		t.Fatalf("delete plan failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("delete plan status = %d, want 204", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/diseases/%d/treatment-plans", disease.ID), nil, token), -1)
	if err != nil {
		t.Fatalf("list plans failed: %v", err)
	}
	var plans []any
	decodeBody(t, response, &plans)
	if len(plans) != 0 {
		t.Fatalf("expected no plans after delete, got %d", len(plans))
	}
}

func TestSleepStatisticsAggregateWindow(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "sleepstats@example.com")

	for _, night := range []struct {
		start   time.Time
		hours   float64
		quality int
	}{
		{time.Now().Add(-26 * time.Hour), 7.5, 8},
		{time.Now().Add(-50 * time.Hour), 6.0, 5},
	} {
		response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/sleep-records", map[string]any{
			"sleep_start":   night.start.Format(time.RFC3339),
			"sleep_end":     night.start.Add(time.Duration(night.hours * float64(time.Hour))).Format(time.RFC3339),
			"sleep_quality": night.quality,
		}, token), -1)
		if err != nil {
			t.Fatalf("create sleep record failed: %v", err)
		}
		response.Body.Close()
		if response.StatusCode != http.StatusCreated {
			t.Fatalf("create sleep record status = %d, want 201", response.StatusCode)
		}
	}

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sleep-records/statistics?days=7", nil, token), -1)
	if err != nil {
		t.Fatalf("sleep statistics failed: %v", err)
	}
	var stats struct {
		Count           int     `json:"count"`
		AverageDuration float64 `json:"average_duration"`
		AverageQuality  float64 `json:"average_quality"`
	}
	decodeBody(t, response, &stats)
	if stats.Count != 2 {
		t.Fatalf("count = %d, want 2", stats.Count)
	}
	if stats.AverageDuration != 6.75 || stats.AverageQuality != 6.5 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
}

func TestDevelopmentLogDerivesAgeAndScopesToChild(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "devlog@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/children", map[string]any{
		"child_name": "다온",
		"birth_date": time.Now().AddDate(0, 0, -430).Format(time.RFC3339),
	}, token), -1)
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	var child struct {
		ID uint `json:"id"`
	}
	decodeBody(t, response, &child)

	response, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/children/%d/development-logs", child.ID), map[string]any{
			"motor_skills":    "혼자 걷기 시작",
			"play_activities": []string{"블록 쌓기"},
		}, token), -1)
	if err != nil {
		t.Fatalf("create development log failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create development log status = %d, want 201", response.StatusCode)
	}
	var created struct {
		AgeMonths      int      `json:"age_months"`
		PlayActivities []string `json:"play_activities"`
	}
	decodeBody(t, response, &created)
	if created.AgeMonths != 14 {
		t.Fatalf("age months = %d, want 14 for a 430-day-old", created.AgeMonths)
	}
	if len(created.PlayActivities) != 1 {
		t.Fatalf("unexpected play activities: %+v", created.PlayActivities)
	}

	// The list hangs off the child, so a foreign child id is a 404.
	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/children/%d/development-logs", child.ID+1), nil, token), -1)
	if err != nil {
		t.Fatalf("foreign child list failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign child list status = %d, want 404", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/children/%d/development-logs", child.ID), nil, token), -1)
	if err != nil {
		t.Fatalf("list development logs failed: %v", err)
	}
	var logs []any
	decodeBody(t, response, &logs)
	if len(logs) != 1 {
		t.Fatalf("expected one log, got %d", len(logs))
	}
}

func TestVoiceReminderLifecycle(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "reminders@example.com")

	later := time.Now().Add(6 * time.Hour)
	sooner := time.Now().Add(2 * time.Hour)
	for _, reminder := range []struct {
		title string
		at    time.Time
	}{
		{"저녁 약 복용", later},
		{"점심 약 복용", sooner},
	} {
		response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/voice/reminders", map[string]any{
			"reminder_type":  "medication",
			"title":          reminder.title,
			"tts_text":       reminder.title + " 시간입니다.",
			"scheduled_time": reminder.at.Format(time.RFC3339),
		}, token), -1)
		if err != nil {
			t.Fatalf("create reminder failed: %v", err)
		}
		response.Body.Close()
		if response.StatusCode != http.StatusCreated {
			t.Fatalf("create reminder status = %d, want 201", response.StatusCode)
		}
	}

	// Soonest first, regardless of insertion order.
	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/voice/reminders", nil, token), -1)
	if err != nil {
		t.Fatalf("list reminders failed: %v", err)
	}
	var reminders []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	decodeBody(t, response, &reminders)
	if len(reminders) != 2 || reminders[0].Title != "점심 약 복용" {
		t.Fatalf("unexpected reminder order: %+v", reminders)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPatch,
		fmt.Sprintf("/api/voice/reminders/%d", reminders[0].ID), map[string]any{
			"is_active": false,
		}, token), -1)
	if err != nil {
		t.Fatalf("patch reminder failed: %v", err)
	}
	var deactivated struct {
		IsActive bool `json:"is_active"`
	}
	decodeBody(t, response, &deactivated)
	if deactivated.IsActive {
		t.Fatalf("expected reminder deactivated")
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/voice/reminders?active_only=true", nil, token), -1)
	if err != nil {
		t.Fatalf("active-only list failed: %v", err)
	}
	var active []any
	decodeBody(t, response, &active)
	if len(active) != 1 {
		t.Fatalf("expected one active reminder, got %d", len(active))
	}

	response, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/voice/reminders/%d", reminders[0].ID), nil, token), -1)
	if err != nil {
		t.Fatalf("delete reminder failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("delete reminder status = %d, want 204", response.StatusCode)
	}
}

func TestTranscribeUsesConfiguredTranscriber(t *testing.T) {
	app := newTestApp(t, &stubGenerator{err: ai.ErrUpstream})
	token := registerAndLogin(t, app, "stt@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/voice/transcribe", map[string]any{
		"audio_content": "aGVsbG8=",
	}, token), -1)
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("transcribe status = %d, want 200", response.StatusCode)
	}
	var transcript struct {
		Transcript string  `json:"transcript"`
		Confidence float64 `json:"confidence"`
	}
	decodeBody(t, response, &transcript)
	if transcript.Transcript != "안녕하세요" || transcript.Confidence != 0.92 {
		t.Fatalf("unexpected transcript payload: %+v", transcript)
	}
}
