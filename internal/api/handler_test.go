package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopql/shopql/internal/ask"
	"github.com/shopql/shopql/internal/auth"
	"github.com/shopql/shopql/internal/config"
	"github.com/shopql/shopql/internal/query"
	"github.com/shopql/shopql/internal/synth"
)

type fakeAskService struct {
	answer    ask.Answer
	err       error
	questions []string
}

func (f *fakeAskService) Ask(_ context.Context, _ string, question string) (ask.Answer, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return ask.Answer{Question: question}, f.err
	}
	return f.answer, nil
}

func newTestHandler(cfg config.Config, service AskService) http.Handler {
	return NewHandler(cfg, Dependencies{Ask: service})
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAskReturnsRecords(t *testing.T) {
	service := &fakeAskService{answer: ask.Answer{
		Question: "what is my total ad spend",
		SQL:      "SELECT SUM(ad_spend) AS total FROM AdSales",
		Result:   query.New([]string{"total"}, [][]any{{2150.75}}),
	}}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/ask", map[string]string{"question": "what is my total ad spend"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Question string           `json:"question"`
		SQL      string           `json:"sql"`
		Result   []map[string]any `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Question != "what is my total ad spend" {
		t.Fatalf("question = %q", resp.Question)
	}
	if resp.SQL != "SELECT SUM(ad_spend) AS total FROM AdSales" {
		t.Fatalf("sql = %q", resp.SQL)
	}
	if len(resp.Result) != 1 || resp.Result[0]["total"] != 2150.75 {
		t.Fatalf("result = %+v", resp.Result)
	}
	if len(service.questions) != 1 {
		t.Fatalf("service saw %d questions", len(service.questions))
	}
}

type scriptedSynth struct {
	sql string
}

func (s *scriptedSynth) Synthesize(_ context.Context, _ string) (synth.Result, error) {
	return synth.Result{SQL: s.sql, Provider: "scripted"}, nil
}

type scriptedExecutor struct {
	result   query.ResultSet
	executed []string
}

func (s *scriptedExecutor) Execute(_ context.Context, sqlText string) (query.ResultSet, error) {
	s.executed = append(s.executed, sqlText)
	return s.result, nil
}

func TestAskThroughComposedPipeline(t *testing.T) {
	executor := &scriptedExecutor{result: query.New([]string{"total"}, [][]any{{2150.75}})}
	service := &ask.Service{
		Synth:    &scriptedSynth{sql: "SELECT SUM(ad_spend) AS total FROM AdSales"},
		Executor: executor,
	}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/ask", map[string]string{"question": "What is my total ad spend?"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Question string           `json:"question"`
		SQL      string           `json:"sql"`
		Result   []map[string]any `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Question != "What is my total ad spend?" {
		t.Fatalf("question = %q", resp.Question)
	}
	if resp.SQL != "SELECT SUM(ad_spend) AS total FROM AdSales" {
		t.Fatalf("sql = %q", resp.SQL)
	}
	if len(resp.Result) != 1 || resp.Result[0]["total"] != 2150.75 {
		t.Fatalf("result = %+v", resp.Result)
	}
	if len(executor.executed) != 1 || executor.executed[0] != resp.SQL {
		t.Fatalf("executor ran %v, want the synthesized statement", executor.executed)
	}
}

func TestAskReportsExecutionErrorInline(t *testing.T) {
	service := &fakeAskService{answer: ask.Answer{
		Question: "broken",
		SQL:      "SELEKT 1",
		ExecErr:  &query.ExecutionError{SQL: "SELEKT 1", Message: "syntax error at SELEKT"},
	}}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/ask", map[string]string{"question": "broken"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, execution errors should not change the status", rr.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["sql"] != "SELEKT 1" {
		t.Fatalf("sql = %v", resp["sql"])
	}
	if resp["error"] != "syntax error at SELEKT" {
		t.Fatalf("error = %v", resp["error"])
	}
	if _, ok := resp["result"]; ok {
		t.Fatal("result must be absent when execution failed")
	}
}

func TestAskGenerationFailureIsBadGateway(t *testing.T) {
	service := &fakeAskService{err: &synth.GenerationError{Provider: "gemini", Err: fmt.Errorf("quota exceeded")}}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/ask", map[string]string{"question": "anything"})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "quota exceeded") {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestAskRejectsBadRequests(t *testing.T) {
	handler := newTestHandler(config.Config{}, &fakeAskService{})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for malformed body", rr.Code)
	}

	rr = postJSON(t, handler, "/ask", map[string]string{"question": ""})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for empty question", rr.Code)
	}
}

func TestWelcomeRoute(t *testing.T) {
	handler := newTestHandler(config.Config{Service: config.ServiceConfig{Name: "shopql"}}, &fakeAskService{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Welcome") {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestHealthAndReady(t *testing.T) {
	handler := NewHandler(config.Config{Service: config.ServiceConfig{Name: "shopql"}}, Dependencies{
		Ask:       &fakeAskService{},
		Readiness: func(context.Context) error { return nil },
	})

	for _, path := range []string{"/v1/health", "/v1/ready"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rr.Code)
		}
	}
}

func TestReadyFailureIsServiceUnavailable(t *testing.T) {
	handler := NewHandler(config.Config{}, Dependencies{
		Ask:       &fakeAskService{},
		Readiness: func(context.Context) error { return fmt.Errorf("store unreachable") },
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestAskRequiresKeyWhenAuthEnabled(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{Required: true, StaticKeys: "secret"}}
	service := &fakeAskService{answer: ask.Answer{SQL: "SELECT 1", Result: query.New([]string{"one"}, [][]any{{int64(1)}})}}
	handler := NewHandler(cfg, Dependencies{
		Ask:            service,
		AuthMiddleware: auth.Middleware(nil, auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)),
	})

	rr := postJSON(t, handler, "/ask", map[string]string{"question": "q"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d without key", rr.Code)
	}

	body, _ := json.Marshal(map[string]string{"question": "q"})
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body))
	req.Header.Set("X-API-Key", "secret")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d with key, body = %s", rr.Code, rr.Body.String())
	}
}

func TestExportReturnsParquet(t *testing.T) {
	service := &fakeAskService{answer: ask.Answer{
		Question: "daily ad sales",
		SQL:      "SELECT date, SUM(ad_sales) AS ad_sales FROM AdSales GROUP BY date",
		Result: query.New([]string{"date", "ad_sales"}, [][]any{
			{"2025-06-01", 120.5},
			{"2025-06-02", 98.0},
		}),
	}}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/export", map[string]string{"question": "daily ad sales"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/octet-stream" {
		t.Fatalf("content type = %q", got)
	}
	payload := rr.Body.Bytes()
	if len(payload) < 8 || !bytes.HasPrefix(payload, []byte("PAR1")) {
		t.Fatalf("payload does not look like parquet (%d bytes)", len(payload))
	}
}

func TestExportSurfacesExecutionError(t *testing.T) {
	service := &fakeAskService{answer: ask.Answer{
		SQL:     "SELEKT 1",
		ExecErr: &query.ExecutionError{SQL: "SELEKT 1", Message: "syntax error"},
	}}
	handler := newTestHandler(config.Config{}, service)

	rr := postJSON(t, handler, "/export", map[string]string{"question": "broken"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rr.Code)
	}
}
