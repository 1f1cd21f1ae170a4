package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/llm"
)

func TestConsultationHandler_Tips(t *testing.T) {
	tests := []struct {
		name           string
		category       string
		err            error
		wantStatusCode int
		wantCategory   string
	}{
		{name: "known category", category: "sleep", wantStatusCode: http.StatusOK, wantCategory: "sleep"},
		{name: "mixed case", category: "Nutrition", wantStatusCode: http.StatusOK, wantCategory: "nutrition"},
		{name: "unknown category", category: "astrology", err: domain.ErrUnknownCategory, wantStatusCode: http.StatusNotFound},
		{name: "catalog failure", category: "sleep", err: errBoom, wantStatusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewConsultationHandler(&MockTipsService{err: tt.err}, &MockConsultationService{}, zap.NewNop())
			req := withURLParams(httptest.NewRequest(http.MethodGet, "/v1/health-tips/"+tt.category, nil), "category", tt.category)
			rec := httptest.NewRecorder()

			handler.Tips(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("Tips() status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.wantCategory != "" {
				var body TipsResponse
				json.NewDecoder(rec.Body).Decode(&body)
				if body.Category != tt.wantCategory || len(body.Tips) != 1 {
					t.Errorf("unexpected body %+v", body)
				}
			}
		})
	}
}

func TestConsultationHandler_Ask(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		err            error
		wantStatusCode int
	}{
		{name: "question", body: `{"message": "How can I sleep better?"}`, wantStatusCode: http.StatusOK},
		{name: "question with user", body: `{"message": "Am I on track?", "user_id": "550e8400-e29b-41d4-a716-446655440000"}`, wantStatusCode: http.StatusOK},
		{name: "empty message", body: `{"message": ""}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "invalid JSON", body: `nope`, wantStatusCode: http.StatusBadRequest},
		{name: "unknown user", body: `{"message": "hi", "user_id": "550e8400-e29b-41d4-a716-446655440000"}`, err: domain.ErrNotFound, wantStatusCode: http.StatusNotFound},
		{name: "llm not configured", body: `{"message": "hi"}`, err: llm.ErrLLMUnavailable, wantStatusCode: http.StatusServiceUnavailable},
		{name: "llm request failed", body: `{"message": "hi"}`, err: fmt.Errorf("%w: timeout", llm.ErrLLMRequest), wantStatusCode: http.StatusBadGateway},
		{name: "llm bad response", body: `{"message": "hi"}`, err: fmt.Errorf("%w: empty", llm.ErrLLMResponse), wantStatusCode: http.StatusBadGateway},
		{name: "other failure", body: `{"message": "hi"}`, err: errBoom, wantStatusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockConsultationService{askErr: tt.err}
			handler := NewConsultationHandler(&MockTipsService{}, mock, zap.NewNop())
			req := httptest.NewRequest(http.MethodPost, "/v1/consultation", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Ask(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("Ask() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if rec.Code == http.StatusOK {
				var resp domain.ConsultationResponse
				json.NewDecoder(rec.Body).Decode(&resp)
				if resp.TraceID != "trace-1" || resp.HTML == "" {
					t.Errorf("unexpected response %+v", resp)
				}
			}
		})
	}
}

func TestConsultationHandler_Feedback(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		feedbackErr    error
		wantStatusCode int
		wantCalls      int
	}{
		{name: "helpful", body: `{"trace_id": "trace-1", "score": 1}`, wantStatusCode: http.StatusNoContent, wantCalls: 1},
		{name: "scoring failure is not surfaced", body: `{"trace_id": "trace-1", "score": 0}`, feedbackErr: errBoom, wantStatusCode: http.StatusNoContent, wantCalls: 1},
		{name: "missing trace", body: `{"score": 1}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "score out of range", body: `{"trace_id": "t", "score": 5}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "invalid JSON", body: `{`, wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockConsultationService{feedbackErr: tt.feedbackErr}
			handler := NewConsultationHandler(&MockTipsService{}, mock, zap.NewNop())
			req := httptest.NewRequest(http.MethodPost, "/v1/consultation/feedback", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Feedback(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Feedback() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if mock.feedbacks != tt.wantCalls {
				t.Errorf("feedback calls = %d, want %d", mock.feedbacks, tt.wantCalls)
			}
		})
	}
}
