package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/langfuse"
	"github.com/healthsync/healthsync/internal/llm"
	"github.com/healthsync/healthsync/internal/render"
)

// DefaultConsultationPrompt is used when no prompt could be loaded from
// Langfuse or the local prompt file.
const DefaultConsultationPrompt = `You are HealthSync, a friendly health assistant.

Answer the user's question with general, evidence-based wellness information.
When a health report is provided, ground your answer in those numbers and say
which measurements you relied on.

Rules:
- Do NOT diagnose conditions or prescribe medication.
- Recommend consulting a healthcare provider for severe, persistent or worrying symptoms.
- Keep answers short. Use "* " bullets or numbered steps for lists and **bold** for key points.`

const (
	consultationTraceName = "health-consultation"
	feedbackScoreName     = "user_rating"
)

type ConsultationService interface {
	Ask(ctx context.Context, req *domain.ConsultationRequest) (*domain.ConsultationResponse, error)
	Feedback(ctx context.Context, req *domain.FeedbackRequest) error
}

type consultationService struct {
	model        llm.ChatLLM
	reports      ReportService
	lf           langfuse.Client
	systemPrompt string
	policy       *bluemonday.Policy
	logger       *zap.Logger
}

func NewConsultationService(
	model llm.ChatLLM,
	reports ReportService,
	lf langfuse.Client,
	systemPrompt string,
	logger *zap.Logger,
) ConsultationService {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultConsultationPrompt
	}
	return &consultationService{
		model:        model,
		reports:      reports,
		lf:           lf,
		systemPrompt: systemPrompt,
		policy:       bluemonday.UGCPolicy(),
		logger:       logger,
	}
}

func (s *consultationService) Ask(ctx context.Context, req *domain.ConsultationRequest) (*domain.ConsultationResponse, error) {
	if s.model == nil {
		return nil, llm.ErrLLMUnavailable
	}

	userID := ""
	if req.UserID != nil {
		userID = req.UserID.String()
	}

	ctx, span := startSpan(ctx, "ConsultationService.Ask",
		map[string]any{"user_id": userID, "message": req.Message},
		attribute.String("user.id", userID),
		attribute.String("llm.provider", s.model.Name()),
	)
	defer span.End()

	system := s.systemPrompt
	if req.UserID != nil {
		reportContext, err := s.reportContext(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		system += "\n\nThe user's current health report (JSON):\n" + reportContext
	}

	answer, err := s.model.Complete(ctx, system, req.Message)
	if err != nil {
		s.logger.Error("consultation completion failed",
			zap.String("provider", s.model.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	resp := &domain.ConsultationResponse{
		Answer: answer,
		HTML:   s.policy.Sanitize(render.FormatText(answer)),
	}

	traceID, err := s.lf.CreateTrace(ctx, langfuse.TraceInput{
		UserID: userID,
		Name:   consultationTraceName,
		Input:  map[string]any{"message": req.Message, "with_report": req.UserID != nil},
		Output: map[string]any{"answer": answer},
		Tags:   []string{"healthsync", s.model.Name()},
	})
	if err != nil {
		s.logger.Warn("failed to record consultation trace", zap.Error(err))
	}
	resp.TraceID = traceID

	endSpan(span, map[string]any{"answer": answer, "trace_id": traceID})
	return resp, nil
}

// reportContext renders the user's health report as indented JSON.
func (s *consultationService) reportContext(ctx context.Context, userID uuid.UUID) (string, error) {
	report, err := s.reports.HealthReport(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to build health report: %w", err)
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize health report: %w", err)
	}
	return string(raw), nil
}

func (s *consultationService) Feedback(ctx context.Context, req *domain.FeedbackRequest) error {
	return s.lf.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    feedbackScoreName,
		Value:   req.Score,
		Comment: req.Comment,
	})
}
