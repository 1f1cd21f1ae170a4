package dashboard

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/render"
)

// Fragments renders the single-shot views that are not bound to a tab.
type Fragments struct {
	source Source
	logger *zap.Logger
}

func NewFragments(source Source, logger *zap.Logger) *Fragments {
	return &Fragments{source: source, logger: logger}
}

func (f *Fragments) Correlations(ctx context.Context, userID uuid.UUID) render.Output {
	a, err := f.source.Correlations(ctx, userID)
	if err != nil {
		return f.unavailable("correlations", userID, err)
	}
	return f.rendered("correlations", userID)(render.Correlations(a))
}

func (f *Fragments) Predictions(ctx context.Context, userID uuid.UUID, daysAhead int) render.Output {
	a, err := f.source.Predictions(ctx, userID, daysAhead)
	if err != nil {
		return f.unavailable("predictions", userID, err)
	}
	return f.rendered("predictions", userID)(render.Predictions(a))
}

func (f *Fragments) SymptomAnalysis(ctx context.Context, userID uuid.UUID, days int) render.Output {
	a, err := f.source.SymptomAnalysis(ctx, userID, days)
	if err != nil {
		return f.unavailable("symptoms", userID, err)
	}
	return f.rendered("symptoms", userID)(render.SymptomAnalysis(a))
}

func (f *Fragments) rendered(name string, userID uuid.UUID) func(render.Output, error) render.Output {
	return func(out render.Output, err error) render.Output {
		if err != nil {
			return f.unavailable(name, userID, err)
		}
		return out
	}
}

func (f *Fragments) unavailable(name string, userID uuid.UUID, err error) render.Output {
	f.logger.Error("failed to load dashboard fragment",
		zap.String("fragment", name),
		zap.String("user_id", userID.String()),
		zap.Error(err),
	)
	out, _ := render.Notice(MsgUnavailable)
	return out
}
