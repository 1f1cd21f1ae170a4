package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/healthsync/healthsync/internal/domain"
)

//go:embed tips_catalog.yaml
var defaultTipsCatalog []byte

// TipsLoader returns the raw YAML catalog.
type TipsLoader func() ([]byte, error)

// EmbeddedTips serves the catalog compiled into the binary.
func EmbeddedTips() ([]byte, error) {
	return defaultTipsCatalog, nil
}

// FileTips reads the catalog from path, falling back to the embedded one when
// path is empty.
func FileTips(path string) TipsLoader {
	if path == "" {
		return EmbeddedTips
	}
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

type TipsService interface {
	// Tips returns the tips for a category. The category is matched
	// case-insensitively; unknown categories return ErrUnknownCategory.
	Tips(ctx context.Context, category string) ([]domain.HealthTip, error)
}

// tipsService caches each category after its first load. Entries are never
// invalidated; concurrent first loads of a category share one read.
type tipsService struct {
	load   TipsLoader
	logger *zap.Logger

	cache sync.Map // category -> []domain.HealthTip
	group singleflight.Group
}

func NewTipsService(load TipsLoader, logger *zap.Logger) TipsService {
	return &tipsService{load: load, logger: logger}
}

func (s *tipsService) Tips(ctx context.Context, category string) ([]domain.HealthTip, error) {
	key := strings.ToLower(strings.TrimSpace(category))
	if !isTipCategory(key) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	if cached, ok := s.cache.Load(key); ok {
		return cached.([]domain.HealthTip), nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		if cached, ok := s.cache.Load(key); ok {
			return cached, nil
		}
		tips, err := s.fetch(key)
		if err != nil {
			return nil, err
		}
		s.cache.Store(key, tips)
		return tips, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("tips load shared", zap.String("category", key))
	}
	return v.([]domain.HealthTip), nil
}

func (s *tipsService) fetch(category string) ([]domain.HealthTip, error) {
	raw, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("failed to read tips catalog: %w", err)
	}

	var catalog map[string][]domain.HealthTip
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tips catalog: %w", err)
	}

	tips, ok := catalog[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	s.logger.Info("tips category loaded", zap.String("category", category), zap.Int("tips", len(tips)))
	return tips, nil
}

func isTipCategory(category string) bool {
	for _, c := range domain.HealthTipCategories {
		if c == category {
			return true
		}
	}
	return false
}
