// Package services wires the memory domains into one facade.
package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/application/stores"
	"engram-backend/domain/analysis"
)

// MemoryService owns the six memory stores and the shared graph store
// beneath them. Construct it once at startup; the stores are stateless over
// the pooled graph adapter and safe for concurrent use.
type MemoryService struct {
	Episodic *stores.EpisodicStore
	Sensory  *stores.SensoryStore
	Motor    *stores.MotorStore
	PAM      *stores.PAMStore
	Semantic *stores.SemanticStore
	Social   *stores.SocialStore

	graph  ports.GraphStore
	logger *zap.Logger
	close  sync.Once
}

// NewMemoryService constructs all six stores over the shared graph store,
// bootstrapping each domain's schema. A nil analyzer or gender detector
// falls back to the in-repo heuristic implementations. Any store failing to
// construct tears the service down, graph store included, and returns the
// error.
func NewMemoryService(ctx context.Context, graph ports.GraphStore, analyzer analysis.Analyzer, gender analysis.GenderDetector, logger *zap.Logger) (*MemoryService, error) {
	if analyzer == nil {
		analyzer = analysis.NewHeuristicAnalyzer()
	}
	if gender == nil {
		gender = analysis.NewNameDetector()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &MemoryService{graph: graph, logger: logger}

	var err error
	if svc.Episodic, err = stores.NewEpisodicStore(ctx, graph, analyzer, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}
	if svc.Sensory, err = stores.NewSensoryStore(ctx, graph, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}
	if svc.Motor, err = stores.NewMotorStore(ctx, graph, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}
	if svc.PAM, err = stores.NewPAMStore(ctx, graph, analyzer, gender, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}
	if svc.Semantic, err = stores.NewSemanticStore(ctx, graph, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}
	if svc.Social, err = stores.NewSocialStore(ctx, graph, logger); err != nil {
		return nil, svc.abort(ctx, err)
	}

	logger.Info("memory service initialized")
	return svc, nil
}

func (s *MemoryService) abort(ctx context.Context, err error) error {
	s.logger.Error("memory service construction failed", zap.Error(err))
	s.CloseAll(ctx)
	return err
}

// CloseAll releases every store and the shared graph store, graph last.
// Close failures are logged, never propagated, and a second call is a no-op.
func (s *MemoryService) CloseAll(ctx context.Context) {
	s.close.Do(func() {
		if s.Sensory != nil {
			if err := s.Sensory.Close(); err != nil {
				s.logger.Warn("sensory store close failed", zap.Error(err))
			}
		}
		if err := s.graph.Close(ctx); err != nil {
			s.logger.Warn("graph store close failed", zap.Error(err))
		}
		s.logger.Info("memory service closed")
	})
}
