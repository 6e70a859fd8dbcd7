package stores

import (
	"context"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/memory"
)

// SemanticStore keeps subject/fact pairs. A subject holds a single current
// description; restating a subject overwrites it, and every description ever
// given survives as a Fact node.
type SemanticStore struct {
	graph  ports.GraphStore
	logger *zap.Logger
}

// NewSemanticStore bootstraps the semantic schema. A schema failure is fatal.
func NewSemanticStore(ctx context.Context, graph ports.GraphStore, logger *zap.Logger) (*SemanticStore, error) {
	if err := graph.EnsureUnique(ctx, "Subject", "name"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Fact", "content"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Memory", "memory_type"); err != nil {
		return nil, err
	}
	logger.Debug("semantic schema initialized")
	return &SemanticStore{graph: graph, logger: logger}, nil
}

// AddFact records that subject is described by description.
func (s *SemanticStore) AddFact(ctx context.Context, subject, description string) error {
	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		descProps := ports.Props{"description": description}
		subj, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "Subject", Key: "name", KeyVal: subject,
				Domain: string(memory.DomainSemantic), Memory: true},
			descProps, descProps)
		if err != nil {
			return err
		}
		fact, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "Fact", Key: "content", KeyVal: description,
				Domain: string(memory.DomainSemantic), Memory: true},
			nil, nil)
		if err != nil {
			return err
		}
		return tx.MergeRel(ctx, subj, fact, "HAS_FACT")
	})
	if err != nil {
		s.logger.Error("failed to add fact",
			zap.String("subject", subject), zap.Error(err))
		return err
	}
	s.logger.Info("stored semantic fact",
		zap.String("subject", subject), zap.String("description", description))
	return nil
}

// Fact returns the current description of subject, or false when the subject
// is unknown.
func (s *SemanticStore) Fact(ctx context.Context, subject string) (string, bool) {
	recs, err := s.graph.Query(ctx, ports.Query{
		Label:  "Subject",
		Equals: ports.Props{"name": subject},
		Return: []string{"description"},
	})
	if err != nil {
		s.logger.Error("failed to get fact", zap.String("subject", subject), zap.Error(err))
		return "", false
	}
	if len(recs) == 0 {
		return "", false
	}
	return recString(recs[0], "description"), true
}

// Facts returns subject/description pairs ordered by subject name,
// optionally filtered to one subject.
func (s *SemanticStore) Facts(ctx context.Context, subject *string) []memory.FactRecord {
	q := ports.Query{
		Label:   "Subject",
		Return:  []string{"name", "description"},
		OrderBy: "name",
	}
	if subject != nil {
		q.Equals = ports.Props{"name": *subject}
	}
	recs, err := s.graph.Query(ctx, q)
	if err != nil {
		s.logger.Error("failed to get facts", zap.Error(err))
		return nil
	}

	out := make([]memory.FactRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, memory.FactRecord{
			Subject:     recString(rec, "name"),
			Description: recString(rec, "description"),
		})
	}
	return out
}

// Slice returns a bounded view of the subject/fact subgraph for
// visualization.
func (s *SemanticStore) Slice(ctx context.Context) []ports.SliceRow {
	rows, err := s.graph.Slice(ctx, ports.SliceQuery{
		AnchorLabel: "Subject", Rel: "HAS_FACT", Label: "Fact", Limit: 50,
	})
	if err != nil {
		s.logger.Error("failed to slice semantic memories", zap.Error(err))
		return nil
	}
	return rows
}
