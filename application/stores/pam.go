package stores

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/analysis"
	"engram-backend/domain/memory"
)

// PAMStore is the perception-action memory: it runs full text analysis and
// persists every finding as typed memory nodes hanging off the user.
type PAMStore struct {
	graph    ports.GraphStore
	analyzer analysis.Analyzer
	gender   analysis.GenderDetector
	logger   *zap.Logger
}

// NewPAMStore bootstraps the PAM schema. A schema failure is fatal.
func NewPAMStore(ctx context.Context, graph ports.GraphStore, analyzer analysis.Analyzer, gender analysis.GenderDetector, logger *zap.Logger) (*PAMStore, error) {
	if err := graph.EnsureUnique(ctx, "User", "id"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Memory", "memory_type"); err != nil {
		return nil, err
	}
	logger.Debug("pam schema initialized")
	return &PAMStore{graph: graph, analyzer: analyzer, gender: gender, logger: logger}, nil
}

// Analyze runs the full analysis pipeline on text. Analysis failures degrade
// to a neutral result rather than erroring: downstream persistence must keep
// working when the language pipeline cannot.
func (s *PAMStore) Analyze(ctx context.Context, text string) memory.Analysis {
	res, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.logger.Warn("text analysis failed, using neutral result", zap.Error(err))
		return neutralAnalysis()
	}

	out := memory.Analysis{
		Sentiment: memory.Sentiment{
			Polarity:     res.Sentiment.Polarity,
			Subjectivity: res.Sentiment.Subjectivity,
			Label:        memory.SentimentLabel(res.Sentiment.Polarity),
		},
		Gender: analysis.Unknown,
	}
	for _, t := range res.Tokens {
		out.Tokens = append(out.Tokens, memory.TaggedWord{Text: t.Text, POS: t.POS})
	}
	for _, e := range res.Entities {
		out.Entities = append(out.Entities, memory.NamedEntity{Text: e.Text, Type: e.Type})
		// Gender comes from the first person mentioned.
		if e.Type == "PERSON" && out.Gender == analysis.Unknown {
			if fields := strings.Fields(e.Text); len(fields) > 0 {
				out.Gender = s.gender.Detect(fields[0])
			}
		}
	}
	return out
}

func neutralAnalysis() memory.Analysis {
	return memory.Analysis{
		Sentiment: memory.Sentiment{Label: memory.SentimentLabel(0)},
		Gender:    analysis.Unknown,
	}
}

// Persist writes a complete analysis in one transaction. Either every
// finding lands or none do.
func (s *PAMStore) Persist(ctx context.Context, userID string, a memory.Analysis) error {
	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		user, err := tx.MergeNode(ctx, ports.NodeSpec{Label: "User", Key: "id", KeyVal: userID}, nil, nil)
		if err != nil {
			return err
		}

		sentimentProps := ports.Props{
			"polarity":     a.Sentiment.Polarity,
			"subjectivity": a.Sentiment.Subjectivity,
		}
		sentiment, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "Sentiment", Key: "label", KeyVal: a.Sentiment.Label,
				Domain: string(memory.DomainSentiment), Memory: true},
			sentimentProps, sentimentProps)
		if err != nil {
			return err
		}
		if err := tx.MergeRel(ctx, user, sentiment, "EXPRESSED"); err != nil {
			return err
		}

		for _, e := range a.Entities {
			typeProps := ports.Props{"type": e.Type}
			entity, err := tx.MergeNode(ctx,
				ports.NodeSpec{Label: "Entity", Key: "text", KeyVal: e.Text,
					Domain: string(memory.ClassifyEntity(e.Type)), Memory: true},
				typeProps, typeProps)
			if err != nil {
				return err
			}
			if err := tx.MergeRel(ctx, user, entity, "MENTIONED"); err != nil {
				return err
			}
		}

		for _, t := range a.Tokens {
			posProps := ports.Props{"pos": t.POS}
			word, err := tx.MergeNode(ctx,
				ports.NodeSpec{Label: "Word", Key: "text", KeyVal: t.Text,
					Domain: string(memory.ClassifyWord(t.Text, t.POS)), Memory: true},
				posProps, posProps)
			if err != nil {
				return err
			}
			posTag, err := tx.MergeNode(ctx,
				ports.NodeSpec{Label: "POSTag", Key: "tag", KeyVal: t.POS}, nil, nil)
			if err != nil {
				return err
			}
			if err := tx.MergeRel(ctx, word, posTag, "HAS_POS"); err != nil {
				return err
			}
			if err := tx.MergeRel(ctx, user, word, "USED"); err != nil {
				return err
			}
		}

		genderNode, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "Gender", Key: "value", KeyVal: a.Gender}, nil, nil)
		if err != nil {
			return err
		}
		return tx.MergeRel(ctx, user, genderNode, "INFERRED_GENDER")
	})
	if err != nil {
		s.logger.Error("failed to persist analysis",
			zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Debug("persisted analysis", zap.String("user_id", userID),
		zap.Int("tokens", len(a.Tokens)), zap.Int("entities", len(a.Entities)))
	return nil
}

// Slice returns a bounded cross-domain view of tagged memory nodes with
// their outgoing relationships, optionally restricted to one user's memories.
func (s *PAMStore) Slice(ctx context.Context, userID *string) []ports.SliceRow {
	rows, err := s.graph.Slice(ctx, ports.SliceQuery{
		Label: "Memory", UserID: userID, Limit: 200,
	})
	if err != nil {
		s.logger.Error("failed to slice memory graph", zap.Error(err))
		return nil
	}
	return rows
}
