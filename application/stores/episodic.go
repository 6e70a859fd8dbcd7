package stores

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/analysis"
	"engram-backend/domain/memory"
	"engram-backend/pkg/utils"
)

// EpisodicStore keeps the append-only conversation record. Every turn is a
// distinct Episode even when the text repeats, linked to merged MemoryWord
// nodes for keyword recall.
type EpisodicStore struct {
	graph    ports.GraphStore
	analyzer analysis.Analyzer
	logger   *zap.Logger
}

// NewEpisodicStore bootstraps the episodic schema. A schema failure is fatal.
func NewEpisodicStore(ctx context.Context, graph ports.GraphStore, analyzer analysis.Analyzer, logger *zap.Logger) (*EpisodicStore, error) {
	if err := graph.EnsureUnique(ctx, "Episode", "id"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Episode", "timestamp"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "MemoryWord", "text"); err != nil {
		return nil, err
	}
	logger.Debug("episodic schema initialized")
	return &EpisodicStore{graph: graph, analyzer: analyzer, logger: logger}, nil
}

// Record appends one utterance turn. An empty timestamp means now. A failed
// keyword analysis drops the word links but never the episode itself.
func (s *EpisodicStore) Record(ctx context.Context, userID, text string, role memory.Role, sentiment *memory.Sentiment, timestamp string) (memory.Episode, error) {
	if timestamp == "" {
		timestamp = utils.NowTimestamp()
	}
	episode := memory.Episode{
		ID:        uuid.NewString(),
		Text:      text,
		Role:      role,
		Timestamp: timestamp,
		Sentiment: sentiment,
	}
	keywords := s.keywords(ctx, text)

	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		user, err := tx.MergeNode(ctx, ports.NodeSpec{Label: "User", Key: "id", KeyVal: userID}, nil, nil)
		if err != nil {
			return err
		}

		props := ports.Props{
			"id":        episode.ID,
			"text":      text,
			"role":      string(role),
			"timestamp": timestamp,
		}
		if sentiment != nil {
			props["sentiment_polarity"] = sentiment.Polarity
			props["sentiment_subjectivity"] = sentiment.Subjectivity
			props["sentiment_label"] = sentiment.Label
		}
		ep, err := tx.CreateNode(ctx, ports.NodeSpec{Label: "Episode"}, props)
		if err != nil {
			return err
		}
		if err := tx.MergeRel(ctx, user, ep, "HAS_EPISODE"); err != nil {
			return err
		}

		for _, kw := range keywords {
			word, err := tx.MergeNode(ctx,
				ports.NodeSpec{Label: "MemoryWord", Key: "text", KeyVal: kw}, nil, nil)
			if err != nil {
				return err
			}
			if err := tx.MergeRel(ctx, ep, word, "CONTAINS_WORD"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to record interaction",
			zap.String("user_id", userID), zap.Error(err))
		return memory.Episode{}, err
	}

	s.logger.Debug("recorded interaction",
		zap.String("user_id", userID), zap.String("role", string(role)),
		zap.Int("keywords", len(keywords)))
	return episode, nil
}

// RecallRecent returns the user's latest episodes, newest first.
func (s *EpisodicStore) RecallRecent(ctx context.Context, userID string, limit int) []memory.Episode {
	recs, err := s.graph.Query(ctx, ports.Query{
		AnchorLabel: "User", AnchorKey: "id", AnchorVal: userID,
		Rel: "HAS_EPISODE", Label: "Episode",
		Return:  []string{"id", "text", "role", "timestamp"},
		OrderBy: "timestamp", Desc: true, Limit: limit,
	})
	if err != nil {
		s.logger.Error("failed to recall recent episodes",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return toEpisodes(recs)
}

// RecallRelated returns the user's episodes whose text contains any keyword
// of query, newest first. A query with no extractable keywords recalls
// nothing.
func (s *EpisodicStore) RecallRelated(ctx context.Context, userID, query string, limit int) []memory.Episode {
	keywords := s.keywords(ctx, query)
	if len(keywords) == 0 {
		s.logger.Debug("no keywords extracted for related recall")
		return nil
	}

	recs, err := s.graph.Query(ctx, ports.Query{
		AnchorLabel: "User", AnchorKey: "id", AnchorVal: userID,
		Rel: "HAS_EPISODE", Label: "Episode",
		ContainsProp: "text", ContainsAny: keywords,
		Return:  []string{"id", "text", "role", "timestamp"},
		OrderBy: "timestamp", Desc: true, Limit: limit,
	})
	if err != nil {
		s.logger.Error("failed to recall related episodes",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return toEpisodes(recs)
}

func (s *EpisodicStore) keywords(ctx context.Context, text string) []string {
	res, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.logger.Warn("keyword analysis failed", zap.Error(err))
		return nil
	}
	return memory.ExtractKeywords(res.Tokens)
}

func toEpisodes(recs []ports.Record) []memory.Episode {
	out := make([]memory.Episode, 0, len(recs))
	for _, rec := range recs {
		out = append(out, memory.Episode{
			ID:        recString(rec, "id"),
			Text:      recString(rec, "text"),
			Role:      memory.Role(recString(rec, "role")),
			Timestamp: recString(rec, "timestamp"),
		})
	}
	return out
}
