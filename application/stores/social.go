package stores

import (
	"context"

	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/memory"
	"engram-backend/pkg/utils"
)

// SocialStore tracks social identities and their interaction history. Posts
// are append-only: identical text posted twice is two posts.
type SocialStore struct {
	graph  ports.GraphStore
	logger *zap.Logger
}

// NewSocialStore bootstraps the social schema. A schema failure is fatal.
func NewSocialStore(ctx context.Context, graph ports.GraphStore, logger *zap.Logger) (*SocialStore, error) {
	if err := graph.EnsureUnique(ctx, "SocialUser", "id"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "SocialPost", "timestamp"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Memory", "memory_type"); err != nil {
		return nil, err
	}
	logger.Debug("social schema initialized")
	return &SocialStore{graph: graph, logger: logger}, nil
}

// RegisterUser creates or refreshes the social identity for userID.
func (s *SocialStore) RegisterUser(ctx context.Context, userID string) error {
	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		created := ports.Props{"created_at": utils.NowTimestamp()}
		_, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "SocialUser", Key: "id", KeyVal: userID,
				Domain: string(memory.DomainSocial), Memory: true},
			created, created)
		return err
	})
	if err != nil {
		s.logger.Error("failed to register social user",
			zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Info("registered social user", zap.String("user_id", userID))
	return nil
}

// LogInteraction appends one post for the user.
func (s *SocialStore) LogInteraction(ctx context.Context, userID, message string) error {
	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		user, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "SocialUser", Key: "id", KeyVal: userID}, nil, nil)
		if err != nil {
			return err
		}
		post, err := tx.CreateNode(ctx,
			ports.NodeSpec{Label: "SocialPost", Domain: string(memory.DomainSocial), Memory: true},
			ports.Props{"text": message, "timestamp": utils.NowTimestamp()})
		if err != nil {
			return err
		}
		return tx.MergeRel(ctx, user, post, "POSTED")
	})
	if err != nil {
		s.logger.Error("failed to log interaction",
			zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Debug("logged interaction", zap.String("user_id", userID))
	return nil
}

// InteractionCount returns how many posts the user has made.
func (s *SocialStore) InteractionCount(ctx context.Context, userID string) int64 {
	count, err := s.graph.Count(ctx, ports.Query{
		AnchorLabel: "SocialUser", AnchorKey: "id", AnchorVal: userID,
		Rel: "POSTED", Label: "SocialPost",
	})
	if err != nil {
		s.logger.Error("failed to count interactions",
			zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	return count
}

// Insights aggregates a user's posting activity: total count and the five
// most repeated post texts. Grouping is by exact text, so rephrasings of the
// same topic count separately.
func (s *SocialStore) Insights(ctx context.Context, userID string) memory.Insights {
	q := ports.Query{
		AnchorLabel: "SocialUser", AnchorKey: "id", AnchorVal: userID,
		Rel: "POSTED", Label: "SocialPost",
	}

	count, err := s.graph.Count(ctx, q)
	if err != nil {
		s.logger.Error("failed to get social insights",
			zap.String("user_id", userID), zap.Error(err))
		return memory.Insights{}
	}

	rows, err := s.graph.GroupCount(ctx, q, "text", 5)
	if err != nil {
		s.logger.Error("failed to get social insights",
			zap.String("user_id", userID), zap.Error(err))
		return memory.Insights{PostCount: count}
	}

	insights := memory.Insights{PostCount: count}
	for _, row := range rows {
		text, _ := row.Value.(string)
		insights.TopTopics = append(insights.TopTopics, memory.TopicCount{
			Text:  text,
			Count: row.Count,
		})
	}
	return insights
}

// Slice returns a bounded view of the social subgraph for visualization.
func (s *SocialStore) Slice(ctx context.Context, userID *string) []ports.SliceRow {
	rows, err := s.graph.Slice(ctx, ports.SliceQuery{
		AnchorLabel: "SocialUser", AnchorKey: "id", Rel: "POSTED", Label: "SocialPost",
		Domain: string(memory.DomainSocial), UserID: userID, Limit: 100,
	})
	if err != nil {
		s.logger.Error("failed to slice social memories", zap.Error(err))
		return nil
	}
	return rows
}
