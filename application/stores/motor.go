package stores

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/memory"
	"engram-backend/pkg/utils"
)

// MotorStore records performed actions. Actions dedupe by text: repeating an
// act never creates a second node, and the create-time guard keeps the id
// and first-seen timestamp of the original.
type MotorStore struct {
	graph  ports.GraphStore
	logger *zap.Logger
}

// NewMotorStore bootstraps the motor schema. A schema failure is fatal.
func NewMotorStore(ctx context.Context, graph ports.GraphStore, logger *zap.Logger) (*MotorStore, error) {
	if err := graph.EnsureUnique(ctx, "Action", "text"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Action", "timestamp"); err != nil {
		return nil, err
	}
	logger.Debug("motor schema initialized")
	return &MotorStore{graph: graph, logger: logger}, nil
}

// Store links the user to the action identified by actionText, creating it
// on first sight.
func (s *MotorStore) Store(ctx context.Context, userID, actionText string) error {
	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		user, err := tx.MergeNode(ctx, ports.NodeSpec{Label: "User", Key: "id", KeyVal: userID}, nil, nil)
		if err != nil {
			return err
		}
		action, err := tx.MergeNode(ctx,
			ports.NodeSpec{Label: "Action", Key: "text", KeyVal: actionText,
				Domain: string(memory.DomainMotor), Memory: true},
			ports.Props{"id": uuid.NewString(), "timestamp": utils.NowTimestamp()}, nil)
		if err != nil {
			return err
		}
		return tx.MergeRel(ctx, user, action, "PERFORMED")
	})
	if err != nil {
		s.logger.Error("failed to store action",
			zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Debug("stored action", zap.String("user_id", userID), zap.String("action", actionText))
	return nil
}

// Actions returns the user's performed actions, most recently first-seen
// first.
func (s *MotorStore) Actions(ctx context.Context, userID string) []memory.ActionRecord {
	recs, err := s.graph.Query(ctx, ports.Query{
		AnchorLabel: "User", AnchorKey: "id", AnchorVal: userID,
		Rel: "PERFORMED", Label: "Action",
		Return:  []string{"text", "timestamp"},
		OrderBy: "timestamp", Desc: true,
	})
	if err != nil {
		s.logger.Error("failed to get actions",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}

	out := make([]memory.ActionRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, memory.ActionRecord{
			Text:      recString(rec, "text"),
			Timestamp: recString(rec, "timestamp"),
		})
	}
	return out
}

// Slice returns a bounded view of the action subgraph for visualization.
func (s *MotorStore) Slice(ctx context.Context, userID *string) []ports.SliceRow {
	rows, err := s.graph.Slice(ctx, ports.SliceQuery{
		AnchorLabel: "User", AnchorKey: "id", Rel: "PERFORMED", Label: "Action",
		UserID: userID, Limit: 50,
	})
	if err != nil {
		s.logger.Error("failed to slice motor memories", zap.Error(err))
		return nil
	}
	return rows
}
