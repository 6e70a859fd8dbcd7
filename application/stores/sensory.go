package stores

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"engram-backend/application/ports"
	"engram-backend/domain/memory"
	"engram-backend/pkg/utils"
)

// sensoryTTL is how long raw inputs stay peekable before they are considered
// flushed. The graph write is the durable record; the cache is best effort.
const sensoryTTL = 2 * time.Second

// CachedInput is one raw sensory observation still inside the TTL window.
type CachedInput struct {
	Type string
	Text string
}

// SensoryStore records perceptual observations as Sentence nodes decomposed
// into position-ordered word relationships.
type SensoryStore struct {
	graph  ports.GraphStore
	cache  *ristretto.Cache
	logger *zap.Logger
}

// NewSensoryStore bootstraps the sensory schema and the short-lived input
// cache. A schema failure is fatal.
func NewSensoryStore(ctx context.Context, graph ports.GraphStore, logger *zap.Logger) (*SensoryStore, error) {
	if err := graph.EnsureUnique(ctx, "Sentence", "timestamp"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Word", "text"); err != nil {
		return nil, err
	}
	if err := graph.EnsureIndex(ctx, "Sentence", "timestamp"); err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("sensory schema initialized")
	return &SensoryStore{graph: graph, cache: cache, logger: logger}, nil
}

// Record stores one sensory observation and returns its timestamp, which is
// the observation's identity from then on. The input is classified into a
// sensory sub-domain from cue words in the text.
func (s *SensoryStore) Record(ctx context.Context, userID, inputType, text string) (string, error) {
	timestamp := utils.NowTimestamp()
	s.cache.SetWithTTL(timestamp, CachedInput{Type: inputType, Text: text}, 1, sensoryTTL)

	domain := memory.ClassifyInput(text)

	err := s.graph.WriteTx(ctx, func(tx ports.GraphOps) error {
		user, err := tx.MergeNode(ctx, ports.NodeSpec{Label: "User", Key: "id", KeyVal: userID}, nil, nil)
		if err != nil {
			return err
		}
		sentence, err := tx.CreateNode(ctx,
			ports.NodeSpec{Label: "Sentence", Domain: string(domain), Memory: true},
			ports.Props{"text": text, "type": inputType, "timestamp": timestamp})
		if err != nil {
			return err
		}
		if err := tx.MergeRel(ctx, user, sentence, "PERCEIVED"); err != nil {
			return err
		}
		for i, word := range strings.Fields(text) {
			w, err := tx.MergeNode(ctx,
				ports.NodeSpec{Label: "Word", Key: "text", KeyVal: strings.ToLower(word)}, nil, nil)
			if err != nil {
				return err
			}
			if err := tx.CreateRel(ctx, sentence, w, "CONTAINS",
				ports.Props{"position": i, "timestamp": timestamp}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to record sensory input",
			zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	s.logger.Debug("recorded sensory input",
		zap.String("user_id", userID), zap.String("memory_type", string(domain)))
	return timestamp, nil
}

// Peek returns the raw input for a timestamp if it is still inside the TTL
// window. Admission is best effort: a false return says nothing about
// whether the observation was persisted.
func (s *SensoryStore) Peek(timestamp string) (CachedInput, bool) {
	v, ok := s.cache.Get(timestamp)
	if !ok {
		return CachedInput{}, false
	}
	input, ok := v.(CachedInput)
	return input, ok
}

// Inputs returns all of a user's sensory observations, most recent first.
func (s *SensoryStore) Inputs(ctx context.Context, userID string) []memory.SentenceRecord {
	recs, err := s.graph.Query(ctx, ports.Query{
		AnchorLabel: "User", AnchorKey: "id", AnchorVal: userID,
		Rel: "PERCEIVED", Label: "Sentence",
		Return:  []string{"text", "type", "timestamp"},
		OrderBy: "timestamp", Desc: true,
	})
	if err != nil {
		s.logger.Error("failed to get sensory inputs",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}

	out := make([]memory.SentenceRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, memory.SentenceRecord{
			Text:      recString(rec, "text"),
			InputType: recString(rec, "type"),
			Timestamp: recString(rec, "timestamp"),
		})
	}
	return out
}

// Slice returns a bounded view of the perception subgraph, expanded down to
// the word level, for visualization.
func (s *SensoryStore) Slice(ctx context.Context, userID *string) []ports.SliceRow {
	rows, err := s.graph.Slice(ctx, ports.SliceQuery{
		AnchorLabel: "User", AnchorKey: "id", Rel: "PERCEIVED", Label: "Sentence",
		UserID: userID, Expand: true, Limit: 50,
	})
	if err != nil {
		s.logger.Error("failed to slice sensory memories", zap.Error(err))
		return nil
	}
	return rows
}

// Close releases the input cache.
func (s *SensoryStore) Close() error {
	s.cache.Close()
	return nil
}
