// Package neo4j adapts the graph port to a Neo4j server over the official
// Bolt driver. Writes run inside managed transactions so the driver handles
// leader switches and transient failures; reads go through a session-per-call
// with a bounded retry of our own on connectivity errors.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"go.uber.org/zap"

	"engram-backend/application/ports"
	apperrors "engram-backend/pkg/errors"
)

// Config carries the connection settings for one store instance.
type Config struct {
	URI      string
	Username string
	Password string
	Database string

	// OperationTimeout bounds every graph call, reads and writes alike.
	OperationTimeout time.Duration
	// MaxRetries is the number of extra attempts for retryable read failures.
	MaxRetries int
}

// Store implements ports.GraphStore against a Neo4j server.
type Store struct {
	driver     neo4j.DriverWithContext
	database   string
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
}

var _ ports.GraphStore = (*Store)(nil)

// NewStore connects to the server and verifies connectivity before returning.
// Connection failures are configuration failures; the caller should not start.
func NewStore(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid neo4j target %q: %v", cfg.URI, err))
	}

	verifyCtx, cancel := context.WithTimeout(ctx, cfg.OperationTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewConfigError(fmt.Sprintf("neo4j unreachable at %q: %v", cfg.URI, err))
	}

	logger.Info("connected to neo4j", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))
	return &Store{
		driver:     driver,
		database:   cfg.Database,
		timeout:    cfg.OperationTimeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}, nil
}

// EnsureUnique implements ports.GraphStore.
func (s *Store) EnsureUnique(ctx context.Context, label, prop string) error {
	if err := validIdent(label); err != nil {
		return apperrors.NewSchemaError("bad constraint label", err)
	}
	if err := validIdent(prop); err != nil {
		return apperrors.NewSchemaError("bad constraint property", err)
	}
	stmt := fmt.Sprintf(
		"CREATE CONSTRAINT IF NOT EXISTS FOR (n:`%s`) REQUIRE n.`%s` IS UNIQUE", label, prop)
	if err := s.runSchema(ctx, stmt); err != nil {
		return apperrors.NewSchemaError(
			fmt.Sprintf("unique constraint on %s.%s", label, prop), err)
	}
	return nil
}

// EnsureIndex implements ports.GraphStore.
func (s *Store) EnsureIndex(ctx context.Context, label, prop string) error {
	if err := validIdent(label); err != nil {
		return apperrors.NewSchemaError("bad index label", err)
	}
	if err := validIdent(prop); err != nil {
		return apperrors.NewSchemaError("bad index property", err)
	}
	stmt := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS FOR (n:`%s`) ON (n.`%s`)", label, prop)
	if err := s.runSchema(ctx, stmt); err != nil {
		return apperrors.NewSchemaError(fmt.Sprintf("index on %s.%s", label, prop), err)
	}
	return nil
}

func (s *Store) runSchema(ctx context.Context, stmt string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)
	_, err := session.Run(ctx, stmt, nil)
	return err
}

// WriteTx implements ports.GraphStore. The managed transaction commits only
// when fn returns nil; the driver retries transient failures internally.
func (s *Store) WriteTx(ctx context.Context, fn func(tx ports.GraphOps) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&txOps{tx: tx})
	})
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Query implements ports.GraphStore.
func (s *Store) Query(ctx context.Context, q ports.Query) ([]ports.Record, error) {
	stmt, params, err := buildQuery(q)
	if err != nil {
		return nil, err
	}

	var out []ports.Record
	err = s.read(ctx, func(ctx context.Context, session neo4j.SessionWithContext) error {
		result, err := session.Run(ctx, stmt, params)
		if err != nil {
			return err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return err
		}
		out = make([]ports.Record, 0, len(records))
		for _, record := range records {
			rec := make(ports.Record, len(q.Return))
			for _, prop := range q.Return {
				if v, ok := record.Get(prop); ok {
					rec[prop] = v
				}
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewReadError("graph query", err)
	}
	return out, nil
}

// Count implements ports.GraphStore.
func (s *Store) Count(ctx context.Context, q ports.Query) (int64, error) {
	stmt, params, err := buildCount(q)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.read(ctx, func(ctx context.Context, session neo4j.SessionWithContext) error {
		result, err := session.Run(ctx, stmt, params)
		if err != nil {
			return err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return err
		}
		if v, ok := record.Get("count"); ok {
			count, _ = v.(int64)
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewReadError("graph count", err)
	}
	return count, nil
}

// GroupCount implements ports.GraphStore.
func (s *Store) GroupCount(ctx context.Context, q ports.Query, prop string, limit int) ([]ports.GroupRow, error) {
	stmt, params, err := buildGroupCount(q, prop, limit)
	if err != nil {
		return nil, err
	}

	var rows []ports.GroupRow
	err = s.read(ctx, func(ctx context.Context, session neo4j.SessionWithContext) error {
		result, err := session.Run(ctx, stmt, params)
		if err != nil {
			return err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return err
		}
		rows = make([]ports.GroupRow, 0, len(records))
		for _, record := range records {
			var row ports.GroupRow
			if v, ok := record.Get("value"); ok {
				row.Value = v
			}
			if v, ok := record.Get("cnt"); ok {
				row.Count, _ = v.(int64)
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewReadError("graph group count", err)
	}
	return rows, nil
}

// Slice implements ports.GraphStore.
func (s *Store) Slice(ctx context.Context, q ports.SliceQuery) ([]ports.SliceRow, error) {
	stmt, params, err := buildSlice(q)
	if err != nil {
		return nil, err
	}

	var rows []ports.SliceRow
	err = s.read(ctx, func(ctx context.Context, session neo4j.SessionWithContext) error {
		result, err := session.Run(ctx, stmt, params)
		if err != nil {
			return err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return err
		}
		rows = collectSliceRows(records, q)
		return nil
	})
	if err != nil {
		return nil, apperrors.NewReadError("graph slice", err)
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

// Close implements ports.GraphStore.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// read runs fn in a fresh read session with the per-operation timeout,
// retrying connectivity failures with doubling backoff.
func (s *Store) read(ctx context.Context, fn func(ctx context.Context, session neo4j.SessionWithContext) error) error {
	backoff := 50 * time.Millisecond
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying graph read",
				zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		err = func() error {
			opCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			session := s.driver.NewSession(opCtx, neo4j.SessionConfig{
				AccessMode:   neo4j.AccessModeRead,
				DatabaseName: s.database,
			})
			defer session.Close(opCtx)
			return fn(opCtx, session)
		}()
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}

func retryable(err error) bool {
	if neo4j.IsConnectivityError(err) {
		return true
	}
	var neoErr *db.Neo4jError
	return errors.As(err, &neoErr) && strings.HasPrefix(neoErr.Code, "Neo.TransientError")
}

func mapWriteError(err error) error {
	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) && strings.Contains(neoErr.Code, "ConstraintValidationFailed") {
		return apperrors.NewConflictError(neoErr.Msg)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("graph write timed out", err)
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.NewWriteError("graph write", err)
}

// txOps runs each port operation as one statement inside the managed
// transaction.
type txOps struct {
	tx neo4j.ManagedTransaction
}

var _ ports.GraphOps = (*txOps)(nil)

func (t *txOps) MergeNode(ctx context.Context, spec ports.NodeSpec, onCreate, onMatch ports.Props) (ports.NodeID, error) {
	stmt, params, err := buildMergeNode(spec, onCreate, onMatch)
	if err != nil {
		return "", err
	}
	return t.runReturningID(ctx, stmt, params)
}

func (t *txOps) CreateNode(ctx context.Context, spec ports.NodeSpec, props ports.Props) (ports.NodeID, error) {
	stmt, params, err := buildCreateNode(spec, props)
	if err != nil {
		return "", err
	}
	return t.runReturningID(ctx, stmt, params)
}

func (t *txOps) MergeRel(ctx context.Context, from, to ports.NodeID, relType string) error {
	stmt, params, err := buildRel(from, to, relType, nil, true)
	if err != nil {
		return err
	}
	_, err = t.tx.Run(ctx, stmt, params)
	return err
}

func (t *txOps) CreateRel(ctx context.Context, from, to ports.NodeID, relType string, props ports.Props) error {
	stmt, params, err := buildRel(from, to, relType, props, false)
	if err != nil {
		return err
	}
	_, err = t.tx.Run(ctx, stmt, params)
	return err
}

func (t *txOps) runReturningID(ctx context.Context, stmt string, params map[string]any) (ports.NodeID, error) {
	result, err := t.tx.Run(ctx, stmt, params)
	if err != nil {
		return "", err
	}
	record, err := result.Single(ctx)
	if err != nil {
		return "", err
	}
	v, ok := record.Get("id")
	if !ok {
		return "", apperrors.NewWriteError("node write returned no id", nil)
	}
	id, _ := v.(string)
	return ports.NodeID(id), nil
}

func collectSliceRows(records []*neo4j.Record, q ports.SliceQuery) []ports.SliceRow {
	rows := make([]ports.SliceRow, 0, len(records))
	if q.AnchorLabel != "" {
		// One anchored row per distinct anchor relationship, then expansion
		// rows whenever the optional second hop matched.
		seen := make(map[string]bool)
		for _, record := range records {
			anchor, aok := nodeValue(record, "a")
			target, tok := nodeValue(record, "n")
			if !aok || !tok {
				continue
			}
			if r, ok := relValue(record, "r"); ok && !seen[r.ElementId] {
				seen[r.ElementId] = true
				rows = append(rows, ports.SliceRow{
					From:     toPortNode(anchor),
					RelType:  r.Type,
					RelProps: r.Props,
					To:       toPortNode(target),
				})
			}
			if r2, ok := relValue(record, "r2"); ok {
				row := ports.SliceRow{From: toPortNode(target), RelType: r2.Type, RelProps: r2.Props}
				if m, ok := nodeValue(record, "m"); ok {
					row.To = toPortNode(m)
				}
				rows = append(rows, row)
			}
		}
		return rows
	}

	for _, record := range records {
		n, ok := nodeValue(record, "n")
		if !ok {
			continue
		}
		if r, ok := relValue(record, "r"); ok {
			row := ports.SliceRow{From: toPortNode(n), RelType: r.Type, RelProps: r.Props}
			if m, ok := nodeValue(record, "m"); ok {
				row.To = toPortNode(m)
			}
			rows = append(rows, row)
		} else {
			// Isolated node; still part of the slice.
			rows = append(rows, ports.SliceRow{From: toPortNode(n)})
		}
	}
	return rows
}

func nodeValue(record *neo4j.Record, key string) (dbtype.Node, bool) {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return dbtype.Node{}, false
	}
	n, ok := v.(dbtype.Node)
	return n, ok
}

func relValue(record *neo4j.Record, key string) (dbtype.Relationship, bool) {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return dbtype.Relationship{}, false
	}
	r, ok := v.(dbtype.Relationship)
	return r, ok
}

func toPortNode(n dbtype.Node) ports.Node {
	return ports.Node{ID: ports.NodeID(n.ElementId), Labels: n.Labels, Props: n.Props}
}
