package ports

import "context"

// Props is a bag of node or relationship properties.
type Props map[string]any

// Record is one row of a read query, keyed by returned property name.
type Record map[string]any

// NodeID is an adapter-opaque node handle, valid for the lifetime of the
// operation (or transaction) that produced it.
type NodeID string

// NodeSpec identifies a node by label and unique key and carries its memory
// tagging. Domain is stored as the memory_type property; Memory adds the
// generic Memory marker so cross-domain queries can match tagged nodes
// without knowing concrete types. Tagging is declared here statically, never
// mutated at runtime.
type NodeSpec struct {
	Label  string
	Key    string // unique-key property name; empty for keyless creates
	KeyVal any
	Domain string
	Memory bool
}

// GraphOps are the write primitives available inside a write transaction.
type GraphOps interface {
	// MergeNode finds or creates the node identified by spec. The onCreate
	// properties are set only when the node is created (create-time guard);
	// onMatch properties are set only when it already existed. Callers that
	// want a property set on every call pass it in both maps.
	MergeNode(ctx context.Context, spec NodeSpec, onCreate, onMatch Props) (NodeID, error)

	// CreateNode always creates a new node with the given properties.
	// Uniqueness constraints still apply and surface as conflict errors.
	CreateNode(ctx context.Context, spec NodeSpec, props Props) (NodeID, error)

	// MergeRel idempotently relates two nodes.
	MergeRel(ctx context.Context, from, to NodeID, relType string) error

	// CreateRel always creates a new relationship carrying props.
	CreateRel(ctx context.Context, from, to NodeID, relType string, props Props) error
}

// Query describes a structured read. When AnchorLabel is set the target nodes
// are matched through an anchor node and relationship
// (anchor)-[:Rel]->(target); otherwise all nodes of Label match.
type Query struct {
	AnchorLabel string
	AnchorKey   string
	AnchorVal   any
	Rel         string

	Label string

	// Equals filters target nodes by property equality.
	Equals Props

	// ContainsProp/ContainsAny keep only targets whose ContainsProp value
	// contains any of the terms as a substring (keyword retrieval).
	ContainsProp string
	ContainsAny  []string

	// Return lists the target properties to project.
	Return []string

	// OrderBy orders results by a target property. Ties are broken
	// arbitrarily; no secondary sort key is applied.
	OrderBy string
	Desc    bool

	// Limit bounds the result; zero means unbounded.
	Limit int
}

// GroupRow is one row of a group-count aggregation.
type GroupRow struct {
	Value any
	Count int64
}

// Node is a materialized graph node as returned by Slice.
type Node struct {
	ID     NodeID
	Labels []string
	Props  Props
}

// SliceRow is one relationship of a visualization slice.
type SliceRow struct {
	From     Node
	RelType  string
	RelProps Props
	To       Node
}

// SliceQuery describes a bounded visualization read: relationships from
// anchor nodes to Label targets, optionally expanded one hop further.
type SliceQuery struct {
	AnchorLabel string // "" anchors directly on Label nodes
	AnchorKey   string
	Rel         string // "" matches any outgoing relationship
	Label       string
	Domain      string  // optional memory_type filter on targets
	UserID      *string // optional anchor filter; nil means all users
	Expand      bool    // also return targets' outgoing relationships
	Limit       int
}

// GraphStore is the capability the memory system requires from its graph
// engine: idempotent schema statements, all-or-nothing write transactions,
// and structured reads. Implementations must scope any underlying session to
// a single call and release it on every exit path.
type GraphStore interface {
	// EnsureUnique idempotently declares a uniqueness constraint.
	EnsureUnique(ctx context.Context, label, prop string) error

	// EnsureIndex idempotently declares a lookup index.
	EnsureIndex(ctx context.Context, label, prop string) error

	// WriteTx runs fn inside one write transaction. If fn returns an
	// error, nothing fn wrote is visible afterwards.
	WriteTx(ctx context.Context, fn func(tx GraphOps) error) error

	// Query runs a structured read and returns the projected rows.
	Query(ctx context.Context, q Query) ([]Record, error)

	// Count returns the number of target nodes matching q.
	Count(ctx context.Context, q Query) (int64, error)

	// GroupCount groups matching targets by prop and returns the most
	// frequent values, descending.
	GroupCount(ctx context.Context, q Query, prop string, limit int) ([]GroupRow, error)

	// Slice returns a bounded set of relationships for visualization.
	Slice(ctx context.Context, q SliceQuery) ([]SliceRow, error)

	// Close releases the underlying driver resources.
	Close(ctx context.Context) error
}
