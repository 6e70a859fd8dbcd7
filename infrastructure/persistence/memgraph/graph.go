// Package memgraph is an in-memory GraphStore used by tests and local
// development. It implements the same merge, constraint, and transaction
// semantics the Neo4j adapter gets from the real engine: merge-writes are
// idempotent by unique key, uniqueness constraints reject duplicate creates,
// and write transactions roll back completely on error.
package memgraph

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"engram-backend/application/ports"
	apperrors "engram-backend/pkg/errors"
)

type node struct {
	id     ports.NodeID
	labels map[string]bool
	props  ports.Props
}

type rel struct {
	from, to ports.NodeID
	typ      string
	props    ports.Props
}

// Graph is the in-memory store. All access is serialized by one mutex; write
// transactions hold it for their full extent, so a failed transaction can
// restore the pre-transaction state without other writers observing partial
// results.
type Graph struct {
	mu      sync.Mutex
	nextID  int
	nodes   map[ports.NodeID]*node
	rels    []rel
	uniques map[string]map[string]bool
	indexes map[string]map[string]bool
}

// New creates an empty in-memory graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[ports.NodeID]*node),
		uniques: make(map[string]map[string]bool),
		indexes: make(map[string]map[string]bool),
	}
}

var _ ports.GraphStore = (*Graph)(nil)

// EnsureUnique implements ports.GraphStore. Re-declaring is a no-op.
func (g *Graph) EnsureUnique(_ context.Context, label, prop string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.uniques[label] == nil {
		g.uniques[label] = make(map[string]bool)
	}
	g.uniques[label][prop] = true
	return nil
}

// EnsureIndex implements ports.GraphStore. Indexes are bookkeeping only;
// lookups scan.
func (g *Graph) EnsureIndex(_ context.Context, label, prop string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.indexes[label] == nil {
		g.indexes[label] = make(map[string]bool)
	}
	g.indexes[label][prop] = true
	return nil
}

// WriteTx implements ports.GraphStore. The whole graph is snapshotted before
// fn runs; any error restores the snapshot so nothing fn wrote stays visible.
func (g *Graph) WriteTx(ctx context.Context, fn func(tx ports.GraphOps) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapNodes := make(map[ports.NodeID]*node, len(g.nodes))
	for id, n := range g.nodes {
		snapNodes[id] = n.clone()
	}
	snapRels := make([]rel, len(g.rels))
	copy(snapRels, g.rels)
	snapNext := g.nextID

	if err := fn(&txOps{g: g, ctx: ctx}); err != nil {
		g.nodes = snapNodes
		g.rels = snapRels
		g.nextID = snapNext
		return err
	}
	return nil
}

// txOps applies writes directly; the transaction mutex is already held.
type txOps struct {
	g   *Graph
	ctx context.Context
}

var _ ports.GraphOps = (*txOps)(nil)

func (t *txOps) MergeNode(_ context.Context, spec ports.NodeSpec, onCreate, onMatch ports.Props) (ports.NodeID, error) {
	g := t.g
	if existing := g.findByKey(spec.Label, spec.Key, spec.KeyVal); existing != nil {
		applyProps(existing, onMatch)
		tag(existing, spec)
		return existing.id, nil
	}

	n := g.newNode(spec.Label)
	n.props[spec.Key] = spec.KeyVal
	applyProps(n, onCreate)
	tag(n, spec)
	return n.id, nil
}

func (t *txOps) CreateNode(_ context.Context, spec ports.NodeSpec, props ports.Props) (ports.NodeID, error) {
	g := t.g
	for prop := range g.uniques[spec.Label] {
		val, ok := props[prop]
		if !ok {
			continue
		}
		if g.findByKey(spec.Label, prop, val) != nil {
			return "", apperrors.NewConflictError(
				fmt.Sprintf("duplicate %s.%s = %v", spec.Label, prop, val))
		}
	}

	n := g.newNode(spec.Label)
	applyProps(n, props)
	tag(n, spec)
	return n.id, nil
}

func (t *txOps) MergeRel(_ context.Context, from, to ports.NodeID, relType string) error {
	g := t.g
	if err := g.checkNodes(from, to); err != nil {
		return err
	}
	for _, r := range g.rels {
		if r.from == from && r.to == to && r.typ == relType {
			return nil
		}
	}
	g.rels = append(g.rels, rel{from: from, to: to, typ: relType})
	return nil
}

func (t *txOps) CreateRel(_ context.Context, from, to ports.NodeID, relType string, props ports.Props) error {
	g := t.g
	if err := g.checkNodes(from, to); err != nil {
		return err
	}
	p := make(ports.Props, len(props))
	for k, v := range props {
		p[k] = v
	}
	g.rels = append(g.rels, rel{from: from, to: to, typ: relType, props: p})
	return nil
}

// Query implements ports.GraphStore.
func (g *Graph) Query(_ context.Context, q ports.Query) ([]ports.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	targets := g.match(q)
	sortNodes(targets, q.OrderBy, q.Desc)
	if q.Limit > 0 && len(targets) > q.Limit {
		targets = targets[:q.Limit]
	}

	records := make([]ports.Record, 0, len(targets))
	for _, n := range targets {
		rec := make(ports.Record, len(q.Return))
		for _, prop := range q.Return {
			rec[prop] = n.props[prop]
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count implements ports.GraphStore.
func (g *Graph) Count(_ context.Context, q ports.Query) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int64(len(g.match(q))), nil
}

// GroupCount implements ports.GraphStore. Rows come back ordered by count
// descending; equal counts order by value for determinism.
func (g *Graph) GroupCount(_ context.Context, q ports.Query, prop string, limit int) ([]ports.GroupRow, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	counts := make(map[string]*ports.GroupRow)
	for _, n := range g.match(q) {
		key := fmt.Sprintf("%v", n.props[prop])
		if row, ok := counts[key]; ok {
			row.Count++
		} else {
			counts[key] = &ports.GroupRow{Value: n.props[prop], Count: 1}
		}
	}

	rows := make([]ports.GroupRow, 0, len(counts))
	for _, row := range counts {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return fmt.Sprintf("%v", rows[i].Value) < fmt.Sprintf("%v", rows[j].Value)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Slice implements ports.GraphStore.
func (g *Graph) Slice(_ context.Context, q ports.SliceQuery) ([]ports.SliceRow, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var rows []ports.SliceRow

	if q.AnchorLabel != "" {
		for _, anchor := range g.byLabel(q.AnchorLabel) {
			if q.UserID != nil && anchor.props[q.AnchorKey] != *q.UserID {
				continue
			}
			for _, r := range g.rels {
				if r.from != anchor.id || (q.Rel != "" && r.typ != q.Rel) {
					continue
				}
				target := g.nodes[r.to]
				if !g.matchesSliceTarget(target, q) {
					continue
				}
				rows = append(rows, g.sliceRow(anchor, r, target))
				if q.Expand {
					rows = append(rows, g.outgoing(target)...)
				}
			}
		}
	} else {
		for _, target := range g.byLabel(q.Label) {
			if !g.matchesSliceTarget(target, q) {
				continue
			}
			if q.UserID != nil && !g.linkedFromUser(target, *q.UserID) {
				continue
			}
			out := g.outgoing(target)
			if len(out) == 0 {
				rows = append(rows, ports.SliceRow{From: materialize(target)})
				continue
			}
			rows = append(rows, out...)
		}
	}

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

// Close implements ports.GraphStore.
func (g *Graph) Close(context.Context) error {
	return nil
}

// ---- internals ----

func (g *Graph) newNode(label string) *node {
	g.nextID++
	n := &node{
		id:     ports.NodeID(strconv.Itoa(g.nextID)),
		labels: map[string]bool{label: true},
		props:  make(ports.Props),
	}
	g.nodes[n.id] = n
	return n
}

func (g *Graph) findByKey(label, key string, val any) *node {
	for _, n := range g.nodes {
		if n.labels[label] && n.props[key] == val {
			return n
		}
	}
	return nil
}

func (g *Graph) byLabel(label string) []*node {
	var out []*node
	for _, n := range g.nodes {
		if n.labels[label] {
			out = append(out, n)
		}
	}
	// Map iteration order is random; keep scans deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (g *Graph) checkNodes(ids ...ports.NodeID) error {
	for _, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			return apperrors.NewWriteError(fmt.Sprintf("unknown node %s", id), nil)
		}
	}
	return nil
}

func (g *Graph) match(q ports.Query) []*node {
	var candidates []*node
	if q.AnchorLabel != "" {
		seen := make(map[ports.NodeID]bool)
		for _, anchor := range g.byLabel(q.AnchorLabel) {
			if anchor.props[q.AnchorKey] != q.AnchorVal {
				continue
			}
			for _, r := range g.rels {
				if r.from != anchor.id || (q.Rel != "" && r.typ != q.Rel) {
					continue
				}
				target := g.nodes[r.to]
				if target.labels[q.Label] && !seen[target.id] {
					seen[target.id] = true
					candidates = append(candidates, target)
				}
			}
		}
	} else {
		candidates = g.byLabel(q.Label)
	}

	var out []*node
	for _, n := range candidates {
		if !matchesEquals(n, q.Equals) {
			continue
		}
		if q.ContainsProp != "" && !containsAny(n, q.ContainsProp, q.ContainsAny) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (g *Graph) matchesSliceTarget(n *node, q ports.SliceQuery) bool {
	if n == nil {
		return false
	}
	if q.Label != "" && !n.labels[q.Label] {
		return false
	}
	if q.Domain != "" && n.props["memory_type"] != q.Domain {
		return false
	}
	return true
}

func (g *Graph) linkedFromUser(target *node, userID string) bool {
	for _, r := range g.rels {
		if r.to != target.id {
			continue
		}
		from := g.nodes[r.from]
		if from != nil && from.labels["User"] && from.props["id"] == userID {
			return true
		}
	}
	return false
}

func (g *Graph) outgoing(from *node) []ports.SliceRow {
	var rows []ports.SliceRow
	for _, r := range g.rels {
		if r.from != from.id {
			continue
		}
		rows = append(rows, g.sliceRow(from, r, g.nodes[r.to]))
	}
	return rows
}

func (g *Graph) sliceRow(from *node, r rel, to *node) ports.SliceRow {
	row := ports.SliceRow{From: materialize(from), RelType: r.typ, RelProps: r.props}
	if to != nil {
		row.To = materialize(to)
	}
	return row
}

func materialize(n *node) ports.Node {
	labels := make([]string, 0, len(n.labels))
	for l := range n.labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	props := make(ports.Props, len(n.props))
	for k, v := range n.props {
		props[k] = v
	}
	return ports.Node{ID: n.id, Labels: labels, Props: props}
}

func (n *node) clone() *node {
	labels := make(map[string]bool, len(n.labels))
	for l := range n.labels {
		labels[l] = true
	}
	props := make(ports.Props, len(n.props))
	for k, v := range n.props {
		props[k] = v
	}
	return &node{id: n.id, labels: labels, props: props}
}

func applyProps(n *node, props ports.Props) {
	for k, v := range props {
		n.props[k] = v
	}
}

func tag(n *node, spec ports.NodeSpec) {
	if spec.Domain != "" {
		n.props["memory_type"] = spec.Domain
	}
	if spec.Memory {
		n.labels["Memory"] = true
	}
}

func matchesEquals(n *node, equals ports.Props) bool {
	for k, v := range equals {
		if n.props[k] != v {
			return false
		}
	}
	return true
}

func containsAny(n *node, prop string, terms []string) bool {
	text, ok := n.props[prop].(string)
	if !ok {
		return false
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func sortNodes(nodes []*node, orderBy string, desc bool) {
	if orderBy == "" {
		return
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		a := fmt.Sprintf("%v", nodes[i].props[orderBy])
		b := fmt.Sprintf("%v", nodes[j].props[orderBy])
		if desc {
			return a > b
		}
		return a < b
	})
}
