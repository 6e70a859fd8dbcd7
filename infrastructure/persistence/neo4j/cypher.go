package neo4j

import (
	"fmt"
	"regexp"
	"strings"

	"engram-backend/application/ports"
	apperrors "engram-backend/pkg/errors"
)

// Labels, relationship types, and property names cannot be bound as Cypher
// parameters, so they are interpolated. Every interpolated identifier is
// checked against this pattern first; everything else goes through $params.
var identPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func validIdent(s string) error {
	if !identPattern.MatchString(s) {
		return fmt.Errorf("invalid graph identifier %q", s)
	}
	return nil
}

func validIdents(names ...string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := validIdent(name); err != nil {
			return apperrors.NewWriteError("bad query identifier", err)
		}
	}
	return nil
}

func buildMergeNode(spec ports.NodeSpec, onCreate, onMatch ports.Props) (string, map[string]any, error) {
	if err := validIdents(spec.Label, spec.Key, spec.Domain); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (n:`%s` {`%s`: $keyVal})\n", spec.Label, spec.Key)
	b.WriteString("ON CREATE SET n += $onCreate\n")
	b.WriteString("ON MATCH SET n += $onMatch\n")
	writeTag(&b, spec)
	b.WriteString("RETURN elementId(n) AS id")

	params := map[string]any{
		"keyVal":   spec.KeyVal,
		"onCreate": asParamMap(onCreate),
		"onMatch":  asParamMap(onMatch),
	}
	if spec.Domain != "" {
		params["memoryType"] = spec.Domain
	}
	return b.String(), params, nil
}

func buildCreateNode(spec ports.NodeSpec, props ports.Props) (string, map[string]any, error) {
	if err := validIdents(spec.Label, spec.Domain); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE (n:`%s`)\n", spec.Label)
	b.WriteString("SET n += $props\n")
	writeTag(&b, spec)
	b.WriteString("RETURN elementId(n) AS id")

	params := map[string]any{"props": asParamMap(props)}
	if spec.Domain != "" {
		params["memoryType"] = spec.Domain
	}
	return b.String(), params, nil
}

// writeTag appends the domain tag and memory marker shared by both node
// writers. The tag is re-applied on merge matches so relabeled nodes converge.
func writeTag(b *strings.Builder, spec ports.NodeSpec) {
	if spec.Domain != "" {
		b.WriteString("SET n.memory_type = $memoryType\n")
	}
	if spec.Memory {
		b.WriteString("SET n:Memory\n")
	}
}

func buildRel(from, to ports.NodeID, relType string, props ports.Props, merge bool) (string, map[string]any, error) {
	if err := validIdents(relType); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("MATCH (a) WHERE elementId(a) = $from\n")
	b.WriteString("MATCH (b) WHERE elementId(b) = $to\n")
	if merge {
		fmt.Fprintf(&b, "MERGE (a)-[:`%s`]->(b)", relType)
	} else {
		fmt.Fprintf(&b, "CREATE (a)-[r:`%s`]->(b)\nSET r += $props", relType)
	}

	params := map[string]any{"from": string(from), "to": string(to)}
	if !merge {
		params["props"] = asParamMap(props)
	}
	return b.String(), params, nil
}

func buildQuery(q ports.Query) (string, map[string]any, error) {
	b, params, err := matchClause(q)
	if err != nil {
		return "", nil, err
	}

	returns := make([]string, 0, len(q.Return))
	for _, prop := range q.Return {
		if err := validIdent(prop); err != nil {
			return "", nil, apperrors.NewReadError("bad return property", err)
		}
		returns = append(returns, fmt.Sprintf("n.`%s` AS `%s`", prop, prop))
	}
	fmt.Fprintf(b, "RETURN %s\n", strings.Join(returns, ", "))

	if q.OrderBy != "" {
		if err := validIdent(q.OrderBy); err != nil {
			return "", nil, apperrors.NewReadError("bad order property", err)
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(b, "ORDER BY n.`%s` %s\n", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(b, "LIMIT %d", q.Limit)
	}
	return b.String(), params, nil
}

func buildCount(q ports.Query) (string, map[string]any, error) {
	b, params, err := matchClause(q)
	if err != nil {
		return "", nil, err
	}
	b.WriteString("RETURN count(n) AS count")
	return b.String(), params, nil
}

func buildGroupCount(q ports.Query, prop string, limit int) (string, map[string]any, error) {
	b, params, err := matchClause(q)
	if err != nil {
		return "", nil, err
	}
	if err := validIdent(prop); err != nil {
		return "", nil, apperrors.NewReadError("bad group property", err)
	}
	fmt.Fprintf(b, "RETURN n.`%s` AS value, count(*) AS cnt\n", prop)
	b.WriteString("ORDER BY cnt DESC, value ASC\n")
	if limit > 0 {
		fmt.Fprintf(b, "LIMIT %d", limit)
	}
	return b.String(), params, nil
}

// matchClause emits the shared MATCH and WHERE prefix for read queries:
// either an anchored one-hop traversal or a plain label scan, with equality
// and substring filters bound as parameters.
func matchClause(q ports.Query) (*strings.Builder, map[string]any, error) {
	if err := validIdents(q.AnchorLabel, q.AnchorKey, q.Rel, q.Label, q.ContainsProp); err != nil {
		return nil, nil, err
	}

	b := &strings.Builder{}
	params := make(map[string]any)

	if q.AnchorLabel != "" {
		rel := ""
		if q.Rel != "" {
			rel = fmt.Sprintf(":`%s`", q.Rel)
		}
		fmt.Fprintf(b, "MATCH (a:`%s` {`%s`: $anchorVal})-[%s]->(n:`%s`)\n",
			q.AnchorLabel, q.AnchorKey, rel, q.Label)
		params["anchorVal"] = q.AnchorVal
	} else {
		fmt.Fprintf(b, "MATCH (n:`%s`)\n", q.Label)
	}

	var where []string
	for prop, val := range q.Equals {
		if err := validIdent(prop); err != nil {
			return nil, nil, apperrors.NewReadError("bad filter property", err)
		}
		param := "eq_" + prop
		where = append(where, fmt.Sprintf("n.`%s` = $%s", prop, param))
		params[param] = val
	}
	if q.ContainsProp != "" {
		where = append(where, fmt.Sprintf(
			"ANY(term IN $terms WHERE n.`%s` CONTAINS term)", q.ContainsProp))
		params["terms"] = q.ContainsAny
	}
	if len(where) > 0 {
		fmt.Fprintf(b, "WHERE %s\n", strings.Join(where, " AND "))
	}
	return b, params, nil
}

func buildSlice(q ports.SliceQuery) (string, map[string]any, error) {
	if err := validIdents(q.AnchorLabel, q.AnchorKey, q.Rel, q.Label, q.Domain); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	params := make(map[string]any)

	if q.AnchorLabel != "" {
		rel := ""
		if q.Rel != "" {
			rel = fmt.Sprintf(":`%s`", q.Rel)
		}
		fmt.Fprintf(&b, "MATCH (a:`%s`)-[r%s]->(n:`%s`)\n", q.AnchorLabel, rel, q.Label)
		var where []string
		if q.UserID != nil {
			where = append(where, fmt.Sprintf("a.`%s` = $userId", q.AnchorKey))
			params["userId"] = *q.UserID
		}
		if q.Domain != "" {
			where = append(where, "n.memory_type = $domain")
			params["domain"] = q.Domain
		}
		if len(where) > 0 {
			fmt.Fprintf(&b, "WHERE %s\n", strings.Join(where, " AND "))
		}
		if q.Expand {
			b.WriteString("OPTIONAL MATCH (n)-[r2]->(m)\n")
			b.WriteString("RETURN a, r, n, r2, m")
		} else {
			b.WriteString("RETURN a, r, n")
		}
		return b.String(), params, nil
	}

	fmt.Fprintf(&b, "MATCH (n:`%s`)\n", q.Label)
	var where []string
	if q.Domain != "" {
		where = append(where, "n.memory_type = $domain")
		params["domain"] = q.Domain
	}
	if q.UserID != nil {
		where = append(where, "EXISTS { MATCH (u:User {id: $userId})-[]->(n) }")
		params["userId"] = *q.UserID
	}
	if len(where) > 0 {
		fmt.Fprintf(&b, "WHERE %s\n", strings.Join(where, " AND "))
	}
	b.WriteString("OPTIONAL MATCH (n)-[r]->(m)\n")
	b.WriteString("RETURN n, r, m")
	return b.String(), params, nil
}

// asParamMap normalizes a possibly-nil props map into something the driver
// can always bind; `SET n += $p` with an empty map is a no-op.
func asParamMap(p ports.Props) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return map[string]any(p)
}
