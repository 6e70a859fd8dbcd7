// Package stores implements the six memory domains over the graph port:
// episodic, sensory, motor, perception-action (PAM), semantic, and social.
// Each store bootstraps its own schema at construction time. Writes surface
// their errors; reads log failures and degrade to empty results so a flaky
// graph never takes recall down with it.
package stores

import (
	"engram-backend/application/ports"
)

func recString(rec ports.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}
