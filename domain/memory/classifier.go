package memory

import "strings"

// The classification tables below are the routing rules that send an
// observation into a memory domain. They are deliberately explicit lookup
// tables: deterministic, side-effect free, and testable. Nothing here is
// inferred at runtime.

// entityDomains maps a named-entity type to its memory domain.
var entityDomains = map[string]Domain{
	"PERSON": DomainSocial,
	"ORG":    DomainSocial,
	"DATE":   DomainTemporal,
	"GPE":    DomainGeographic,
	"LOC":    DomainGeographic,
}

// motorVerbs is the fixed set of verbs routed to motor memory.
var motorVerbs = map[string]bool{
	"move": true, "press": true, "turn": true,
	"click": true, "go": true, "run": true,
}

// sensoryWords is the fixed set of perception words routed to sensory memory.
var sensoryWords = map[string]bool{
	"see": true, "hear": true, "feel": true,
	"touch": true, "smell": true, "taste": true,
}

// visualCues and auditoryCues classify raw sensory input text by substring.
var (
	visualCues   = []string{"see", "saw", "look"}
	auditoryCues = []string{"hear", "sound", "listen"}
)

// ClassifyEntity maps a named-entity type to a memory domain. Unknown types
// default to semantic.
func ClassifyEntity(entityType string) Domain {
	if d, ok := entityDomains[entityType]; ok {
		return d
	}
	return DomainSemantic
}

// ClassifyWord routes a word into a memory domain given its part of speech.
// Precedence: motor verbs first (the word must actually be a verb), then
// sensory perception words regardless of POS, then nouns and proper nouns to
// semantic, then general.
func ClassifyWord(word, pos string) Domain {
	w := strings.ToLower(word)
	if pos == "VERB" && motorVerbs[w] {
		return DomainMotor
	}
	if sensoryWords[w] {
		return DomainSensory
	}
	if pos == "NOUN" || pos == "PROPN" {
		return DomainSemantic
	}
	return DomainGeneral
}

// ClassifyInput routes raw sensory input text into a sensory sub-domain by
// cue-word substring match.
func ClassifyInput(text string) Domain {
	lower := strings.ToLower(text)
	for _, cue := range visualCues {
		if strings.Contains(lower, cue) {
			return DomainVisual
		}
	}
	for _, cue := range auditoryCues {
		if strings.Contains(lower, cue) {
			return DomainAuditory
		}
	}
	return DomainSensory
}

// SentimentLabel converts a polarity score into a label. Scores within 0.1 of
// zero are neutral.
func SentimentLabel(polarity float64) string {
	switch {
	case polarity > 0.1:
		return "positive"
	case polarity < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}
