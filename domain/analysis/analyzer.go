package analysis

import "context"

// Analyzer is the narrow contract the memory system consumes from its
// natural-language pipeline. Implementations are black boxes: the memory
// stores care only about the token tuples, entity mentions, and the sentiment
// pair defined here.
type Analyzer interface {
	// Analyze processes raw text and returns its tokens, named entities,
	// and aggregate sentiment.
	Analyze(ctx context.Context, text string) (Result, error)
}

// Result is the full analyzer output for one piece of text.
type Result struct {
	Tokens    []Token
	Entities  []Entity
	Sentiment SentimentScore
}

// Token is one analyzed token: surface form, lemma, coarse part-of-speech tag
// (universal tags: NOUN, PROPN, VERB, ADJ, ADV, ...) and a stop-word flag.
type Token struct {
	Text  string
	Lemma string
	POS   string
	Stop  bool
}

// Entity is one named-entity mention with its type (PERSON, ORG, GPE, ...).
type Entity struct {
	Text string
	Type string
}

// SentimentScore is the raw polarity/subjectivity pair. Polarity is in
// [-1, 1], subjectivity in [0, 1].
type SentimentScore struct {
	Polarity     float64
	Subjectivity float64
}

// GenderDetector maps a first name to a gender label, or "unknown" when the
// name is not recognized.
type GenderDetector interface {
	Detect(firstName string) string
}
