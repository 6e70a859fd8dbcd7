package memory

// Domain identifies which of the memory domains an observation was routed to.
// It is stored on every tagged node as the memory_type property, alongside the
// generic Memory marker, so cross-domain queries never need to know concrete
// node types.
type Domain string

const (
	DomainSensory    Domain = "sensory"
	DomainMotor      Domain = "motor"
	DomainSemantic   Domain = "semantic"
	DomainSocial     Domain = "social"
	DomainTemporal   Domain = "temporal"
	DomainGeographic Domain = "geographic"
	DomainSentiment  Domain = "sentiment"
	DomainGeneral    Domain = "general"

	// Sensory sub-domains produced by the input-text classifier.
	DomainVisual   Domain = "visual"
	DomainAuditory Domain = "auditory"
)

// Role distinguishes who produced an utterance turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Sentiment is the polarity/subjectivity pair produced by the text analyzer,
// plus its classified label. Polarity is in [-1, 1], subjectivity in [0, 1].
type Sentiment struct {
	Polarity     float64
	Subjectivity float64
	Label        string
}

// Episode is one immutable utterance turn. Episodes are never merged: every
// turn is a distinct node even when the text repeats.
type Episode struct {
	ID        string
	Text      string
	Role      Role
	Timestamp string
	Sentiment *Sentiment
}

// ActionRecord is one motor act as returned by recall. Actions dedupe by
// text, so the timestamp is the first time the act was observed.
type ActionRecord struct {
	Text      string
	Timestamp string
}

// SentenceRecord is one sensory observation as returned by recall.
type SentenceRecord struct {
	Text      string
	InputType string
	Timestamp string
}

// FactRecord pairs a semantic subject with its description.
type FactRecord struct {
	Subject     string
	Description string
}

// TopicCount is one row of the social insights report: a distinct post text
// and how many times it was posted. Grouping is by exact text match, not
// topic; see SocialStore.Insights.
type TopicCount struct {
	Text  string
	Count int64
}

// Insights aggregates a user's social activity.
type Insights struct {
	PostCount int64
	TopTopics []TopicCount
}

// Analysis is the full output of analyzing one piece of text: POS-tagged
// tokens, named entities, an aggregate sentiment, and a gender guess resolved
// from the first detected person.
type Analysis struct {
	Tokens    []TaggedWord
	Entities  []NamedEntity
	Sentiment Sentiment
	Gender    string
}

// TaggedWord is one analyzed token.
type TaggedWord struct {
	Text string
	POS  string
}

// NamedEntity is one named-entity mention.
type NamedEntity struct {
	Text string
	Type string
}
