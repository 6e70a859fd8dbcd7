package memory

import (
	"testing"

	"engram-backend/domain/analysis"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tokens := []analysis.Token{
		{Text: "I", Lemma: "i", POS: "PRON", Stop: true},
		{Text: "saw", Lemma: "see", POS: "VERB"},
		{Text: "the", Lemma: "the", POS: "DET", Stop: true},
		{Text: "dogs", Lemma: "dog", POS: "NOUN"},
		{Text: "in", Lemma: "in", POS: "ADP", Stop: true},
		{Text: "London", Lemma: "london", POS: "PROPN"},
		{Text: "quickly", Lemma: "quickly", POS: "ADV"},
		{Text: "Dogs", Lemma: "Dog", POS: "NOUN"}, // dedupes case-insensitively
	}

	assert.Equal(t, []string{"see", "dog", "london"}, ExtractKeywords(tokens))
}

func TestExtractKeywordsEmpty(t *testing.T) {
	assert.Empty(t, ExtractKeywords(nil))

	stopOnly := []analysis.Token{
		{Text: "the", Lemma: "the", POS: "DET", Stop: true},
		{Text: "is", Lemma: "be", POS: "AUX", Stop: true},
	}
	assert.Empty(t, ExtractKeywords(stopOnly))
}
