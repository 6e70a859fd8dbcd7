package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, text string) Result {
	t.Helper()
	res, err := NewHeuristicAnalyzer().Analyze(context.Background(), text)
	require.NoError(t, err)
	return res
}

func tokenByText(res Result, text string) (Token, bool) {
	for _, tok := range res.Tokens {
		if tok.Text == text {
			return tok, true
		}
	}
	return Token{}, false
}

func TestTokenization(t *testing.T) {
	res := analyze(t, "I saw Alice's dog, running fast!")

	var texts []string
	for _, tok := range res.Tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"I", "saw", "Alice's", "dog", "running", "fast"}, texts)
}

func TestLemmasAndStopWords(t *testing.T) {
	res := analyze(t, "I saw the dogs running")

	saw, ok := tokenByText(res, "saw")
	require.True(t, ok)
	assert.Equal(t, "see", saw.Lemma)
	assert.Equal(t, "VERB", saw.POS)

	dogs, ok := tokenByText(res, "dogs")
	require.True(t, ok)
	assert.Equal(t, "dog", dogs.Lemma)
	assert.Equal(t, "NOUN", dogs.POS)

	the, ok := tokenByText(res, "the")
	require.True(t, ok)
	assert.True(t, the.Stop)
	assert.False(t, dogs.Stop)
}

func TestPOSGuesses(t *testing.T) {
	tests := []struct {
		text string
		word string
		want string
	}{
		{"please move the box", "move", "VERB"},
		{"we walked quickly home", "quickly", "ADV"},
		{"a wonderful day", "wonderful", "ADJ"},
		{"I met Bob yesterday", "Bob", "PROPN"},
		{"there are 42 reasons", "42", "NUM"},
		{"the table is set", "table", "NOUN"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			tok, ok := tokenByText(analyze(t, tt.text), tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.want, tok.POS)
		})
	}
}

func TestEntityExtraction(t *testing.T) {
	res := analyze(t, "I met Alice in London on Monday")

	require.Len(t, res.Entities, 3)
	assert.Equal(t, Entity{Text: "Alice", Type: "PERSON"}, res.Entities[0])
	assert.Equal(t, Entity{Text: "London", Type: "GPE"}, res.Entities[1])
	assert.Equal(t, Entity{Text: "Monday", Type: "DATE"}, res.Entities[2])
}

func TestSentenceInitialCapitalIsNotAnEntity(t *testing.T) {
	res := analyze(t, "Yesterday was fine")
	for _, ent := range res.Entities {
		assert.NotEqual(t, "Was", ent.Text)
	}
}

func TestSentimentScoring(t *testing.T) {
	pos := analyze(t, "this is a wonderful day")
	assert.Greater(t, pos.Sentiment.Polarity, 0.1)
	assert.Greater(t, pos.Sentiment.Subjectivity, 0.0)

	neg := analyze(t, "this is a terrible day")
	assert.Less(t, neg.Sentiment.Polarity, -0.1)

	flipped := analyze(t, "this is not good")
	assert.Less(t, flipped.Sentiment.Polarity, 0.0)

	neutral := analyze(t, "the door is closed")
	assert.Equal(t, 0.0, neutral.Sentiment.Polarity)
	assert.Equal(t, 0.0, neutral.Sentiment.Subjectivity)
}

func TestNameDetector(t *testing.T) {
	d := NewNameDetector()
	assert.Equal(t, "female", d.Detect("Alice"))
	assert.Equal(t, "male", d.Detect("bob"))
	assert.Equal(t, Unknown, d.Detect("Zorblax"))
	assert.Equal(t, Unknown, d.Detect(""))
}
