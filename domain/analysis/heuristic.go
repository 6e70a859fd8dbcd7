package analysis

import (
	"context"
	"strings"
	"unicode"
)

// HeuristicAnalyzer is the in-repo fallback Analyzer. It keeps the module
// usable without an external NLP service: rune-level tokenization, lexicon and
// suffix based part-of-speech guessing, gazetteer entity extraction, and
// lexicon sentiment scoring. Every rule is a fixed table, so output is
// deterministic for a given input.
//
// It is not a linguistic model and does not try to be one. Deployments with a
// real pipeline inject their own Analyzer at construction.
type HeuristicAnalyzer struct {
	stopWords map[string]bool
}

// NewHeuristicAnalyzer creates the fallback analyzer.
func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{stopWords: stopWords}
}

// Analyze implements Analyzer.
func (a *HeuristicAnalyzer) Analyze(_ context.Context, text string) (Result, error) {
	words := splitWords(text)

	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		lower := strings.ToLower(w.text)
		tokens = append(tokens, Token{
			Text:  w.text,
			Lemma: lemmatize(lower),
			POS:   a.guessPOS(w, i == 0),
			Stop:  a.stopWords[lower],
		})
	}

	return Result{
		Tokens:    tokens,
		Entities:  a.extractEntities(words),
		Sentiment: scoreSentiment(tokens),
	}, nil
}

type word struct {
	text        string
	capitalized bool
}

// splitWords breaks text into words on non-letter, non-digit runes.
// Apostrophes inside a word are kept so contractions survive.
func splitWords(text string) []word {
	var words []word
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		t := strings.Trim(current.String(), "'")
		if t != "" {
			first := []rune(t)[0]
			words = append(words, word{text: t, capitalized: unicode.IsUpper(first)})
		}
		current.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

func (a *HeuristicAnalyzer) guessPOS(w word, sentenceInitial bool) string {
	lower := strings.ToLower(w.text)

	if isNumeric(lower) {
		return "NUM"
	}
	if pos, ok := closedClass[lower]; ok {
		return pos
	}
	if verbLexicon[lower] || verbLexicon[lemmatize(lower)] {
		return "VERB"
	}
	if w.capitalized && !sentenceInitial {
		return "PROPN"
	}
	switch {
	case strings.HasSuffix(lower, "ly") && len(lower) > 3:
		return "ADV"
	case hasAnySuffix(lower, "ous", "ful", "ive", "able", "ible") && len(lower) > 4:
		return "ADJ"
	}
	return "NOUN"
}

// lemmatize reduces a lowercased word to a crude lemma: irregular table
// first, then conservative suffix stripping.
func lemmatize(lower string) string {
	if lemma, ok := irregularLemmas[lower]; ok {
		return lemma
	}
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "sses") && len(lower) > 5:
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "ing") && len(lower) > 5:
		return lower[:len(lower)-3]
	case strings.HasSuffix(lower, "ed") && len(lower) > 4:
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3:
		return lower[:len(lower)-1]
	}
	return lower
}

// extractEntities finds runs of capitalized words (skipping the
// sentence-initial position unless the word is in a gazetteer) and types them
// from the gazetteers: known first names are people, known places are GPE,
// date words are dates, anything else capitalized is treated as an
// organization.
func (a *HeuristicAnalyzer) extractEntities(words []word) []Entity {
	var entities []Entity
	i := 0
	for i < len(words) {
		lower := strings.ToLower(words[i].text)
		if dateWords[lower] {
			entities = append(entities, Entity{Text: words[i].text, Type: "DATE"})
			i++
			continue
		}
		if _, function := closedClass[lower]; function || !words[i].capitalized ||
			(i == 0 && !firstNames[lower] && !places[lower]) {
			i++
			continue
		}
		j := i
		for j < len(words) && words[j].capitalized {
			if _, function := closedClass[strings.ToLower(words[j].text)]; function {
				break
			}
			j++
		}
		mention := make([]string, 0, j-i)
		for _, w := range words[i:j] {
			mention = append(mention, w.text)
		}
		entities = append(entities, Entity{
			Text: strings.Join(mention, " "),
			Type: a.entityType(strings.ToLower(words[i].text)),
		})
		i = j
	}
	return entities
}

func (a *HeuristicAnalyzer) entityType(firstLower string) string {
	switch {
	case firstNames[firstLower]:
		return "PERSON"
	case places[firstLower]:
		return "GPE"
	default:
		return "ORG"
	}
}

// scoreSentiment averages lexicon polarity over matched tokens. Subjectivity
// is the matched fraction of all tokens, capped at 1. A negator directly
// before a matched word flips its polarity.
func scoreSentiment(tokens []Token) SentimentScore {
	var sum float64
	var matched int
	for i, tok := range tokens {
		lemma := tok.Lemma
		pol, ok := sentimentLexicon[lemma]
		if !ok {
			pol, ok = sentimentLexicon[strings.ToLower(tok.Text)]
		}
		if !ok {
			continue
		}
		if i > 0 && negators[strings.ToLower(tokens[i-1].Text)] {
			pol = -pol
		}
		sum += pol
		matched++
	}
	if matched == 0 || len(tokens) == 0 {
		return SentimentScore{}
	}
	subjectivity := float64(matched) * 2 / float64(len(tokens))
	if subjectivity > 1 {
		subjectivity = 1
	}
	return SentimentScore{Polarity: sum / float64(matched), Subjectivity: subjectivity}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
