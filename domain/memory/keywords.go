package memory

import (
	"strings"

	"engram-backend/domain/analysis"
)

// keywordPOS are the parts of speech that carry recall weight. Everything
// else is noise for keyword retrieval.
var keywordPOS = map[string]bool{
	"NOUN":  true,
	"PROPN": true,
	"VERB":  true,
}

// ExtractKeywords reduces analyzed tokens to the lowercased lemmas worth
// remembering: nouns, proper nouns, and verbs that are not stop words.
// Duplicates collapse to the first occurrence, so the result is deterministic
// for a given token sequence.
func ExtractKeywords(tokens []analysis.Token) []string {
	seen := make(map[string]bool, len(tokens))
	var keywords []string
	for _, tok := range tokens {
		if tok.Stop || !keywordPOS[tok.POS] {
			continue
		}
		lemma := strings.ToLower(tok.Lemma)
		if lemma == "" || seen[lemma] {
			continue
		}
		seen[lemma] = true
		keywords = append(keywords, lemma)
	}
	return keywords
}
